package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motifqu/motifqu/internal/circuit"
)

// fakeProvider is a minimal in-process sampling provider. Job "job-1" is
// queued for the first poll, running for the second, then terminal with the
// configured status and counts.
type fakeProvider struct {
	t        *testing.T
	backends []providerBackend
	terminal string
	jobError string
	counts   map[string]int
	polls    atomic.Int32
	submits  atomic.Int32
}

func (f *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /backends", func(w http.ResponseWriter, r *http.Request) {
		f.checkAuth(r)
		json.NewEncoder(w).Encode(f.backends)
	})
	mux.HandleFunc("POST /jobs", func(w http.ResponseWriter, r *http.Request) {
		f.checkAuth(r)
		var req submitRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(f.t, req.QASM, "measure q[0] -> c[0];")
		assert.Positive(f.t, req.Shots)
		f.submits.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"id": "job-1"})
	})
	mux.HandleFunc("GET /jobs/job-1", func(w http.ResponseWriter, r *http.Request) {
		f.checkAuth(r)
		st := jobStatus{ID: "job-1"}
		switch f.polls.Add(1) {
		case 1:
			st.Status = StatusQueued
		case 2:
			st.Status = StatusRunning
		default:
			st.Status = f.terminal
			st.Error = f.jobError
		}
		json.NewEncoder(w).Encode(st)
	})
	mux.HandleFunc("GET /jobs/job-1/counts", func(w http.ResponseWriter, r *http.Request) {
		f.checkAuth(r)
		json.NewEncoder(w).Encode(map[string]any{"counts": f.counts})
	})
	return mux
}

func (f *fakeProvider) checkAuth(r *http.Request) {
	assert.Equal(f.t, "Bearer test-token", r.Header.Get("Authorization"))
}

func newTestSampler(t *testing.T, f *fakeProvider, backendName string) *Sampler {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	s, err := NewSampler(ProviderConfig{
		URL:          srv.URL,
		Token:        "test-token",
		Backend:      backendName,
		PollInterval: time.Millisecond,
	}, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func testCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.New(3)
	c.HAll()
	require.NoError(t, circuit.Oracle(c, []int{3}))
	circuit.Diffuser(c)
	return c
}

func TestSamplerUnavailableWithoutConfig(t *testing.T) {
	_, err := NewSampler(ProviderConfig{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = NewSampler(ProviderConfig{URL: "http://example.test"}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSamplerCompletedJob(t *testing.T) {
	f := &fakeProvider{
		t:        t,
		terminal: StatusCompleted,
		counts:   map[string]int{"110": 768, "000": 256},
	}
	s := newTestSampler(t, f, "test-qpu")

	res, err := s.Execute(context.Background(), testCircuit(t), Options{Shots: 1024})
	require.NoError(t, err)

	assert.Equal(t, "job-1", res.JobID)
	assert.Equal(t, "test-qpu", res.Backend)
	require.Len(t, res.Probs, 8)
	// "110" is lines 0 and 1 set: index 3, not 6.
	assert.InDelta(t, 0.75, res.Probs[3], 1e-12)
	assert.InDelta(t, 0.25, res.Probs[0], 1e-12)
	assert.Zero(t, res.Probs[6])
	assert.InDelta(t, 1.0, res.Probs.Total(), 1e-12)
	assert.GreaterOrEqual(t, f.polls.Load(), int32(3), "visible status transitions")
}

func TestSamplerResolvesLeastBusyBackend(t *testing.T) {
	f := &fakeProvider{
		t: t,
		backends: []providerBackend{
			{Name: "big-busy", NumQubits: 27, PendingJobs: 40, Operational: true},
			{Name: "small", NumQubits: 2, PendingJobs: 0, Operational: true},
			{Name: "down", NumQubits: 27, PendingJobs: 0, Operational: false},
			{Name: "idle", NumQubits: 12, PendingJobs: 1, Operational: true},
		},
		terminal: StatusCompleted,
		counts:   map[string]int{"000": 16},
	}
	s := newTestSampler(t, f, "")

	res, err := s.Execute(context.Background(), testCircuit(t), Options{Shots: 16})
	require.NoError(t, err)
	assert.Equal(t, "idle", res.Backend, "least busy operational backend with enough qubits")
}

func TestSamplerFailedJob(t *testing.T) {
	f := &fakeProvider{t: t, terminal: StatusFailed, jobError: "calibration in progress"}
	s := newTestSampler(t, f, "test-qpu")

	_, err := s.Execute(context.Background(), testCircuit(t), Options{Shots: 64})
	require.Error(t, err)
	assert.True(t, IsRemoteExecution(err))
	assert.ErrorContains(t, err, "calibration in progress")
}

func TestSamplerCancelledJob(t *testing.T) {
	f := &fakeProvider{t: t, terminal: StatusCancelled}
	s := newTestSampler(t, f, "test-qpu")

	_, err := s.Execute(context.Background(), testCircuit(t), Options{Shots: 64})
	require.Error(t, err)
	assert.True(t, IsRemoteExecution(err))
}

func TestSamplerContextCancelDoesNotHang(t *testing.T) {
	// Terminal status never arrives; the wait must end with the context.
	f := &fakeProvider{t: t, terminal: StatusQueued}
	s := newTestSampler(t, f, "test-qpu")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := s.Execute(ctx, testCircuit(t), Options{Shots: 64})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("sampler hung past context deadline")
	}
}

func TestSamplerWritesArtifact(t *testing.T) {
	f := &fakeProvider{
		t:        t,
		terminal: StatusCompleted,
		counts:   map[string]int{"110": 48, "000": 16},
	}
	s := newTestSampler(t, f, "test-qpu")
	dir := t.TempDir()

	res, err := s.Execute(context.Background(), testCircuit(t), Options{Shots: 64, OptLevel: 2, OutputDir: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "job-"+res.JobID+".json"))
	require.NoError(t, err)

	var art Artifact
	require.NoError(t, json.Unmarshal(data, &art))
	assert.Equal(t, "job-1", art.JobID)
	assert.Equal(t, "test-qpu", art.Backend)
	assert.Equal(t, 64, art.Shots)
	assert.Equal(t, 2, art.OptLevel)
	assert.Equal(t, 3, art.Qubits)
	assert.Equal(t, f.counts, art.Counts)
	assert.Positive(t, art.Depth)
	assert.Positive(t, art.GateCounts[circuit.GateMCX])
}

func TestSamplerRejectsNonPositiveShots(t *testing.T) {
	f := &fakeProvider{t: t, terminal: StatusCompleted}
	s := newTestSampler(t, f, "test-qpu")

	_, err := s.Execute(context.Background(), testCircuit(t), Options{})
	assert.ErrorContains(t, err, "must be positive")
	assert.Zero(t, f.submits.Load())
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/motifqu/motifqu/internal/circuit"
)

// Job status values reported by the sampling provider.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// ProviderConfig configures the remote sampling provider. URL and Token are
// resolved externally (config file, environment); the client never persists
// credentials.
type ProviderConfig struct {
	URL   string
	Token string

	// Backend pins a specific provider backend; empty auto-selects the least
	// busy operational one with enough qubits.
	Backend string

	// Channel names the provider account channel, forwarded on submission.
	Channel string

	// PollInterval bounds status polling; defaults to 2s.
	PollInterval time.Duration
}

// Sampler is the shot-based sampling variant: it submits the measured
// circuit to a remote provider, polls the job to a terminal state, and
// reconstructs an empirical distribution from the returned counts.
type Sampler struct {
	cfg    ProviderConfig
	client *http.Client
	log    zerolog.Logger
}

// NewSampler builds the sampling backend. Returns ErrUnavailable when the
// provider URL or token is missing.
func NewSampler(cfg ProviderConfig, log zerolog.Logger) (*Sampler, error) {
	if cfg.URL == "" || cfg.Token == "" {
		return nil, ErrUnavailable
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &Sampler{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}, nil
}

func (s *Sampler) Name() string { return "sampler" }

// Execute submits the measurement-augmented circuit and blocks, with bounded
// polling, until the job reaches a terminal state. Cancellable through ctx:
// a cancelled wait surfaces as an error, never a hang.
func (s *Sampler) Execute(ctx context.Context, c *circuit.Circuit, opts Options) (*Result, error) {
	if opts.Shots <= 0 {
		return nil, fmt.Errorf("shot count must be positive, got %d", opts.Shots)
	}

	backendName, err := s.resolveBackend(ctx, c.Qubits)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("backend", backendName).Int("qubits", c.Qubits).Msg("provider backend selected")

	jobID, err := s.submit(ctx, backendName, c, opts)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("job_id", jobID).Int("shots", opts.Shots).Msg("job submitted")

	if err := s.awaitTerminal(ctx, jobID); err != nil {
		return nil, err
	}

	counts, err := s.counts(ctx, jobID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("job_id", jobID).Int("unique_outcomes", len(counts)).Msg("job completed")

	probs, err := CountsToDistribution(counts, c.Qubits, opts.Shots)
	if err != nil {
		return nil, &RemoteExecutionError{JobID: jobID, Status: StatusCompleted, Message: err.Error()}
	}

	if opts.OutputDir != "" {
		art := Artifact{
			JobID:      jobID,
			Backend:    backendName,
			Shots:      opts.Shots,
			OptLevel:   opts.OptLevel,
			Depth:      c.Depth(),
			GateCounts: c.GateCounts(),
			Qubits:     c.Qubits,
			Counts:     counts,
			CreatedAt:  time.Now().UTC(),
		}
		path, err := WriteArtifact(opts.OutputDir, art)
		if err != nil {
			return nil, fmt.Errorf("persist job record: %w", err)
		}
		s.log.Info().Str("path", path).Msg("job record written")
	}

	return &Result{Probs: probs, Counts: counts, JobID: jobID, Backend: backendName}, nil
}

type providerBackend struct {
	Name        string `json:"name"`
	NumQubits   int    `json:"num_qubits"`
	PendingJobs int    `json:"pending_jobs"`
	Operational bool   `json:"operational"`
}

// resolveBackend returns the pinned backend or the least busy operational
// one meeting the register-width requirement.
func (s *Sampler) resolveBackend(ctx context.Context, minQubits int) (string, error) {
	if s.cfg.Backend != "" {
		return s.cfg.Backend, nil
	}

	var backends []providerBackend
	q := url.Values{"min_qubits": {fmt.Sprint(minQubits)}}
	if err := s.get(ctx, "/backends?"+q.Encode(), &backends); err != nil {
		return "", err
	}

	candidates := backends[:0]
	for _, b := range backends {
		if b.Operational && b.NumQubits >= minQubits {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return "", &RemoteExecutionError{
			Status:  StatusFailed,
			Message: fmt.Sprintf("no operational backend with >= %d qubits", minQubits),
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].PendingJobs != candidates[j].PendingJobs {
			return candidates[i].PendingJobs < candidates[j].PendingJobs
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates[0].Name, nil
}

type submitRequest struct {
	Backend  string `json:"backend"`
	Channel  string `json:"channel,omitempty"`
	QASM     string `json:"qasm"`
	Shots    int    `json:"shots"`
	OptLevel int    `json:"opt_level"`
}

func (s *Sampler) submit(ctx context.Context, backendName string, c *circuit.Circuit, opts Options) (string, error) {
	req := submitRequest{
		Backend:  backendName,
		Channel:  s.cfg.Channel,
		QASM:     circuit.QASM(c, true),
		Shots:    opts.Shots,
		OptLevel: opts.OptLevel,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := s.post(ctx, "/jobs", req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", &RemoteExecutionError{Status: StatusFailed, Message: "provider returned empty job id"}
	}
	return resp.ID, nil
}

type jobStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// awaitTerminal polls the job until it completes, fails, or the context is
// done. Status transitions are logged so long hardware queues stay visible.
func (s *Sampler) awaitTerminal(ctx context.Context, jobID string) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	last := ""
	for {
		var st jobStatus
		if err := s.get(ctx, "/jobs/"+jobID, &st); err != nil {
			return err
		}
		if st.Status != last {
			s.log.Info().Str("job_id", jobID).Str("status", st.Status).Msg("job status")
			last = st.Status
		}

		switch st.Status {
		case StatusCompleted:
			return nil
		case StatusFailed, StatusCancelled:
			return &RemoteExecutionError{JobID: jobID, Status: st.Status, Message: st.Error}
		case StatusQueued, StatusRunning, "":
			// keep polling
		default:
			return &RemoteExecutionError{JobID: jobID, Status: st.Status, Message: "unknown job status"}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (s *Sampler) counts(ctx context.Context, jobID string) (map[string]int, error) {
	var resp struct {
		Counts map[string]int `json:"counts"`
	}
	if err := s.get(ctx, "/jobs/"+jobID+"/counts", &resp); err != nil {
		return nil, err
	}
	return resp.Counts, nil
}

func (s *Sampler) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req, out)
}

func (s *Sampler) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, out)
}

func (s *Sampler) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RemoteExecutionError{
			Status:  StatusFailed,
			Message: fmt.Sprintf("provider %s returned %d: %s", req.URL.Path, resp.StatusCode, bytes.TrimSpace(body)),
		}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

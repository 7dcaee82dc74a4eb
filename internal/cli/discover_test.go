package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverTextOutput(t *testing.T) {
	fasta := writeFASTA(t, "ACGTACGTAC")

	out, _, err := execute(t, "discover", "--fasta", fasta, "-k", "4",
		"--min-count", "2", "--no-revcomp", "--topk", "1", "--iters", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Discovered 1 significant motif(s)")
	assert.Contains(t, out, "ACGT")
	assert.Contains(t, out, "chr1:1-4")
}

func TestDiscoverJSONOutput(t *testing.T) {
	fasta := writeFASTA(t, "ACGTACGTAC")

	out, _, err := execute(t, "--format", "json", "discover", "--fasta", fasta,
		"-k", "4", "--min-count", "2", "--no-revcomp", "--topk", "1", "--iters", "1")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	motifs, ok := data["motifs"].([]any)
	require.True(t, ok)
	require.Len(t, motifs, 1)

	first, ok := motifs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ACGT", first["kmer"])
	assert.Equal(t, float64(2), first["count"])
}

func TestDiscoverNothingSignificant(t *testing.T) {
	fasta := writeFASTA(t, "ACGTACGTAC")

	out, _, err := execute(t, "discover", "--fasta", fasta, "-k", "4", "--min-count", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "No significant motifs discovered.")
}

func TestDiscoverBadKmerLength(t *testing.T) {
	fasta := writeFASTA(t, "ACGTACGTAC")

	_, _, err := execute(t, "discover", "--fasta", fasta, "-k", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

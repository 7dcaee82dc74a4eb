package backend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact is the persisted record of one sampling job: enough to audit or
// re-rank the raw outcome counts later without re-running the job.
type Artifact struct {
	JobID      string         `json:"job_id"`
	Backend    string         `json:"backend"`
	Shots      int            `json:"shots"`
	OptLevel   int            `json:"opt_level"`
	Depth      int            `json:"depth"`
	GateCounts map[string]int `json:"gate_counts"`
	Qubits     int            `json:"qubits"`
	Counts     map[string]int `json:"counts"`
	CreatedAt  time.Time      `json:"created_at"`
}

// WriteArtifact persists a job record as pretty-printed JSON under dir,
// creating the directory if needed. Returns the written path.
func WriteArtifact(dir string, a Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("job-%s.json", a.JobID))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write job record: %w", err)
	}
	return path, nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motifqu/motifqu/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewRunsCommand creates the runs command, which lists the run ledger.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "runs",
		Short:         "List recorded search runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite ledger (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "rows to show, most recent first")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

type runRow struct {
	ID         int64   `json:"id"`
	CreatedAt  string  `json:"created_at"`
	Contig     string  `json:"contig"`
	Motif      string  `json:"motif"`
	Mismatches int     `json:"mismatches"`
	Backend    string  `json:"backend"`
	Hits       int     `json:"hits"`
	Iterations int     `json:"iterations"`
	BestIndex  int     `json:"best_index"`
	BestProb   float64 `json:"best_prob"`
	JobID      string  `json:"job_id,omitempty"`
}

func runRuns(cmd *cobra.Command, opts *RunsOptions) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer st.Close()

	recs, err := st.Runs(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list runs", err)
	}

	rows := make([]runRow, len(recs))
	for i, r := range recs {
		rows[i] = runRow{
			ID:         r.ID,
			CreatedAt:  r.CreatedAt.Format("2006-01-02 15:04:05"),
			Contig:     r.Contig,
			Motif:      r.Motif,
			Mismatches: r.Mismatches,
			Backend:    r.Backend,
			Hits:       r.Hits,
			Iterations: r.Iterations,
			BestIndex:  r.BestIndex,
			BestProb:   r.BestProb,
			JobID:      r.JobID,
		}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.Format == "json" {
		return out.Success(rows)
	}

	w := out.Writer
	if len(rows) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	fmt.Fprintf(w, "%-5s %-20s %-10s %-12s %-12s %-5s %-7s %-9s\n",
		"ID", "When", "Contig", "Motif", "Backend", "Hits", "Index", "Prob")
	for _, row := range rows {
		fmt.Fprintf(w, "%-5d %-20s %-10s %-12s %-12s %-5d %-7d %-9.6f\n",
			row.ID, row.CreatedAt, row.Contig, row.Motif, row.Backend, row.Hits, row.BestIndex, row.BestProb)
	}
	return nil
}

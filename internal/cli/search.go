package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/motifqu/motifqu/internal/backend"
	"github.com/motifqu/motifqu/internal/config"
	"github.com/motifqu/motifqu/internal/genome"
	"github.com/motifqu/motifqu/internal/grover"
	"github.com/motifqu/motifqu/internal/store"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Fasta         string
	Motif         string
	Mismatches    int
	TopK          int
	ProgressEvery int
	Iters         int
	OptLevel      int
	Backend       string
	Shots         int
	Seed          int64
	OutputDir     string
	Database      string
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for a motif in a genome",
		Long: `Search for a motif's positions in a FASTA sequence.

A classical scan finds every window within the mismatch tolerance, then an
amplitude-amplification circuit concentrates probability on those positions.
The exact statevector backend is the default; --backend sampler submits to a
remote provider and --backend emulated samples locally with a shot budget.

Example:
  motifqu search --fasta genome.fa --motif ACGTAC
  motifqu search --fasta genome.fa.gz --motif TATAAA --mismatches 1 --topk 8
  motifqu search --fasta genome.fa --motif GATTACA --backend emulated --shots 8192`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Fasta, "fasta", "", "path to FASTA file, .gz accepted (required)")
	cmd.Flags().StringVar(&opts.Motif, "motif", "", "motif sequence (ACGTN); prompts when omitted")
	cmd.Flags().IntVar(&opts.Mismatches, "mismatches", 0, "allowed Hamming mismatches")
	cmd.Flags().IntVar(&opts.TopK, "topk", 0, "ranked outcomes to show (default from config)")
	cmd.Flags().IntVar(&opts.ProgressEvery, "progress-every", 5, "log progress every N iterations, 0 disables")
	cmd.Flags().IntVar(&opts.Iters, "iters", 0, "force the amplification iteration count")
	cmd.Flags().IntVar(&opts.OptLevel, "opt-level", -1, "circuit optimization level 0-3 (default from config)")
	cmd.Flags().StringVar(&opts.Backend, "backend", "statevector", "execution backend (statevector|sampler|emulated)")
	cmd.Flags().IntVar(&opts.Shots, "shots", 0, "shot budget for sampling backends (default from config)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "emulated sampler seed, 0 for time-based")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "directory for raw job records of sampling runs")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in a SQLite ledger at this path")
	_ = cmd.MarkFlagRequired("fasta")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *SearchOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	applyConfigDefaults(opts, cfg)

	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	rec, err := genome.ReadFASTA(opts.Fasta)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read FASTA", err)
	}
	log.Info().Str("contig", rec.ID).Str("length", printer.Sprintf("%d", len(rec.Seq))).Msg("sequence loaded")

	motif, err := resolveMotif(cmd, opts.Motif)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid motif", err)
	}

	be, err := buildBackend(opts.Backend, cfg, opts.Seed, log)
	if err != nil {
		if errors.Is(err, backend.ErrUnavailable) {
			_ = out.Error(string(grover.CodeBackendUnavailable), err.Error())
			return WrapExitError(ExitFailure, "sampling backend unavailable", err)
		}
		return WrapExitError(ExitCommandError, "failed to build backend", err)
	}

	engine := grover.New(be, grover.WithLogger(log))
	res, err := engine.Search(cmd.Context(), grover.Request{
		Contig:        rec.ID,
		Genome:        rec.Seq,
		Motif:         motif,
		Mismatches:    opts.Mismatches,
		TopK:          opts.TopK,
		ProgressEvery: opts.ProgressEvery,
		ForceIters:    opts.Iters,
		Exec: backend.Options{
			Shots:     opts.Shots,
			OptLevel:  opts.OptLevel,
			OutputDir: opts.OutputDir,
		},
	})
	if err != nil {
		return searchError(out, err)
	}

	if opts.Database != "" {
		if err := recordRun(cmd.Context(), opts, res); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		log.Info().Str("db", opts.Database).Msg("run recorded")
	}

	return renderSearch(out, res, opts.Mismatches)
}

// applyConfigDefaults fills unset tuning flags from the loaded config.
func applyConfigDefaults(opts *SearchOptions, cfg config.Config) {
	if opts.TopK <= 0 {
		opts.TopK = cfg.Defaults.TopK
	}
	if opts.Shots <= 0 {
		opts.Shots = cfg.Defaults.Shots
	}
	if opts.OptLevel < 0 {
		opts.OptLevel = cfg.Defaults.OptLevel
	}
}

// resolveMotif validates the motif flag, prompting on the command's input
// stream when the flag is empty.
func resolveMotif(cmd *cobra.Command, motif string) (string, error) {
	if motif == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Enter motif sequence (ACGTN): ")
		sc := bufio.NewScanner(cmd.InOrStdin())
		if !sc.Scan() {
			return "", fmt.Errorf("no motif provided")
		}
		motif = strings.TrimSpace(sc.Text())
	}
	motif = genome.Normalize(motif)
	if err := genome.ValidatePattern(motif); err != nil {
		return "", err
	}
	return motif, nil
}

// searchError renders a coded search failure and picks its exit code.
// Parameter mistakes are usage errors; everything else is a search failure.
func searchError(out *OutputFormatter, err error) error {
	var re *grover.RunError
	if errors.As(err, &re) {
		_ = out.Error(string(re.Code), re.Message)
		code := ExitFailure
		if re.Code == grover.CodeInvalidParameter {
			code = ExitCommandError
		}
		return WrapExitError(code, "search failed", err)
	}
	return WrapExitError(ExitFailure, "search failed", err)
}

// searchReport is the JSON payload of a successful search.
type searchReport struct {
	Contig     string           `json:"contig"`
	Motif      string           `json:"motif"`
	Mismatches int              `json:"mismatches"`
	Backend    string           `json:"backend"`
	JobID      string           `json:"job_id,omitempty"`
	Hits       []int            `json:"hits"`
	Positions  int              `json:"positions"`
	Qubits     int              `json:"qubits"`
	PaddedN    int              `json:"padded_n"`
	Iterations int              `json:"iterations"`
	Best       outcomeRow       `json:"best"`
	TopK       []outcomeRow     `json:"topk"`
}

type outcomeRow struct {
	Index int     `json:"index"`
	Prob  float64 `json:"prob"`
	Hit   bool    `json:"hit"`
	Pad   bool    `json:"pad"`
	Coord string  `json:"coord,omitempty"`
}

func outcomeRows(res *grover.Result) []outcomeRow {
	rows := make([]outcomeRow, len(res.Ranked))
	for i, o := range res.Ranked {
		ann := res.Annotate(o.Index)
		rows[i] = outcomeRow{Index: o.Index, Prob: o.Prob, Hit: ann.IsHit, Pad: ann.IsPad}
		if ann.Coord != nil {
			rows[i].Coord = ann.Coord.String()
		}
	}
	return rows
}

func renderSearch(out *OutputFormatter, res *grover.Result, mismatches int) error {
	rows := outcomeRows(res)

	if out.Format == "json" {
		return out.Success(searchReport{
			Contig:     res.Contig,
			Motif:      res.Motif,
			Mismatches: mismatches,
			Backend:    res.Backend,
			JobID:      res.JobID,
			Hits:       res.Hits,
			Positions:  res.NumPositions,
			Qubits:     res.Qubits,
			PaddedN:    res.PaddedN,
			Iterations: res.Iterations,
			Best:       rows[0],
			TopK:       rows,
		})
	}

	w := out.Writer
	fmt.Fprintf(w, "Motif %s on %s: %d match(es) within %d mismatch(es)\n",
		res.Motif, res.Contig, len(res.Hits), mismatches)
	fmt.Fprintf(w, "Register: %d qubits over %s positions (padded to %d), %d iteration(s), backend %s\n",
		res.Qubits, printer.Sprintf("%d", res.NumPositions), res.PaddedN, res.Iterations, res.Backend)
	if res.JobID != "" {
		fmt.Fprintf(w, "Job: %s\n", res.JobID)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-5s %-7s %-9s %-4s %s\n", "Rank", "Index", "Prob", "Tag", "Coordinates")
	for i, row := range rows {
		tag := "    "
		switch {
		case row.Pad:
			tag = "PAD "
		case row.Hit:
			tag = "HIT "
		}
		coord := row.Coord
		if coord == "" {
			coord = "-"
		}
		fmt.Fprintf(w, "%-5d %-7d %-9.6f %-4s %s\n", i+1, row.Index, row.Prob, tag, coord)
	}
	return nil
}

func recordRun(ctx context.Context, opts *SearchOptions, res *grover.Result) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	shots := 0
	if opts.Backend != "statevector" {
		shots = opts.Shots
	}
	_, err = st.RecordRun(ctx, store.RunRecord{
		Contig:     res.Contig,
		Motif:      res.Motif,
		Mismatches: opts.Mismatches,
		Backend:    res.Backend,
		Shots:      shots,
		Iterations: res.Iterations,
		Qubits:     res.Qubits,
		PaddedN:    res.PaddedN,
		BestIndex:  res.BestIndex,
		BestProb:   res.BestProb,
		Hits:       len(res.Hits),
		JobID:      res.JobID,
	})
	return err
}

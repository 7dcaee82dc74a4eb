package cli

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/motifqu/motifqu/internal/backend"
	"github.com/motifqu/motifqu/internal/config"
	"github.com/motifqu/motifqu/internal/discovery"
	"github.com/motifqu/motifqu/internal/genome"
	"github.com/motifqu/motifqu/internal/grover"
)

// DiscoverOptions holds flags for the discover command.
type DiscoverOptions struct {
	*RootOptions
	Fasta         string
	KmerLength    int
	MinCount      int
	TopK          int
	NoRevComp     bool
	Workers       int
	ProgressEvery int
	Iters         int
	OptLevel      int
}

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiscoverOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover over-represented motifs in a genome",
		Long: `Discover candidate motifs without a known pattern.

Every k-mer occurring at least --min-count times becomes a candidate, ordered
by count. Each candidate is located with its own amplitude-amplification
search on the exact statevector backend.

Example:
  motifqu discover --fasta genome.fa -k 6 --min-count 3
  motifqu discover --fasta genome.fa -k 8 --no-revcomp --topk 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Fasta, "fasta", "", "path to FASTA file, .gz accepted (required)")
	cmd.Flags().IntVarP(&opts.KmerLength, "kmer-length", "k", 6, "candidate k-mer length (recommended 4-10)")
	cmd.Flags().IntVar(&opts.MinCount, "min-count", 2, "minimum occurrences for significance")
	cmd.Flags().IntVar(&opts.TopK, "topk", 10, "discovered motifs to show")
	cmd.Flags().BoolVar(&opts.NoRevComp, "no-revcomp", false, "don't fold reverse complements onto one strand")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent candidate searches (default NumCPU)")
	cmd.Flags().IntVar(&opts.ProgressEvery, "progress-every", 5, "log progress every N iterations, 0 disables")
	cmd.Flags().IntVar(&opts.Iters, "iters", 0, "force the amplification iteration count")
	cmd.Flags().IntVar(&opts.OptLevel, "opt-level", -1, "circuit optimization level 0-3 (default from config)")
	_ = cmd.MarkFlagRequired("fasta")

	return cmd
}

func runDiscover(cmd *cobra.Command, opts *DiscoverOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.OptLevel < 0 {
		opts.OptLevel = cfg.Defaults.OptLevel
	}
	if opts.KmerLength < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("k-mer length must be positive, got %d", opts.KmerLength))
	}

	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if opts.KmerLength < 3 || opts.KmerLength > 12 {
		log.Warn().Int("k", opts.KmerLength).Msg("k outside the recommended 4-10bp range")
	}

	rec, err := genome.ReadFASTA(opts.Fasta)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read FASTA", err)
	}
	log.Info().Str("contig", rec.ID).Str("length", printer.Sprintf("%d", len(rec.Seq))).Msg("sequence loaded")

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	engine := grover.New(backend.NewStatevector(log), grover.WithLogger(log))
	runner := discovery.NewRunner(engine, log)
	motifs, err := runner.Discover(cmd.Context(), discovery.Options{
		Contig:   rec.ID,
		Genome:   rec.Seq,
		K:        opts.KmerLength,
		MinCount: opts.MinCount,
		TopK:     opts.TopK,
		RevComp:  !opts.NoRevComp,
		Workers:  workers,
		Search: grover.Request{
			TopK:          opts.TopK,
			ProgressEvery: opts.ProgressEvery,
			ForceIters:    opts.Iters,
			Exec:          backend.Options{OptLevel: opts.OptLevel},
		},
	})
	if err != nil {
		var re *grover.RunError
		if errors.As(err, &re) {
			_ = out.Error(string(re.Code), re.Message)
		}
		return WrapExitError(ExitFailure, "discovery failed", err)
	}

	return renderDiscover(out, motifs)
}

// discoverReport is the JSON payload of a discovery run.
type discoverReport struct {
	Motifs []discoveredRow `json:"motifs"`
}

type discoveredRow struct {
	Kmer      string  `json:"kmer"`
	Count     int     `json:"count"`
	BestIndex int     `json:"best_index"`
	BestProb  float64 `json:"best_prob"`
	Coord     string  `json:"coord,omitempty"`
}

func renderDiscover(out *OutputFormatter, motifs []discovery.Motif) error {
	rows := make([]discoveredRow, len(motifs))
	for i, m := range motifs {
		rows[i] = discoveredRow{
			Kmer:      m.Kmer,
			Count:     m.Count,
			BestIndex: m.Best.BestIndex,
			BestProb:  m.Best.BestProb,
		}
		if ann := m.Best.Annotate(m.Best.BestIndex); ann.Coord != nil {
			rows[i].Coord = ann.Coord.String()
		}
	}

	if out.Format == "json" {
		return out.Success(discoverReport{Motifs: rows})
	}

	w := out.Writer
	if len(rows) == 0 {
		fmt.Fprintln(w, "No significant motifs discovered.")
		return nil
	}
	fmt.Fprintf(w, "Discovered %d significant motif(s)\n\n", len(rows))
	fmt.Fprintf(w, "%-12s %-7s %-9s %s\n", "K-mer", "Count", "Prob", "Best position")
	for _, row := range rows {
		coord := row.Coord
		if coord == "" {
			coord = "-"
		}
		fmt.Fprintf(w, "%-12s %-7d %-9.6f %s\n", row.Kmer, row.Count, row.BestProb, coord)
	}
	return nil
}

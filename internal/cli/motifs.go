package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/motifqu/motifqu/internal/pattern"
)

// NewMotifsCommand creates the motifs command.
func NewMotifsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "motifs",
		Short:         "List known biological motif patterns",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return renderMotifs(out)
		},
	}
}

type motifRow struct {
	Name        string `json:"name"`
	Consensus   string `json:"consensus"`
	Degeneracy  int    `json:"degeneracy"`
	Description string `json:"description"`
}

func renderMotifs(out *OutputFormatter) error {
	catalog := pattern.Catalog()
	rows := make([]motifRow, len(catalog))
	for i, m := range catalog {
		rows[i] = motifRow{
			Name:        m.Name,
			Consensus:   m.Consensus,
			Degeneracy:  pattern.Degeneracy(m.Consensus),
			Description: m.Description,
		}
	}

	if out.Format == "json" {
		return out.Success(rows)
	}

	w := out.Writer
	fmt.Fprintf(w, "Known biological motifs (%d total):\n\n", len(rows))
	fmt.Fprintf(w, "%-20s %-15s %s\n", "Name", "Consensus", "Description")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, row := range rows {
		fmt.Fprintf(w, "%-20s %-15s %s\n", row.Name, row.Consensus, row.Description)
	}
	return nil
}

// NewExpandCommand creates the expand command.
func NewExpandCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "expand PATTERN",
		Short: "Expand an IUPAC pattern to all matching DNA sequences",
		Long: `Expand an IUPAC ambiguity pattern to every concrete sequence it matches.

Catalog names from 'motifqu motifs' are accepted in place of a raw pattern.

Example:
  motifqu expand CANNTG
  motifqu expand e-box`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return runExpand(out, args[0])
		},
	}
}

type expandReport struct {
	Pattern    string   `json:"pattern"`
	Expansions []string `json:"expansions"`
}

func runExpand(out *OutputFormatter, arg string) error {
	p := strings.ToUpper(strings.TrimSpace(arg))
	if m, err := pattern.Lookup(strings.ToLower(arg)); err == nil {
		p = m.Consensus
	}

	seqs, err := pattern.Expand(p)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to expand pattern", err)
	}

	if out.Format == "json" {
		return out.Success(expandReport{Pattern: p, Expansions: seqs})
	}

	w := out.Writer
	fmt.Fprintf(w, "Pattern: %s\n", p)
	fmt.Fprintf(w, "Expansions (%d sequences):\n\n", len(seqs))
	for _, s := range seqs {
		fmt.Fprintf(w, "  %s\n", s)
	}
	return nil
}

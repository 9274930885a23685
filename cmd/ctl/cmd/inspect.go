package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jpfielding/lut.go/pkg/lut"
	"github.com/jpfielding/lut.go/pkg/lut/cube"
	"github.com/jpfielding/lut.go/pkg/lut/lattice"
	"github.com/spf13/cobra"
)

// NewInspectCmd summarizes a .cube file
func NewInspectCmd(ctx context.Context, env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "summarize a .cube LUT",
		Long:  "Parses a .cube file and prints its header, per-channel range and mean deviation from identity. Optionally dumps every node as CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			lutPath, _ := cmd.Flags().GetString("lut")
			csvPath, _ := cmd.Flags().GetString("csv")
			if lutPath == "" && len(args) > 0 {
				lutPath = args[0]
			}
			if lutPath == "" {
				return fmt.Errorf("cube path is required. Use --lut flag or provide as argument")
			}

			doc, err := readCube(lutPath, env.Config.LUT.MaxSize)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), doc)

			if csvPath != "" {
				if err := writeOutput(csvPath, false, func(w io.Writer) error { return lattice.WriteCSV(w, doc.Lattice) }); err != nil {
					return fmt.Errorf("writing csv: %w", err)
				}
				slog.InfoContext(ctx, "Wrote nodes", slog.String("csv", csvPath), slog.Int("nodes", doc.Lattice.Len()))
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("lut", "l", "", ".cube file (- for stdin)")
	pf.String("csv", "", "write every node as CSV to this path (- for stdout)")
	return cmd
}

func printSummary(w io.Writer, doc *cube.Document) {
	l := doc.Lattice
	lo, hi := doc.Domain()
	st := l.Stats()

	fmt.Fprintln(w, "=== Cube ===")
	fmt.Fprintf(w, "Title: %q\n", doc.Title)
	fmt.Fprintf(w, "Size: %d (%d nodes)\n", l.Size, l.Len())
	fmt.Fprintf(w, "Domain: %s .. %s\n", formatRGB(lo), formatRGB(hi))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Output ===")
	fmt.Fprintf(w, "Min: %s\n", formatRGB(st.Min))
	fmt.Fprintf(w, "Max: %s\n", formatRGB(st.Max))
	fmt.Fprintf(w, "Mean deviation from identity: %.6f\n", st.MeanDeviation)

	id, err := lattice.Identity(l.Size)
	if err == nil {
		fmt.Fprintf(w, "Max deviation from identity: %.6f\n", id.MaxDeviation(l))
	}
	fmt.Fprintf(w, "Black -> %s\n", formatRGB(l.At(0, 0, 0)))
	fmt.Fprintf(w, "White -> %s\n", formatRGB(l.At(l.Size-1, l.Size-1, l.Size-1)))
}

func formatRGB(c lut.RGB) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", c.R, c.G, c.B)
}

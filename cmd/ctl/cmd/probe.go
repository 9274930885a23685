package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jpfielding/lut.go/pkg/lut"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

// NewProbeCmd pushes hex colours through the pipeline of an adjustment document
func NewProbeCmd(ctx context.Context, env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "show what an adjustment document does to given colours",
		Long:  "Pushes each --color (#rrggbb) through the colour pipeline of an adjustment document and prints the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			adjPath, _ := cmd.Flags().GetString("adjustments")
			colors, _ := cmd.Flags().GetStringSlice("color")
			colors = append(colors, args...)
			if len(colors) == 0 {
				return fmt.Errorf("at least one --color is required")
			}

			adj, err := loadAdjustments(adjPath)
			if err != nil {
				return err
			}
			p, err := lut.NewPipeline(adj)
			if err != nil {
				return err
			}
			return probe(cmd.OutOrStdout(), p, colors)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("adjustments", "a", "", "adjustment document (JSON or YAML, - for stdin)")
	pf.StringSliceP("color", "c", nil, "colour to probe as #rrggbb (repeatable)")
	cmd.MarkPersistentFlagRequired("adjustments")
	return cmd
}

func probe(w io.Writer, p *lut.Pipeline, colors []string) error {
	for _, hex := range colors {
		in, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("%w: colour %q: %w", lut.ErrInvalidParameter, hex, err)
		}
		out := p.Apply(lut.RGB{R: in.R, G: in.G, B: in.B})
		res := colorful.Color{R: out.R, G: out.G, B: out.B}
		fmt.Fprintf(w, "%s -> %s  (ΔE %.4f)\n", in.Hex(), res.Hex(), in.DistanceCIEDE2000(res))
	}
	return nil
}

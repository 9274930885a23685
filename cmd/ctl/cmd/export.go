package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jpfielding/lut.go/pkg/lut"
	"github.com/jpfielding/lut.go/pkg/lut/cube"
	"github.com/jpfielding/lut.go/pkg/lut/lattice"
	"github.com/spf13/cobra"
)

// NewExportCmd samples an adjustment document into a .cube file
func NewExportCmd(ctx context.Context, env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "write a .cube LUT for an adjustment document",
		Long:  "Samples the colour pipeline for an adjustment document (JSON or YAML) on an N×N×N lattice and writes it as a .cube file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			adjPath, _ := cmd.Flags().GetString("adjustments")
			out, _ := cmd.Flags().GetString("out")
			title, _ := cmd.Flags().GetString("title")

			opts := env.Config.SampleOptions()
			size := env.Config.LUT.Size
			if cmd.Flags().Changed("size") {
				size, _ = cmd.Flags().GetInt("size")
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers, _ = cmd.Flags().GetInt("workers")
			}

			adj, err := loadAdjustments(adjPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") {
				title = defaultTitle(adj)
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			l, err := lattice.Sample(size, adj, opts)
			if err != nil {
				return fmt.Errorf("sampling lattice: %w", err)
			}
			doc := cube.NewDocument(title, l)
			if err := writeOutput(out, false, func(w io.Writer) error { return cube.Write(w, doc) }); err != nil {
				return fmt.Errorf("writing cube: %w", err)
			}
			slog.InfoContext(ctx, "Exported LUT",
				slog.String("out", out),
				slog.String("title", title),
				slog.Int("size", size),
				slog.String("id", adj.ID()),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("adjustments", "a", "", "adjustment document (JSON or YAML, - for stdin)")
	pf.StringP("out", "o", "-", "output .cube path (- for stdout)")
	pf.IntP("size", "n", lattice.DefaultSize, fmt.Sprintf("lattice points per axis [%d,%d] (%d typical, %d professional)",
		lattice.MinSize, lattice.MaxSize, lattice.DefaultSize, lattice.ProSize))
	pf.StringP("title", "t", "", "cube TITLE (default: base style or record id)")
	pf.IntP("workers", "w", 0, "sampling workers (0: one per CPU)")
	cmd.MarkPersistentFlagRequired("adjustments")
	return cmd
}

// loadAdjustments reads and normalizes an adjustment document
func loadAdjustments(path string) (lut.Adjustments, error) {
	data, err := readInput(path)
	if err != nil {
		return lut.Adjustments{}, fmt.Errorf("reading adjustments: %w", err)
	}
	doc, err := lut.ParseDocument(data)
	if err != nil {
		return lut.Adjustments{}, err
	}
	adj, err := doc.Record()
	if err != nil {
		return lut.Adjustments{}, err
	}
	slog.Debug("Loaded adjustments", slog.String("path", path), slog.Any("adjustments", adj))
	return adj, nil
}

func defaultTitle(adj lut.Adjustments) string {
	if adj.BaseStyle != "" {
		return sanitizeTitle(adj.BaseStyle)
	}
	id := adj.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	return "lut-" + id
}

// sanitizeTitle drops characters a quoted TITLE line cannot hold
func sanitizeTitle(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '"', '\r', '\n':
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/jpfielding/lut.go/pkg/lut/cube"
	"github.com/jpfielding/lut.go/pkg/lut/preview"
	"github.com/spf13/cobra"
)

// NewPreviewCmd renders an adjustment document onto a photo
func NewPreviewCmd(ctx context.Context, env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "render an adjustment document onto a downscaled photo",
		Long:  "Decodes a photo, downscales it and pushes every pixel through the colour pipeline of an adjustment document.",
		RunE: func(cmd *cobra.Command, args []string) error {
			adjPath, _ := cmd.Flags().GetString("adjustments")
			adj, err := loadAdjustments(adjPath)
			if err != nil {
				return err
			}
			return renderPreview(ctx, cmd, env, func(img image.Image, opts *preview.Options) (*image.NRGBA, error) {
				return preview.Render(img, adj, opts)
			})
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("adjustments", "a", "", "adjustment document (JSON or YAML, - for stdin)")
	cmd.MarkPersistentFlagRequired("adjustments")
	addRenderFlags(cmd)
	return cmd
}

// NewApplyCmd renders an existing .cube onto a photo
func NewApplyCmd(ctx context.Context, env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "render a .cube LUT onto a downscaled photo",
		Long:  "Decodes a photo, downscales it and maps every pixel through a .cube LUT by trilinear lookup.",
		RunE: func(cmd *cobra.Command, args []string) error {
			lutPath, _ := cmd.Flags().GetString("lut")
			doc, err := readCube(lutPath, env.Config.LUT.MaxSize)
			if err != nil {
				return err
			}
			if !doc.HasDefaultDomain() {
				lo, hi := doc.Domain()
				slog.WarnContext(ctx, "LUT domain is not [0,1]; inputs are treated as [0,1]",
					slog.Any("min", lo), slog.Any("max", hi))
			}
			return renderPreview(ctx, cmd, env, func(img image.Image, opts *preview.Options) (*image.NRGBA, error) {
				return preview.ApplyLattice(img, doc.Lattice, opts)
			})
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("lut", "l", "", ".cube file")
	cmd.MarkPersistentFlagRequired("lut")
	addRenderFlags(cmd)
	return cmd
}

func addRenderFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "input image (jpeg, png, gif, bmp, tiff, webp; - for stdin)")
	pf.StringP("out", "o", "-", "output image (- for stdout)")
	pf.Int("max-width", preview.DefaultMaxWidth, "widest preview in pixels (0 keeps the source width)")
	pf.String("filter", string(preview.FilterBox), "downscale filter (box|bilinear|catmullrom)")
	pf.String("format", "", "output format (png|jpeg; default from -o extension, then config)")
	cmd.MarkPersistentFlagRequired("in")
}

type renderFunc func(image.Image, *preview.Options) (*image.NRGBA, error)

func renderPreview(ctx context.Context, cmd *cobra.Command, env *Env, render renderFunc) error {
	flags := cmd.Flags()
	in, _ := flags.GetString("in")
	out, _ := flags.GetString("out")

	opts := env.Config.RenderOptions()
	if flags.Changed("max-width") {
		opts.MaxWidth, _ = flags.GetInt("max-width")
	}
	if flags.Changed("filter") {
		f, _ := flags.GetString("filter")
		opts.Filter = preview.Filter(f)
	}
	format := env.Config.Preview.Format
	if out != "" && out != "-" {
		format = preview.FormatForPath(out)
	}
	if flags.Changed("format") {
		format, _ = flags.GetString("format")
	}
	format, err := preview.NormalizeFormat(format)
	if err != nil {
		return err
	}

	data, err := readInput(in)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	img, srcFormat, err := preview.Decode(data, env.Config.Limits())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := render(img, opts)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeOutput(out, true, func(w io.Writer) error { return preview.Encode(w, dst, format) }); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	slog.InfoContext(ctx, "Rendered preview",
		slog.String("in", in),
		slog.String("src_format", srcFormat),
		slog.String("out", out),
		slog.String("format", format),
		slog.Int("width", dst.Bounds().Dx()),
		slog.Int("height", dst.Bounds().Dy()))
	return nil
}

// readCube reads a .cube file or stdin, bounding the declared size
func readCube(path string, maxSize int) (*cube.Document, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("reading cube: %w", err)
	}
	r := cube.NewReader(bytes.NewReader(data))
	if maxSize > 0 {
		r.MaxSize = maxSize
	}
	return r.ReadDocument()
}

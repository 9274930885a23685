package preview

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/jpfielding/lut.go/pkg/lut"
	"github.com/jpfielding/lut.go/pkg/lut/lattice"
)

// DefaultMaxWidth is the preview width used when none is configured
const DefaultMaxWidth = 800

// Options configures preview rendering
type Options struct {
	MaxWidth int    // widest output in pixels; <= 0 keeps the source width
	Filter   Filter // downscaling kernel (default: box)
	Workers  int    // parallel row workers (default: runtime.NumCPU())
}

// DefaultOptions returns default render options
func DefaultOptions() *Options {
	return &Options{
		MaxWidth: DefaultMaxWidth,
		Filter:   FilterBox,
		Workers:  runtime.NumCPU(),
	}
}

// Render downscales img and pushes every pixel through the colour pipeline for adj
func Render(img image.Image, adj lut.Adjustments, opts *Options) (*image.NRGBA, error) {
	p, err := lut.NewPipeline(adj)
	if err != nil {
		return nil, err
	}
	return RenderFunc(img, p.Apply, opts)
}

// ApplyLattice downscales img and maps every pixel through l by trilinear lookup
func ApplyLattice(img image.Image, l *lattice.Lattice, opts *Options) (*image.NRGBA, error) {
	if l == nil || l.Size < lattice.MinSize || len(l.Data) != 3*l.Len() {
		return nil, fmt.Errorf("%w: invalid lattice", lut.ErrInvalidParameter)
	}
	return RenderFunc(img, l.Lookup, opts)
}

// RenderFunc downscales img and replaces each pixel's straight colour c,
// normalized to [0,1], with fn(c). Alpha is kept. fn must be safe for
// concurrent use.
func RenderFunc(img image.Image, fn func(lut.RGB) lut.RGB, opts *Options) (*image.NRGBA, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", lut.ErrInvalidParameter)
	}
	filter, err := ParseFilter(string(opts.Filter))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	src := Resize(img, opts.MaxWidth, filter)
	b := src.Bounds()
	dst := image.NewNRGBA(b)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, b.Dy())
	rows := make(chan int, b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				renderRow(dst, src, y, fn)
			}
		}()
	}
	wg.Wait()

	slog.Debug("Rendered preview",
		slog.Int("src_width", img.Bounds().Dx()),
		slog.Int("src_height", img.Bounds().Dy()),
		slog.Int("width", b.Dx()),
		slog.Int("height", b.Dy()),
		slog.String("filter", string(filter)),
		slog.Duration("elapsed", time.Since(start)))
	return dst, nil
}

func renderRow(dst *image.NRGBA, src *image.RGBA, y int, fn func(lut.RGB) lut.RGB) {
	b := src.Bounds()
	si := src.PixOffset(b.Min.X, y)
	di := dst.PixOffset(b.Min.X, y)
	for x := b.Min.X; x < b.Max.X; x, si, di = x+1, si+4, di+4 {
		s := src.Pix[si : si+4 : si+4]
		d := dst.Pix[di : di+4 : di+4]
		a := s[3]
		if a == 0 {
			d[0], d[1], d[2], d[3] = 0, 0, 0, 0
			continue
		}
		c := fn(lut.RGB{
			R: unpremultiply(s[0], a),
			G: unpremultiply(s[1], a),
			B: unpremultiply(s[2], a),
		})
		d[0], d[1], d[2], d[3] = to8(c.R), to8(c.G), to8(c.B), a
	}
}

// unpremultiply returns the straight channel value normalized to [0,1]
func unpremultiply(v, a uint8) float64 {
	if a == 0xff {
		return float64(v) / 255
	}
	return math.Min(float64(v)/float64(a), 1)
}

func to8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

package preview

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/jpfielding/lut.go/pkg/lut"
	"golang.org/x/image/draw"
)

// Filter names a downscaling kernel
type Filter string

const (
	FilterBox        Filter = "box"
	FilterBilinear   Filter = "bilinear"
	FilterCatmullRom Filter = "catmullrom"
)

// box averages every source pixel under the destination pixel
var box = &draw.Kernel{Support: 0.5, At: func(float64) float64 { return 1 }}

// ParseFilter maps a filter name to a Filter, case-insensitively
func ParseFilter(name string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FilterBox, nil
	case FilterBox, FilterBilinear, FilterCatmullRom:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown filter %q", lut.ErrInvalidParameter, name)
	}
}

func (f Filter) scaler() draw.Scaler {
	switch f {
	case FilterBilinear:
		return draw.BiLinear
	case FilterCatmullRom:
		return draw.CatmullRom
	default:
		return box
	}
}

// FitWidth returns the size of a w x h image scaled to at most maxWidth wide,
// keeping the aspect ratio. Images are never enlarged.
func FitWidth(w, h, maxWidth int) (int, int) {
	if maxWidth <= 0 || w <= maxWidth {
		return w, h
	}
	nh := int(math.Round(float64(h) * float64(maxWidth) / float64(w)))
	return maxWidth, max(nh, 1)
}

// Resize copies src into a new RGBA image no wider than maxWidth
func Resize(src image.Image, maxWidth int, filter Filter) *image.RGBA {
	b := src.Bounds()
	w, h := FitWidth(b.Dx(), b.Dy(), maxWidth)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	filter.scaler().Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Package preview applies adjustments or a sampled lattice to downscaled images.
package preview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/jpfielding/lut.go/pkg/lut"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds the decoded size of an input image
const DefaultMaxPixels = 64 << 20

// Limits bounds what Decode accepts
type Limits struct {
	MaxPixels int // width*height ceiling; <= 0 means DefaultMaxPixels
}

// Decode decodes an encoded image after checking its dimensions against limits.
// It returns the registered format name alongside the image.
func Decode(data []byte, limits Limits) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: no image data", lut.ErrImageDecode)
	}
	maxPixels := limits.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", lut.ErrImageDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("%w: %s image is %dx%d", lut.ErrImageDecode, format, cfg.Width, cfg.Height)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > int64(maxPixels) {
		return nil, "", fmt.Errorf("%w: %dx%d %s image exceeds %d pixels",
			lut.ErrResourceExceeded, cfg.Width, cfg.Height, format, maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", lut.ErrImageDecode, err)
	}
	slog.Debug("Decoded image",
		slog.String("format", format),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height))
	return img, format, nil
}

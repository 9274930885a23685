package preview

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/jpfielding/lut.go/pkg/lut"
)

// Output formats understood by Encode
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// JPEGQuality is the quality used for jpeg output
const JPEGQuality = 90

// NormalizeFormat maps a format name or alias to FormatPNG or FormatJPEG
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: unsupported output format %q", lut.ErrInvalidParameter, format)
	}
}

// FormatForPath picks the output format from a file extension, defaulting to png
func FormatForPath(path string) string {
	if f, err := NormalizeFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatPNG
}

// Encode writes img to w as png or jpeg
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return nil
}

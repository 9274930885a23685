// Package config loads lutctl settings from YAML.
//
//	lut:
//	  size: 33
//	  max_size: 65
//	  workers: 8
//	preview:
//	  max_width: 800
//	  filter: box
//	  max_pixels: 67108864
//	  format: png
//	log:
//	  level: INFO
//	  format: text
//	  file: /var/log/lutctl.log
//	  max_size_mb: 10
//	  max_backups: 3
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpfielding/lut.go/pkg/logging"
	"github.com/jpfielding/lut.go/pkg/lut"
	"github.com/jpfielding/lut.go/pkg/lut/lattice"
	"github.com/jpfielding/lut.go/pkg/lut/preview"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the config file when --config is not given
const EnvConfig = "LUTCTL_CONFIG"

type LUT struct {
	Size    int `yaml:"size"`
	MaxSize int `yaml:"max_size"`
	Workers int `yaml:"workers"` // 0 means one per CPU
}

type Preview struct {
	MaxWidth  int    `yaml:"max_width"`
	Filter    string `yaml:"filter"`
	MaxPixels int    `yaml:"max_pixels"`
	Format    string `yaml:"format"`
}

type Log struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"` // empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Config holds every lutctl setting
type Config struct {
	LUT     LUT     `yaml:"lut"`
	Preview Preview `yaml:"preview"`
	Log     Log     `yaml:"log"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		LUT: LUT{
			Size:    lattice.DefaultSize,
			MaxSize: lattice.MaxSize,
		},
		Preview: Preview{
			MaxWidth:  preview.DefaultMaxWidth,
			Filter:    string(preview.FilterBox),
			MaxPixels: preview.DefaultMaxPixels,
			Format:    preview.FormatPNG,
		},
		Log: Log{
			Level:      "INFO",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path over the defaults. An empty path falls back to $LUTCTL_CONFIG,
// and to the defaults alone when that is unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes YAML over the defaults and validates the result
func Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: config: %w", lut.ErrInvalidParameter, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	var errs []error
	if err := lattice.CheckSize(c.LUT.Size, c.LUT.MaxSize); err != nil {
		errs = append(errs, fmt.Errorf("lut.size: %w", err))
	}
	if c.LUT.MaxSize < lattice.MinSize || c.LUT.MaxSize > lattice.MaxSize {
		errs = append(errs, fmt.Errorf("%w: lut.max_size %d outside [%d,%d]",
			lut.ErrInvalidParameter, c.LUT.MaxSize, lattice.MinSize, lattice.MaxSize))
	}
	if c.LUT.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: lut.workers %d is negative", lut.ErrInvalidParameter, c.LUT.Workers))
	}
	if c.Preview.MaxWidth < 0 {
		errs = append(errs, fmt.Errorf("%w: preview.max_width %d is negative", lut.ErrInvalidParameter, c.Preview.MaxWidth))
	}
	if c.Preview.MaxPixels < 0 {
		errs = append(errs, fmt.Errorf("%w: preview.max_pixels %d is negative", lut.ErrInvalidParameter, c.Preview.MaxPixels))
	}
	if _, err := preview.ParseFilter(c.Preview.Filter); err != nil {
		errs = append(errs, fmt.Errorf("preview.filter: %w", err))
	}
	if _, err := preview.NormalizeFormat(c.Preview.Format); err != nil {
		errs = append(errs, fmt.Errorf("preview.format: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %w", lut.ErrInvalidParameter, err))
	}
	if _, err := logging.IsJSON(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.format: %w", lut.ErrInvalidParameter, err))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Errorf("%w: log rotation limits must not be negative", lut.ErrInvalidParameter))
	}
	return errors.Join(errs...)
}

// SampleOptions returns the lattice sampling options
func (c *Config) SampleOptions() *lattice.Options {
	return &lattice.Options{Workers: c.LUT.Workers, MaxSize: c.LUT.MaxSize}
}

// RenderOptions returns the preview render options
func (c *Config) RenderOptions() *preview.Options {
	return &preview.Options{
		MaxWidth: c.Preview.MaxWidth,
		Filter:   preview.Filter(c.Preview.Filter),
		Workers:  c.LUT.Workers,
	}
}

// Limits returns the decode limits
func (c *Config) Limits() preview.Limits {
	return preview.Limits{MaxPixels: c.Preview.MaxPixels}
}

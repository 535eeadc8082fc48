package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/curveview"
)

// Config holds the viewer settings. Fields may be loaded from a JSON file
// and overridden by command-line flags.
type Config struct {
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// ROI is the initial region of interest as xmin, xmax, ymin, ymax.
	// Empty means frame all curves.
	ROI                 []float64 `json:"roi,omitempty"`
	PreserveAspectRatio bool      `json:"preserve_aspect_ratio"`

	// Output switches to headless mode and names the PNG to write.
	Output    string  `json:"output,omitempty"`
	GPU       bool    `json:"gpu"`
	LineWidth float64 `json:"line_width"`

	// ClearColor is the background as a hex color, e.g. "#fff" or "#202020".
	ClearColor string `json:"clear_color"`

	LogLevel string `json:"log_level"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Data:                "data.txt",
		Width:               800,
		Height:              800,
		PreserveAspectRatio: true,
		LineWidth:           curveview.DefaultLineWidth,
		ClearColor:          "#ffffff",
		LogLevel:            "warn",
	}
}

// Validate resets out-of-range sizes to defaults and rejects settings that
// cannot be used.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.LineWidth <= 0 {
		c.LineWidth = def.LineWidth
	}
	if c.Data == "" {
		return errors.New("config: no data file")
	}
	if len(c.ROI) != 0 {
		if _, err := c.Region(); err != nil {
			return err
		}
	}
	if _, err := c.Background(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Background parses ClearColor.
func (c *Config) Background() (curveview.RGBA, error) {
	bg, err := curveview.ParseHex(c.ClearColor)
	if err != nil {
		return curveview.RGBA{}, fmt.Errorf("config: clear color: %w", err)
	}
	return bg, nil
}

// Region returns the configured region of interest. It fails unless ROI
// holds four values forming a valid region.
func (c *Config) Region() (curveview.Region, error) {
	if len(c.ROI) != 4 {
		return curveview.Region{}, fmt.Errorf("config: roi needs 4 values, got %d", len(c.ROI))
	}
	r := curveview.Region{
		XMin: c.ROI[0], XMax: c.ROI[1],
		YMin: c.ROI[2], YMax: c.ROI[3],
		ZMin: -1, ZMax: 1,
	}
	if !r.Valid() {
		return curveview.Region{}, fmt.Errorf("config: roi %v: %w", c.ROI, curveview.ErrInvalidRegion)
	}
	return r, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}

// Load reads configuration from the given JSON file path on top of the
// defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parseROI parses "xmin,xmax,ymin,ymax".
func parseROI(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("roi %q: want xmin,xmax,ymin,ymax", s)
	}
	roi := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("roi %q: %w", s, err)
		}
		roi[i] = v
	}
	return roi, nil
}

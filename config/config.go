// Package config loads image module settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/transform"
)

// Config holds the values of an image module.
//
//	palette: bwy
//	dither: false
//	autoflip: true
//	orientation: vertical
//	width: 296
type Config struct {
	Palette epaper.Palette `yaml:"palette"`

	// Dither enables error diffusion.
	Dither bool `yaml:"dither"`

	// Perceptual picks nearest colors in L*a*b* when not dithering.
	Perceptual bool `yaml:"perceptual"`

	// Autoflip rotates the image to match Orientation.
	Autoflip    bool                  `yaml:"autoflip"`
	Orientation transform.Orientation `yaml:"orientation"`

	// Width and Height to scale to, zero keeps the source size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Palette:     epaper.BlackWhiteRed,
		Dither:      true,
		Orientation: transform.Horizontal,
	}
}

// Parse decodes YAML on top of the defaults and validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	if _, err := epaper.BuildPalette(c.Palette); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Orientation.MarshalText(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	return nil
}

// Options returns the quantization options for this configuration.
func (c *Config) Options() *epaper.Options {
	return &epaper.Options{
		Dither:     c.Dither,
		Perceptual: c.Perceptual,
	}
}

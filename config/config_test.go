package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/transform"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
palette: bwy
dither: false
perceptual: true
autoflip: true
orientation: vertical
width: 296
`))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Palette:     epaper.BlackWhiteYellow,
		Perceptual:  true,
		Autoflip:    true,
		Orientation: transform.Vertical,
		Width:       296,
	}, cfg)

	opts := cfg.Options()
	assert.False(t, opts.Dither)
	assert.True(t, opts.Perceptual)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Parse([]byte("width: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, epaper.BlackWhiteRed, cfg.Palette)
	assert.True(t, cfg.Dither)
	assert.Equal(t, 10, cfg.Width)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"palette", "palette: cmyk\n"},
		{"orientation", "orientation: diagonal\n"},
		{"size", "height: -1\n"},
		{"unknown", "colour: red\n"},
		{"syntax", "palette: [bwr\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.text))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("palette: cmyk\n"))
	var unsupported *epaper.UnsupportedPaletteError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "cmyk", unsupported.Token)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epaper.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette: 16gray\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, epaper.Gray16, cfg.Palette)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

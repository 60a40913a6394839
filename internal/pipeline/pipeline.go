// Package pipeline runs the image module flow from a decoded image to display planes.
package pipeline

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/config"
	"github.com/BeatGlow/epaper/draw"
	"github.com/BeatGlow/epaper/pixel"
	"github.com/BeatGlow/epaper/transform"
)

// Result holds the output of a pipeline run.
type Result struct {
	// Planes are set for palettes with an accent ink.
	Planes *epaper.Planes

	// Gray is set for the Gray16 palette instead of Planes.
	Gray *pixel.Gray4Image

	// Rotated is set if the image was flipped to match the configured orientation.
	Rotated bool

	SrcWidth  int
	SrcHeight int
	Width     int
	Height    int
}

// Run executes the pipeline: flatten → autoflip → resize → separate. Gray16 images are
// quantized to gray levels instead of being separated.
func Run(img image.Image, cfg *config.Config, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("flatten: %w", &epaper.DimensionError{Op: "flatten", Size: size})
	}
	result := &Result{
		SrcWidth:  size.X,
		SrcHeight: size.Y,
	}

	// 1. Transparent areas become paper white
	var src image.Image = draw.Flatten(img)

	// 2. Match the layout of the drawing area
	if cfg.Autoflip {
		src, result.Rotated = transform.Autoflip(src, cfg.Orientation)
		if result.Rotated {
			log.Debug("rotated image", zap.Stringer("orientation", cfg.Orientation))
		}
	}

	// 3. Scale
	if cfg.Width > 0 || cfg.Height > 0 {
		var err error
		if src, err = transform.Resize(src, cfg.Width, cfg.Height); err != nil {
			return nil, fmt.Errorf("resize: %w", err)
		}
		log.Debug("resized image", zap.Stringer("size", src.Bounds().Size()))
	}

	// 4. Quantize and split
	opts := cfg.Options()
	opts.Logger = log
	if cfg.Palette == epaper.Gray16 {
		gray, err := epaper.QuantizeGray(src, opts)
		if err != nil {
			return nil, fmt.Errorf("quantize: %w", err)
		}
		result.Gray = gray
		result.Width, result.Height = gray.Rect.Dx(), gray.Rect.Dy()
	} else {
		planes, err := epaper.SeparatePlanes(src, cfg.Palette, opts)
		if err != nil {
			return nil, fmt.Errorf("separate: %w", err)
		}
		result.Planes = planes
		result.Width, result.Height = planes.Bounds().Dx(), planes.Bounds().Dy()
	}

	log.Info("separated image",
		zap.Stringer("palette", cfg.Palette),
		zap.Int("width", result.Width),
		zap.Int("height", result.Height))
	return result, nil
}

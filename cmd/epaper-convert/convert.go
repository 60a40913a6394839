package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/config"
	"github.com/BeatGlow/epaper/draw"
	"github.com/BeatGlow/epaper/internal/pipeline"
	"github.com/BeatGlow/epaper/transform"
)

func runConvert(cmd *cobra.Command, args []string) error {
	var (
		flags         = cmd.Flags()
		debug, _      = flags.GetBool("debug")
		configPath, _ = flags.GetString("config")
		rotate, _     = flags.GetString("rotate")
		overlay, _    = flags.GetString("overlay")
		out, _        = flags.GetString("out")
		raw, _        = flags.GetBool("raw")
		invert, _     = flags.GetBool("invert")
		inputPath     = args[0]
	)

	log, err := newLogger(debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	cfg := config.Default()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		log.Debug("loaded config", zap.String("path", configPath))
	}
	if err = applyFlags(cmd, cfg); err != nil {
		return err
	}

	rotation, err := transform.ParseRotation(rotate)
	if err != nil {
		return err
	}

	img, format, err := decode(inputPath)
	if err != nil {
		return err
	}
	log.Debug("decoded image",
		zap.String("path", inputPath),
		zap.String("format", format),
		zap.Stringer("size", img.Bounds().Size()))

	if overlay != "" {
		top, _, err := decode(overlay)
		if err != nil {
			return err
		}
		if img, err = draw.Merge(img, top); err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
		log.Debug("merged overlay", zap.String("path", overlay))
	}

	result, err := pipeline.Run(transform.Rotate(img, rotation), cfg, log)
	if err != nil {
		return fmt.Errorf("conversion: %w", err)
	}

	if out == "" {
		out = strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	}

	var outputs []output
	if result.Gray != nil {
		outputs = append(outputs, output{out + "-gray", result.Gray, result.Gray.Pix})
	} else {
		black, color := result.Planes.Black, result.Planes.Color
		outputs = append(outputs,
			output{out + "-black", black, black.Pix},
			output{out + "-color", color, color.Pix})
		if invert {
			outputs[0].raw = black.Inverted().Pix
			outputs[1].raw = color.Inverted().Pix
		}
	}

	for _, o := range outputs {
		if err = writePNG(o.name+".png", o.img); err != nil {
			return err
		}
		log.Info("wrote image", zap.String("path", o.name+".png"))
		if raw {
			if err = os.WriteFile(o.name+".bin", o.raw, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			log.Info("wrote buffer", zap.String("path", o.name+".bin"), zap.Int("size", len(o.raw)))
		}
	}

	fmt.Printf("Converted %dx%d → %dx%d %s\n",
		result.SrcWidth, result.SrcHeight, result.Width, result.Height, cfg.Palette)
	return nil
}

type output struct {
	name string
	img  image.Image
	raw  []byte
}

// applyFlags overrides configuration values with flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) (err error) {
	flags := cmd.Flags()
	if flags.Changed("palette") {
		token, _ := flags.GetString("palette")
		if cfg.Palette, err = epaper.ParsePalette(token); err != nil {
			return err
		}
	}
	if flags.Changed("dither") {
		cfg.Dither, _ = flags.GetBool("dither")
	}
	if flags.Changed("perceptual") {
		cfg.Perceptual, _ = flags.GetBool("perceptual")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	return cfg.Validate()
}

func decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading input: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, format, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "epaper-convert [flags] <image>",
	Short:         "Convert an image to black and color planes for e-paper panels",
	Args:          cobra.ExactArgs(1),
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("config", "c", "", "YAML configuration file")
	flags.StringP("palette", "p", "bwr", "Palette (bwr, bwy, bw, 16gray)")
	flags.Bool("dither", true, "Enable Floyd-Steinberg dithering")
	flags.Bool("perceptual", false, "Match colors in L*a*b* when not dithering")
	flags.Int("width", 0, "Scale to width, keeping the aspect ratio")
	flags.Int("height", 0, "Scale to height, keeping the aspect ratio")
	flags.String("rotate", "", "Rotate counter-clockwise by a multiple of 90°")
	flags.String("overlay", "", "Image pasted over the input, white is transparent")
	flags.StringP("out", "o", "", "Output file prefix (default: input name)")
	flags.Bool("raw", false, "Also write the packed plane buffers")
	flags.Bool("invert", false, "Write raw planes with set bits as ink")
	flags.BoolP("debug", "v", false, "Verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

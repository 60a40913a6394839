// Package transform rotates and scales images to fit a panel before they are separated into
// planes.
package transform

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// Errors
var (
	ErrAngle  = errors.New("transform: angle must be a multiple of 90")
	ErrNoSize = errors.New("transform: no width or height specified")
)

// Rotation defines counter-clockwise image rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° counter-clockwise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° counter-clockwise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// FromAngle converts an angle in degrees to a Rotation. Negative angles rotate clockwise.
func FromAngle(angle int) (Rotation, error) {
	if angle%90 != 0 {
		return NoRotation, fmt.Errorf("%w, got %d", ErrAngle, angle)
	}
	return Rotation(((angle/90)%4 + 4) % 4), nil
}

// ParseRotation parses an angle such as "90" or "-90°".
func ParseRotation(s string) (Rotation, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "°")
	if s == "" {
		return NoRotation, nil
	}
	angle, err := strconv.Atoi(s)
	if err != nil {
		return NoRotation, fmt.Errorf("transform: invalid rotation %q", s)
	}
	return FromAngle(angle)
}

// Rotate rotates img counter-clockwise, growing the canvas to fit.
func Rotate(img image.Image, r Rotation) image.Image {
	switch r % 4 {
	case Rotate90:
		return imaging.Rotate90(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case Rotate270:
		return imaging.Rotate270(img)
	default:
		return img
	}
}

// Orientation is the layout of the area an image is drawn in.
type Orientation uint8

// Supported orientations.
const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "Orientation(" + strconv.Itoa(int(o)) + ")"
	}
}

// ParseOrientation parses "horizontal" or "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("transform: unsupported orientation %q", s)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Orientation) UnmarshalText(text []byte) (err error) {
	*o, err = ParseOrientation(string(text))
	return
}

// MarshalText implements [encoding.TextMarshaler].
func (o Orientation) MarshalText() ([]byte, error) {
	if o != Horizontal && o != Vertical {
		return nil, fmt.Errorf("transform: unsupported orientation %d", o)
	}
	return []byte(o.String()), nil
}

// Autoflip rotates img by 90° when it is portrait and the layout is horizontal, or landscape and
// the layout is vertical. It reports whether the image was rotated.
func Autoflip(img image.Image, o Orientation) (image.Image, bool) {
	size := img.Bounds().Size()
	switch {
	case o == Horizontal && size.Y > size.X,
		o == Vertical && size.X > size.Y:
		return Rotate(img, Rotate90), true
	default:
		return img, false
	}
}

// Resize scales img to the given width, and then to the given height, each time preserving the
// aspect ratio. A width or height of zero skips that step.
func Resize(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 && height <= 0 {
		return nil, ErrNoSize
	}

	if width > 0 {
		size := img.Bounds().Size()
		h := int(float64(size.Y) * float64(width) / float64(size.X))
		img = imaging.Resize(img, width, max(h, 1), imaging.Lanczos)
	}
	if height > 0 {
		size := img.Bounds().Size()
		w := int(float64(size.X) * float64(height) / float64(size.Y))
		img = imaging.Resize(img, max(w, 1), height, imaging.Lanczos)
	}
	return img, nil
}

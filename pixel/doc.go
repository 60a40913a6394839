// Package pixel implements the packed color models and bitmaps used by e-paper panels.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, while their Pix buffers use the byte layout panel controllers expect, so a plane can
// be streamed to the hardware without repacking.
package pixel

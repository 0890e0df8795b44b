package imaging

import (
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Rotate turns the image counter-clockwise by angle degrees and returns img.
//
// Areas of the new bounding box not covered by the source are filled with
// bg; a nil bg fills with opaque black. Multiples of 90 degrees are exact,
// so a 400x300 image rotated by 90 becomes 300x400. A NaN or infinite angle
// leaves the image unchanged.
func (img *Image) Rotate(angle float64, bg color.Color) *Image {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return img
	}
	if bg == nil {
		bg = color.Black
	}
	img.setPixels(imaging.Rotate(img.pixels, angle, bg))
	return img
}

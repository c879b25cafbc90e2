package render

import (
	"math"

	"github.com/matzehuels/lintrans/pkg/geom"
)

// Camera maps scene units to pixel coordinates. The scene frame is fitted
// into the image and centered, so mismatched aspect ratios letterbox.
type Camera struct {
	Width, Height           int     // pixels
	FrameWidth, FrameHeight float64 // scene units
}

// NewCamera returns a camera for an image of w×h pixels showing a frame of
// fw×fh scene units.
func NewCamera(w, h int, fw, fh float64) Camera {
	return Camera{Width: w, Height: h, FrameWidth: fw, FrameHeight: fh}
}

// Scale returns pixels per scene unit.
func (c Camera) Scale() float64 {
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return 0
	}
	return math.Min(float64(c.Width)/c.FrameWidth, float64(c.Height)/c.FrameHeight)
}

// ToPixel maps a scene point to pixel coordinates.
func (c Camera) ToPixel(p geom.Point) (x, y float64) {
	s := c.Scale()
	return float64(c.Width)/2 + p.X*s, float64(c.Height)/2 - p.Y*s
}

// Length converts a scene length to pixels.
func (c Camera) Length(u float64) float64 {
	return u * c.Scale()
}

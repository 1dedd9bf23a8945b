package math3d

import "github.com/chewxy/math32"

// ScreenCoord is a pixel coordinate. The origin is the top-left corner of
// the canvas, with y increasing downward.
type ScreenCoord struct {
	X, Y int
}

// NDCToPixel converts a normalized device coordinate to a screen
// coordinate for a canvas of size w x h.
func NDCToPixel(v Vec3, w, h int) ScreenCoord {
	return ScreenCoord{
		X: int(math32.Floor((v.X + 1) * 0.5 * float32(w))),
		Y: int(math32.Floor((1 - v.Y) * 0.5 * float32(h))),
	}
}

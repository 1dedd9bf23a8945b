package math3d

import "github.com/chewxy/math32"

// Color is an RGB color, one byte per channel. There is no alpha channel;
// the rasterizer's output format has no notion of transparency.
type Color struct {
	R, G, B uint8
}

// Vec3 converts a Color to a Vec3 with each channel scaled to [0,1].
func (c Color) Vec3() Vec3 {
	return Vec3{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
	}
}

// ColorFromVec3 converts a Vec3 to a Color, clamping each channel to
// [0,1] and truncating (not rounding) the scaled byte value.
func ColorFromVec3(v Vec3) Color {
	return Color{
		R: clampByte(v.X),
		G: clampByte(v.Y),
		B: clampByte(v.Z),
	}
}

func clampByte(f float32) uint8 {
	f = math32.Max(0, math32.Min(1, f))
	return uint8(f * 255)
}

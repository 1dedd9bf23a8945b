// Package math3d provides the 3D math primitives the rasterizer is built
// on: vectors, matrices, screen coordinates and colors. All components are
// float32, matching the data model the mesh and scene loaders produce.
package math3d

import "github.com/chewxy/math32"

// Vec3 represents a 3D vector or point.
type Vec3 struct {
	X, Y, Z float32
}

// V3 creates a new Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product a * b.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Magnitude returns the length of the vector.
func (a Vec3) Magnitude() float32 {
	return math32.Sqrt(a.Dot(a))
}

// Normalized returns the unit vector in the same direction. The zero
// vector normalizes to itself rather than producing NaN.
func (a Vec3) Normalized() Vec3 {
	m := a.Magnitude()
	if m == 0 {
		return Vec3{}
	}
	return Vec3{a.X / m, a.Y / m, a.Z / m}
}

// Distance returns the distance between two points.
func (a Vec3) Distance(b Vec3) float32 {
	return a.Sub(b).Magnitude()
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math32.Min(a.X, b.X), math32.Min(a.Y, b.Y), math32.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math32.Max(a.X, b.X), math32.Max(a.Y, b.Y), math32.Max(a.Z, b.Z)}
}

package math3d

import (
	"math"
	"testing"
)

func approxEq(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestVec3Normalized(t *testing.T) {
	v := V3(3, 4, 0)
	n := v.Normalized()
	if !approxEq(n.Magnitude(), 1, 1e-6) {
		t.Errorf("expected unit length, got %f", n.Magnitude())
	}
	want := V3(3.0/5, 4.0/5, 0)
	if !approxEq(n.X, want.X, 1e-6) || !approxEq(n.Y, want.Y, 1e-6) {
		t.Errorf("normalized(v) = %+v, want %+v", n, want)
	}
}

func TestVec3NormalizedZero(t *testing.T) {
	n := Zero3().Normalized()
	if n != (Vec3{}) {
		t.Errorf("normalized(zero) = %+v, want origin not NaN", n)
	}
}

func TestVec3CrossAnticommutative(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -1, 2)
	ab := a.Cross(b)
	ba := b.Cross(a)
	neg := V3(-ba.X, -ba.Y, -ba.Z)
	if !approxEq(ab.X, neg.X, 1e-6) || !approxEq(ab.Y, neg.Y, 1e-6) || !approxEq(ab.Z, neg.Z, 1e-6) {
		t.Errorf("cross(a,b) = %+v, want -cross(b,a) = %+v", ab, neg)
	}
}

func TestVec3DotCrossOrthogonal(t *testing.T) {
	a := V3(1, 0, 0)
	b := V3(0, 1, 0)
	d := a.Dot(a.Cross(b))
	if math.Abs(float64(d)) > 1e-5 {
		t.Errorf("dot(a, cross(a,b)) = %f, want ~0", d)
	}
}

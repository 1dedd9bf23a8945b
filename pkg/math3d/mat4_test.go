package math3d

import "testing"

func matApproxEq(a, b Mat4, eps float32) bool {
	for i := range a {
		if !approxEq(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func TestIdentityIsMulUnit(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.7))
	if !matApproxEq(Identity().Mul(m), m, 1e-6) {
		t.Errorf("identity * m != m")
	}
	if !matApproxEq(m.Mul(Identity()), m, 1e-6) {
		t.Errorf("m * identity != m")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(V3(2, -1, 5)).Mul(RotateX(0.4)).Mul(Scale(V3(2, 3, 1)))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("unexpected Inverse error: %v", err)
	}
	if !matApproxEq(m.Mul(inv), Identity(), 1e-4) {
		t.Errorf("m * inverse(m) != identity")
	}
}

func TestInverseSingular(t *testing.T) {
	m := Scale(V3(0, 1, 1))
	_, err := m.Inverse()
	if err == nil {
		t.Fatalf("expected Singular error for a matrix with a zero scale axis")
	}
}

func TestTransposeInvolution(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateZ(0.3))
	if m.Transpose().Transpose() != m {
		t.Errorf("transpose(transpose(m)) != m")
	}
}

func TestNDCToPixelCorners(t *testing.T) {
	w, h := 800, 600
	topLeft := NDCToPixel(V3(-1, 1, 0), w, h)
	if topLeft != (ScreenCoord{0, 0}) {
		t.Errorf("NDCToPixel(-1,1) = %+v, want (0,0)", topLeft)
	}
	bottomRight := NDCToPixel(V3(1, -1, 0), w, h)
	if bottomRight != (ScreenCoord{w, h}) {
		t.Errorf("NDCToPixel(1,-1) = %+v, want (%d,%d)", bottomRight, w, h)
	}
}

func TestNormalMatrixSingularFallsBackToIdentity(t *testing.T) {
	degenerate := Scale(V3(0, 1, 1))
	nm := NormalMatrix(degenerate)
	if nm != Identity3() {
		t.Errorf("NormalMatrix(singular) = %+v, want identity", nm)
	}
}

func TestMulPointDividesByW(t *testing.T) {
	m := Perspective(1.0, 16.0/9.0, 0.1, 100)
	p := m.MulPoint(V3(0, 0, -1))
	if p.Z == 0 {
		t.Errorf("expected a finite divide result")
	}

	// At z=-2 the clip-space w is 2 and the undivided clip z is about
	// 1.8038, so the returned z is half of that.
	q := m.MulPoint(V3(0, 0, -2))
	if !approxEq(q.Z, 0.9019019, 1e-5) {
		t.Errorf("MulPoint(0,0,-2).Z = %v, want ~0.9019 (clip z divided by w)", q.Z)
	}
}

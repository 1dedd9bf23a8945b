package scene

import "github.com/taigrr/rasterkit/pkg/math3d"

// Camera holds a canvas size, clip planes, and the view/projection
// matrices derived from them. The view matrix is identity until LookAt is
// called.
type Camera struct {
	CanvasWidth, CanvasHeight int
	FOV, Near, Far            float32

	eye, center, up math3d.Vec3
	hasLookAt       bool

	viewMat, projMat math3d.Mat4
	viewDirty        bool
	projDirty        bool
}

// NewCamera builds a camera with the given canvas size, vertical FOV (in
// radians) and clip planes. Aspect ratio is canvasW/canvasH. The view
// matrix starts as identity.
func NewCamera(canvasW, canvasH int, fov, near, far float32) *Camera {
	return &Camera{
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		FOV:          fov,
		Near:         near,
		Far:          far,
		viewMat:      math3d.Identity(),
		viewDirty:    false,
		projDirty:    true,
	}
}

// LookAt replaces the view matrix with a right-handed look-at transform.
func (c *Camera) LookAt(eye, center, up math3d.Vec3) {
	c.eye, c.center, c.up = eye, center, up
	c.hasLookAt = true
	c.viewDirty = true
}

// ViewMatrix returns the camera's view matrix, recomputing it if LookAt
// was called since the last read.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		if c.hasLookAt {
			c.viewMat = math3d.LookAt(c.eye, c.center, c.up)
		} else {
			c.viewMat = math3d.Identity()
		}
		c.viewDirty = false
	}
	return c.viewMat
}

// ProjectionMatrix returns the camera's perspective projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		aspect := float32(c.CanvasWidth) / float32(c.CanvasHeight)
		c.projMat = math3d.Perspective(c.FOV, aspect, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMat
}

// NewRawCamera builds a camera with explicit view and projection matrices,
// bypassing FOV-derived projection. Used where a caller needs exact
// control over both matrices, such as an orthographic-style identity
// projection for testing.
func NewRawCamera(canvasW, canvasH int, near, far float32, view, proj math3d.Mat4) *Camera {
	return &Camera{
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		Near:         near,
		Far:          far,
		viewMat:      view,
		projMat:      proj,
		viewDirty:    false,
		projDirty:    false,
	}
}

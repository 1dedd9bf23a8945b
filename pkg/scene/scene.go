// Package scene holds the placed-object data model a rendered frame is
// built from — camera, lights, models — and the scene description loader
// that builds them from a small custom XML grammar.
package scene

import (
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/mesh"
)

// Light is a point light: world position, byte color, and an ambient
// strength in [0,1] applied regardless of incidence angle.
type Light struct {
	Position        math3d.Vec3
	Color           math3d.Color
	AmbientStrength float32
}

// Model places a mesh in world space via a model-to-world transform.
type Model struct {
	Mesh      *mesh.Mesh
	Transform math3d.Mat4
}

// Scene is one camera, a list of placed models, and a list of lights.
type Scene struct {
	Camera *Camera
	Models []Model
	Lights []Light
}

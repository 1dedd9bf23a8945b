// Package mesh holds the mesh data model and its loaders: positions,
// per-vertex normals and optional texcoords addressed independently by
// each triangle, plus the OBJ (and bonus glTF) loaders that build them.
package mesh

import (
	"github.com/taigrr/rasterkit/pkg/image"
	"github.com/taigrr/rasterkit/pkg/math3d"
)

// Triangle references three vertex positions, three normals and three
// texcoords, each independently indexed into the owning Mesh's arrays.
type Triangle struct {
	A, B, C    int
	AN, BN, CN int
	AT, BT, CT int
}

// Mesh is a triangle mesh: positions, per-vertex normals (generated if the
// source didn't provide any), optional per-vertex texcoords, a triangle
// list, and an optional texture.
type Mesh struct {
	Positions []math3d.Vec3
	Normals   []math3d.Vec3
	Texcoords []math3d.Vec2
	Triangles []Triangle
	Texture   *image.Image
}

// Bounds returns the mesh's axis-aligned bounding box in local space.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Positions) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// generateNormals fills Normals by summing, for each vertex, the face
// normal (Cross(v2-v0, v1-v0), normalized) of every triangle that uses it,
// then normalizing the sum. Used when the source file carries no normals
// of its own.
func generateNormals(positions []math3d.Vec3, triangles []Triangle) []math3d.Vec3 {
	sums := make([]math3d.Vec3, len(positions))
	for _, t := range triangles {
		v0, v1, v2 := positions[t.A], positions[t.B], positions[t.C]
		faceNormal := v2.Sub(v0).Cross(v1.Sub(v0)).Normalized()
		sums[t.A] = sums[t.A].Add(faceNormal)
		sums[t.B] = sums[t.B].Add(faceNormal)
		sums[t.C] = sums[t.C].Add(faceNormal)
	}
	normals := make([]math3d.Vec3, len(sums))
	for i, s := range sums {
		normals[i] = s.Normalized()
	}
	return normals
}

// Package raster is the rasterization engine: given one mesh, its
// model-to-world transform, a light list and a camera, it rasterizes the
// mesh's triangles into caller-owned color and depth buffers. It holds no
// state of its own and never fails — a singular model matrix falls back to
// an identity normal matrix, and degenerate triangles and off-screen
// geometry are silently skipped.
package raster

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/mesh"
	"github.com/taigrr/rasterkit/pkg/scene"
)

// RenderScene rasterizes every model in s into colorBuf/depthBuf, in
// model order, using the scene's camera and full light list for each.
func RenderScene(s *scene.Scene, colorBuf []math3d.Color, depthBuf []float32) {
	for _, model := range s.Models {
		DrawMesh(model.Mesh, model.Transform, s.Lights, s.Camera, colorBuf, depthBuf)
	}
}

// DrawMesh rasterizes every triangle of m, transformed by modelMat and lit
// by lights, into colorBuf/depthBuf sized camera.CanvasWidth *
// camera.CanvasHeight. It never reads or writes outside those buffers.
func DrawMesh(m *mesh.Mesh, modelMat math3d.Mat4, lights []scene.Light, camera *scene.Camera, colorBuf []math3d.Color, depthBuf []float32) {
	if m == nil {
		return
	}
	normalMat := math3d.NormalMatrix(modelMat)
	viewProj := camera.ProjectionMatrix().Mul(camera.ViewMatrix())
	w, h := camera.CanvasWidth, camera.CanvasHeight

	for _, t := range m.Triangles {
		drawTriangle(m, t, modelMat, normalMat, viewProj, lights, camera, w, h, colorBuf, depthBuf)
	}
}

func drawTriangle(
	m *mesh.Mesh,
	t mesh.Triangle,
	modelMat math3d.Mat4,
	normalMat math3d.Mat3,
	viewProj math3d.Mat4,
	lights []scene.Light,
	camera *scene.Camera,
	w, h int,
	colorBuf []math3d.Color,
	depthBuf []float32,
) {
	world0 := modelMat.MulPoint(m.Positions[t.A])
	world1 := modelMat.MulPoint(m.Positions[t.B])
	world2 := modelMat.MulPoint(m.Positions[t.C])

	normal0 := normalMat.MulVec3(m.Normals[t.AN]).Normalized()
	normal1 := normalMat.MulVec3(m.Normals[t.BN]).Normalized()
	normal2 := normalMat.MulVec3(m.Normals[t.CN]).Normalized()

	ndc0 := viewProj.MulPoint(world0)
	ndc1 := viewProj.MulPoint(world1)
	ndc2 := viewProj.MulPoint(world2)

	if !isOnScreen(ndc0, camera.Near, camera.Far) &&
		!isOnScreen(ndc1, camera.Near, camera.Far) &&
		!isOnScreen(ndc2, camera.Near, camera.Far) {
		return
	}

	p0 := math3d.NDCToPixel(ndc0, w, h)
	p1 := math3d.NDCToPixel(ndc1, w, h)
	p2 := math3d.NDCToPixel(ndc2, w, h)

	lit0 := litColor(lights, world0, normal0)
	lit1 := litColor(lights, world1, normal1)
	lit2 := litColor(lights, world2, normal2)

	invZ0 := 1 / ndc0.Z
	invZ1 := 1 / ndc1.Z
	invZ2 := 1 / ndc2.Z

	c0 := lit0.Scale(invZ0)
	c1 := lit1.Scale(invZ1)
	c2 := lit2.Scale(invZ2)

	textured := m.Texture != nil
	var uv0, uv1, uv2 math3d.Vec2
	if textured {
		uv0 = m.Texcoords[t.AT].Scale(invZ0)
		uv1 = m.Texcoords[t.BT].Scale(invZ1)
		uv2 = m.Texcoords[t.CT].Scale(invZ2)
	}

	area := edge(p2, p0, p1)
	if area == 0 {
		return
	}
	// A triangle wound counter-clockwise in NDC (y up) has a negative area
	// in pixel space (y down). Flip the sign of its area, edge weights and
	// edge vectors so that both windings rasterize the same way.
	sign := float32(1)
	if area < 0 {
		sign = -1
	}
	area *= sign

	minX := clampInt(min3i(p0.X, p1.X, p2.X), 0, w)
	maxX := clampInt(max3i(p0.X, p1.X, p2.X), 0, w)
	minY := clampInt(min3i(p0.Y, p1.Y, p2.Y), 0, h)
	maxY := clampInt(max3i(p0.Y, p1.Y, p2.Y), 0, h)

	edge0Top := isTopLeft(sign*(ndc2.X-ndc1.X), sign*(ndc2.Y-ndc1.Y))
	edge1Top := isTopLeft(sign*(ndc0.X-ndc2.X), sign*(ndc0.Y-ndc2.Y))
	edge2Top := isTopLeft(sign*(ndc1.X-ndc0.X), sign*(ndc1.Y-ndc0.Y))

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			pixel := math3d.ScreenCoord{X: x, Y: y}
			w0 := sign * edge(pixel, p1, p2)
			w1 := sign * edge(pixel, p2, p0)
			w2 := sign * edge(pixel, p0, p1)

			if !coversSample(w0, edge0Top) || !coversSample(w1, edge1Top) || !coversSample(w2, edge2Top) {
				continue
			}

			w0 /= area
			w1 /= area
			w2 /= area

			invZ := w0*invZ0 + w1*invZ1 + w2*invZ2
			z := 1 / invZ
			idx := y*w + x
			if z >= depthBuf[idx] {
				continue
			}

			lit := c0.Scale(w0).Add(c1.Scale(w1)).Add(c2.Scale(w2)).Scale(z)
			final := lit
			if textured {
				u := uv0.Scale(w0).Add(uv1.Scale(w1)).Add(uv2.Scale(w2)).Scale(z)
				tex := m.Texture.SampleBilinear(u.X, u.Y).Vec3()
				final = math3d.V3(lit.X*tex.X, lit.Y*tex.Y, lit.Z*tex.Z)
			}

			depthBuf[idx] = z
			colorBuf[idx] = math3d.ColorFromVec3(final)
		}
	}
}

// litColor sums, over every light, the Lambertian diffuse term plus the
// light's ambient contribution.
func litColor(lights []scene.Light, world, normal math3d.Vec3) math3d.Vec3 {
	var sum math3d.Vec3
	for _, lt := range lights {
		toLight := lt.Position.Sub(world).Normalized()
		c := lt.Color.Vec3()
		diffuse := c.Scale(math32.Max(normal.Dot(toLight), 0))
		ambient := c.Scale(lt.AmbientStrength)
		sum = sum.Add(diffuse).Add(ambient)
	}
	return sum
}

// isOnScreen reports whether an NDC point lies within the canonical
// x/y box and between the camera's clip planes in z.
func isOnScreen(n math3d.Vec3, near, far float32) bool {
	return n.Z > near && n.Z < far && n.X >= -1 && n.X <= 1 && n.Y >= -1 && n.Y <= 1
}

// edge computes the signed area term (P-A) x (A-B) used both for the
// triangle's total signed area and for each pixel's barycentric weight.
func edge(p, a, b math3d.ScreenCoord) float32 {
	return float32(p.X-a.X)*float32(a.Y-b.Y) - float32(p.Y-a.Y)*float32(a.X-b.X)
}

// isTopLeft classifies an NDC-space edge vector (dx, dy), taken in the
// triangle's clockwise order in NDC, as a top edge (horizontal, pointing
// right) or a left edge (pointing upward in NDC's y-up convention).
func isTopLeft(dx, dy float32) bool {
	return (dy == 0 && dx > 0) || dy > 0
}

// coversSample applies the top-left fill rule: a pixel exactly on an edge
// belongs to the triangle only if that edge is a top or left edge.
func coversSample(w float32, edgeIsTopLeft bool) bool {
	if w > 0 {
		return true
	}
	if w == 0 {
		return edgeIsTopLeft
	}
	return false
}

func min3i(a, b, c int) int { return min(min(a, b), c) }
func max3i(a, b, c int) int { return max(max(a, b), c) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

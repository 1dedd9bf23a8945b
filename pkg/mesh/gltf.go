package mesh

import (
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/rkerr"
)

// LoadGLTF loads a glTF (.gltf) or binary glTF (.glb) file as a bonus mesh
// source alongside OBJ. Winding is taken as authored: unlike the teacher's
// loader this does not reverse CCW to CW, since this mesh model's winding
// convention is CCW-from-outside regardless of any later screen-space
// Y-flip. External buffer references are not resolved; only embedded and
// binary-chunk buffers are supported.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, rkerr.Wrap(rkerr.IoFailure, err, "opening %s", path)
	}

	m := &Mesh{}
	for _, gm := range doc.Meshes {
		if err := appendGLTFMesh(doc, gm, m); err != nil {
			return nil, rkerr.Wrap(rkerr.ParseFailure, err, "mesh %q in %s", gm.Name, path)
		}
	}

	if len(m.Normals) == 0 {
		for i := range m.Triangles {
			m.Triangles[i].AN = m.Triangles[i].A
			m.Triangles[i].BN = m.Triangles[i].B
			m.Triangles[i].CN = m.Triangles[i].C
		}
		m.Normals = generateNormals(m.Positions, m.Triangles)
	}
	if len(m.Texcoords) == 0 {
		m.Texcoords = []math3d.Vec2{{}}
	}

	return m, nil
}

func appendGLTFMesh(doc *gltf.Document, gm *gltf.Mesh, m *Mesh) error {
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posAcc, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		rawPos, err := modeler.ReadPosition(doc, doc.Accessors[posAcc], nil)
		if err != nil {
			return err
		}
		base := len(m.Positions)
		for _, p := range rawPos {
			m.Positions = append(m.Positions, math3d.V3(p[0], p[1], p[2]))
		}

		hasNormals := false
		if acc, ok := prim.Attributes[gltf.NORMAL]; ok {
			rawNorm, err := modeler.ReadNormal(doc, doc.Accessors[acc], nil)
			if err != nil {
				return err
			}
			for _, n := range rawNorm {
				m.Normals = append(m.Normals, math3d.V3(n[0], n[1], n[2]))
			}
			hasNormals = true
		}

		hasUVs := false
		if acc, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			rawUV, err := modeler.ReadTextureCoord(doc, doc.Accessors[acc], nil)
			if err != nil {
				return err
			}
			for _, uv := range rawUV {
				m.Texcoords = append(m.Texcoords, math3d.V2(uv[0], uv[1]))
			}
			hasUVs = true
		}

		indices, err := gltfIndices(doc, prim, len(rawPos))
		if err != nil {
			return err
		}
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2])
			tri := Triangle{A: a, B: b, C: c}
			if hasNormals {
				tri.AN, tri.BN, tri.CN = a, b, c
			}
			if hasUVs {
				tri.AT, tri.BT, tri.CT = a, b, c
			}
			m.Triangles = append(m.Triangles, tri)
		}
	}
	return nil
}

func gltfIndices(doc *gltf.Document, prim *gltf.Primitive, vertexCount int) ([]uint32, error) {
	if prim.Indices == nil {
		indices := make([]uint32, vertexCount)
		for i := range indices {
			indices[i] = uint32(i)
		}
		return indices, nil
	}
	return modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
}

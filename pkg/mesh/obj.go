package mesh

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/rasterkit/pkg/image"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/rkerr"
)

// LoadOBJ parses a Wavefront OBJ file: v/vn/vt/f lines, 1-based indices in
// forms v, v/vt, v//vn and v/vt/vn, and an optional mtllib reference whose
// map_Kd line names a sibling PPM texture. Faces with more than three
// vertices are fan-triangulated from the first vertex.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rkerr.Wrap(rkerr.IoFailure, err, "opening %s", path)
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions []math3d.Vec3
	var rawNormals []math3d.Vec3
	var rawTexcoords []math3d.Vec2
	var triangles []Triangle
	var mtllib string

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			var x, y, z float32
			if _, err := fmt.Sscanf(line, "v %f %f %f", &x, &y, &z); err != nil {
				return nil, rkerr.Wrap(rkerr.ParseFailure, err, "%s:%d: malformed vertex", path, lineNo)
			}
			positions = append(positions, math3d.V3(x, y, z))
		case "vn":
			var x, y, z float32
			if _, err := fmt.Sscanf(line, "vn %f %f %f", &x, &y, &z); err != nil {
				return nil, rkerr.Wrap(rkerr.ParseFailure, err, "%s:%d: malformed normal", path, lineNo)
			}
			rawNormals = append(rawNormals, math3d.V3(x, y, z))
		case "vt":
			var u, v float32
			if _, err := fmt.Sscanf(line, "vt %f %f", &u, &v); err != nil {
				return nil, rkerr.Wrap(rkerr.ParseFailure, err, "%s:%d: malformed texcoord", path, lineNo)
			}
			rawTexcoords = append(rawTexcoords, math3d.V2(u, v))
		case "f":
			faceTris, err := parseFace(fields[1:], len(positions), len(rawNormals), len(rawTexcoords))
			if err != nil {
				return nil, rkerr.Wrap(rkerr.ParseFailure, err, "%s:%d: malformed face", path, lineNo)
			}
			triangles = append(triangles, faceTris...)
		case "mtllib":
			mtllib = strings.Join(fields[1:], " ")
		default:
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return nil, rkerr.Wrap(rkerr.IoFailure, err, "reading %s", path)
	}

	m := &Mesh{Positions: positions, Triangles: triangles}

	if len(rawNormals) == 0 {
		// No normals in the source file: mirror the position indexing (so
		// a triangle's normal index always equals its vertex index) and
		// fill them in from face geometry.
		for i := range m.Triangles {
			m.Triangles[i].AN = m.Triangles[i].A
			m.Triangles[i].BN = m.Triangles[i].B
			m.Triangles[i].CN = m.Triangles[i].C
		}
		m.Normals = generateNormals(positions, m.Triangles)
	} else {
		m.Normals = rawNormals
	}

	if len(rawTexcoords) == 0 {
		m.Texcoords = []math3d.Vec2{{}}
		for i := range m.Triangles {
			m.Triangles[i].AT, m.Triangles[i].BT, m.Triangles[i].CT = 0, 0, 0
		}
	} else {
		m.Texcoords = rawTexcoords
	}

	if mtllib != "" {
		texPath, err := resolveTexturePath(filepath.Join(dir, mtllib))
		if err != nil {
			return nil, err
		}
		if texPath != "" {
			tex, err := image.LoadPPM(texPath)
			if err != nil {
				return nil, err
			}
			m.Texture = tex
		}
	}

	return m, nil
}

// parseFace triangulates one OBJ face line (already split on whitespace)
// into a fan of Triangles referencing 0-based indices.
func parseFace(tokens []string, numV, numVN, numVT int) ([]Triangle, error) {
	if len(tokens) < 3 {
		return nil, fmt.Errorf("face has fewer than 3 vertices")
	}
	type idx struct{ v, vt, vn int }
	parsed := make([]idx, len(tokens))
	for i, tok := range tokens {
		v, vt, vn, err := parseFaceIndex(tok)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			v += numV + 1
		}
		if vt > 0 {
			if vt < 0 {
				vt += numVT + 1
			}
		}
		if vn > 0 {
			if vn < 0 {
				vn += numVN + 1
			}
		}
		parsed[i] = idx{v: v - 1, vt: vt - 1, vn: vn - 1}
	}

	tris := make([]Triangle, 0, len(parsed)-2)
	for i := 1; i < len(parsed)-1; i++ {
		a, b, c := parsed[0], parsed[i], parsed[i+1]
		tris = append(tris, Triangle{
			A: a.v, B: b.v, C: c.v,
			AN: a.vn, BN: b.vn, CN: c.vn,
			AT: a.vt, BT: b.vt, CT: c.vt,
		})
	}
	return tris, nil
}

// parseFaceIndex parses one OBJ face vertex reference in forms v, v/vt,
// v//vn or v/vt/vn. Returns 1-based indices; vt/vn are 0 when absent.
func parseFaceIndex(tok string) (v, vt, vn int, err error) {
	parts := strings.Split(tok, "/")
	v, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing vertex index %q: %w", tok, err)
	}
	if len(parts) >= 2 && parts[1] != "" {
		vt, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("parsing texcoord index %q: %w", tok, err)
		}
	}
	if len(parts) >= 3 && parts[2] != "" {
		vn, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("parsing normal index %q: %w", tok, err)
		}
	}
	return v, vt, vn, nil
}

// resolveTexturePath reads a Wavefront MTL file and returns the path named
// by its map_Kd line, joined onto the MTL file's directory, following the style (but not the scope)
// of gazed-vu's Ka/Kd/Ks line scanner: this loader only needs the texture
// reference, not material colors.
func resolveTexturePath(mtlPath string) (string, error) {
	f, err := os.Open(mtlPath)
	if err != nil {
		return "", rkerr.Wrap(rkerr.IoFailure, err, "opening %s", mtlPath)
	}
	defer f.Close()

	dir := filepath.Dir(mtlPath)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "map_Kd" {
			return filepath.Join(dir, fields[len(fields)-1]), nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", rkerr.Wrap(rkerr.IoFailure, err, "reading %s", mtlPath)
	}
	return "", nil
}

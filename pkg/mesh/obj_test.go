package mesh

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempOBJ(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp obj: %v", err)
	}
	return path
}

func TestLoadOBJQuadWithoutNormals(t *testing.T) {
	path := writeTempOBJ(t, `
v -1 0 -1
v 1 0 -1
v 1 0 1
v -1 0 1
f 1 2 3 4
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(m.Positions) != 4 {
		t.Fatalf("len(Positions) = %d, want 4", len(m.Positions))
	}
	if len(m.Triangles) != 2 {
		t.Fatalf("len(Triangles) = %d, want 2 (fan triangulation)", len(m.Triangles))
	}
	if len(m.Normals) != 4 {
		t.Fatalf("len(Normals) = %d, want 4 (generated, mirroring vertex count)", len(m.Normals))
	}
	for _, tri := range m.Triangles {
		if tri.AN != tri.A || tri.BN != tri.B || tri.CN != tri.C {
			t.Errorf("triangle %+v: normal indices should mirror vertex indices", tri)
		}
	}
	if len(m.Texcoords) != 1 {
		t.Fatalf("len(Texcoords) = %d, want 1 (default zero entry)", len(m.Texcoords))
	}
}

func TestLoadOBJWithNormalsAndTexcoords(t *testing.T) {
	path := writeTempOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 0 1
f 1/1/1 2/2/1 3/3/1
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(m.Triangles) != 1 {
		t.Fatalf("len(Triangles) = %d, want 1", len(m.Triangles))
	}
	tri := m.Triangles[0]
	if tri.AN != 0 || tri.BN != 0 || tri.CN != 0 {
		t.Errorf("triangle normals = (%d,%d,%d), want all 0", tri.AN, tri.BN, tri.CN)
	}
	if tri.AT != 0 || tri.BT != 1 || tri.CT != 2 {
		t.Errorf("triangle texcoords = (%d,%d,%d), want (0,1,2)", tri.AT, tri.BT, tri.CT)
	}
}

func TestLoadOBJNegativeRelativeIndices(t *testing.T) {
	path := writeTempOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	tri := m.Triangles[0]
	if tri.A != 0 || tri.B != 1 || tri.C != 2 {
		t.Errorf("triangle vertices = (%d,%d,%d), want (0,1,2)", tri.A, tri.B, tri.C)
	}
}

func TestLoadOBJMalformedVertexFails(t *testing.T) {
	path := writeTempOBJ(t, "v not a number\n")
	if _, err := LoadOBJ(path); err == nil {
		t.Fatal("LoadOBJ: expected error for malformed vertex line, got nil")
	}
}

func TestLoadOBJMissingFileFails(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Fatal("LoadOBJ: expected error for missing file, got nil")
	}
}

func TestResolveTexturePathReadsMapKd(t *testing.T) {
	dir := t.TempDir()
	mtlPath := filepath.Join(dir, "material.mtl")
	if err := os.WriteFile(mtlPath, []byte("newmtl main\nKd 1 1 1\nmap_Kd diffuse.ppm\n"), 0o644); err != nil {
		t.Fatalf("writing mtl: %v", err)
	}
	got, err := resolveTexturePath(mtlPath)
	if err != nil {
		t.Fatalf("resolveTexturePath: %v", err)
	}
	want := filepath.Join(dir, "diffuse.ppm")
	if got != want {
		t.Errorf("resolveTexturePath = %q, want %q", got, want)
	}
}

package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/rasterkit/pkg/math3d"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoadSceneMinimal(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "cube.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	scenePath := writeTempFile(t, dir, "scene.xml", `<scene>
		<model>
			<mesh>"cube.obj"</mesh>
			<position> 1 2 3 </position>
			<rotation> 0 0 0 </rotation>
		</model>
		<light>
			<strength> 0.2 </strength>
			<color> 255 255 255 </color>
			<position> 0 10 0 </position>
		</light>
	</scene>`)

	s, err := LoadScene(scenePath)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if len(s.Models) != 1 {
		t.Fatalf("len(Models) = %d, want 1", len(s.Models))
	}
	if s.Models[0].Mesh == nil || len(s.Models[0].Mesh.Triangles) != 1 {
		t.Fatalf("model mesh not loaded correctly: %+v", s.Models[0].Mesh)
	}
	if len(s.Lights) != 1 {
		t.Fatalf("len(Lights) = %d, want 1", len(s.Lights))
	}
	if s.Lights[0].AmbientStrength != 0.2 {
		t.Errorf("AmbientStrength = %v, want 0.2", s.Lights[0].AmbientStrength)
	}
	if s.Camera.CanvasWidth != defaultCanvasWidth || s.Camera.CanvasHeight != defaultCanvasHeight {
		t.Errorf("default camera canvas = %dx%d, want %dx%d", s.Camera.CanvasWidth, s.Camera.CanvasHeight, defaultCanvasWidth, defaultCanvasHeight)
	}
}

func TestLoadSceneWithCameraTag(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTempFile(t, dir, "scene.xml", `<scene>
		<camera>
			<projection> 640 480 1.0 0.1 50 </projection>
			<position> 0 0 5 </position>
			<lookat> 0 0 0 </lookat>
			<up> 0 1 0 </up>
		</camera>
	</scene>`)

	s, err := LoadScene(scenePath)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if s.Camera.CanvasWidth != 640 || s.Camera.CanvasHeight != 480 {
		t.Errorf("camera canvas = %dx%d, want 640x480", s.Camera.CanvasWidth, s.Camera.CanvasHeight)
	}
	view := s.Camera.ViewMatrix()
	if view == math3d.Identity() {
		t.Error("ViewMatrix() is identity, want a look-at transform")
	}
}

func TestLoadSceneRejectsUnknownTag(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTempFile(t, dir, "scene.xml", `<scene><bogus/></scene>`)
	if _, err := LoadScene(scenePath); err == nil {
		t.Fatal("LoadScene: expected error for unknown tag, got nil")
	}
}

func TestLoadSceneRejectsBadColorChannel(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTempFile(t, dir, "scene.xml", `<scene>
		<light>
			<strength> 0.2 </strength>
			<color> 300 0 0 </color>
			<position> 0 0 0 </position>
		</light>
	</scene>`)
	if _, err := LoadScene(scenePath); err == nil {
		t.Fatal("LoadScene: expected error for out-of-range color channel, got nil")
	}
}

package scene

import (
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/mesh"
	"github.com/taigrr/rasterkit/pkg/rkerr"
)

const (
	defaultCanvasWidth  = 1920
	defaultCanvasHeight = 1080
	defaultFOVDegrees   = 54
	defaultNear         = 0.1
	defaultFar          = 100
)

// CameraDefaults supplies fallback FOV/near/far values for scenes whose
// <camera> tag omits a <projection>, or omits <camera> entirely. An
// explicit <projection> in the scene XML always takes precedence.
type CameraDefaults struct {
	FOV, Near, Far *float32
}

// LoadScene parses a scene description file: a synthetic <file> root
// holding exactly one <scene>, itself holding any number of <model>,
// <light> and <camera> tags. Paths named inside <mesh> tags are resolved
// relative to the scene file's directory.
func LoadScene(path string) (*Scene, error) {
	return LoadSceneWithDefaults(path, nil)
}

// LoadSceneWithDefaults is LoadScene with caller-supplied camera
// fallbacks, applied only where the scene XML itself is silent.
func LoadSceneWithDefaults(path string, defaults *CameraDefaults) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, rkerr.Wrap(rkerr.IoFailure, err, "opening %s", path)
	}
	dir := filepath.Dir(path)

	root, err := parseSceneFile(string(raw))
	if err != nil {
		return nil, rkerr.Wrap(rkerr.ParseFailure, err, "parsing %s", path)
	}
	if root.name != "file" || len(root.children) != 1 {
		return nil, rkerr.New(rkerr.SchemaViolation, "%s: expected a single <scene> root tag", path)
	}
	sceneNode := root.children[0]
	if sceneNode.name != "scene" {
		return nil, rkerr.New(rkerr.SchemaViolation, "%s: root tag is <%s>, want <scene>", path, sceneNode.name)
	}

	s := &Scene{
		Camera: defaultCamera(defaults),
	}

	for _, child := range sceneNode.children {
		switch child.name {
		case "model":
			model, err := modelFromNode(child, dir)
			if err != nil {
				return nil, err
			}
			s.Models = append(s.Models, model)
		case "light":
			light, err := lightFromNode(child)
			if err != nil {
				return nil, err
			}
			s.Lights = append(s.Lights, light)
		case "camera":
			cam, err := cameraFromNode(child, defaults)
			if err != nil {
				return nil, err
			}
			s.Camera = cam
		default:
			return nil, rkerr.New(rkerr.SchemaViolation, "%s: unknown tag <%s> in <scene>", path, child.name)
		}
	}

	return s, nil
}

func defaultCamera(defaults *CameraDefaults) *Camera {
	fov := float32(defaultFOVDegrees) * (math32.Pi / 180)
	near, far := float32(defaultNear), float32(defaultFar)
	if defaults != nil {
		if defaults.FOV != nil {
			fov = *defaults.FOV
		}
		if defaults.Near != nil {
			near = *defaults.Near
		}
		if defaults.Far != nil {
			far = *defaults.Far
		}
	}
	return NewCamera(defaultCanvasWidth, defaultCanvasHeight, fov, near, far)
}

func modelFromNode(node xmlNode, dir string) (Model, error) {
	model := Model{Transform: math3d.Identity()}
	haveMesh := false
	for _, prop := range node.children {
		switch prop.name {
		case "mesh":
			meshPath, err := prop.quoted()
			if err != nil {
				return Model{}, err
			}
			m, err := mesh.LoadOBJ(filepath.Join(dir, meshPath))
			if err != nil {
				return Model{}, err
			}
			model.Mesh = m
			haveMesh = true
		case "rotation":
			nums, err := prop.numbers(3)
			if err != nil {
				return Model{}, err
			}
			model.Transform = model.Transform.Mul(math3d.Euler(nums[0], nums[1], nums[2]))
		case "position":
			nums, err := prop.numbers(3)
			if err != nil {
				return Model{}, err
			}
			model.Transform = model.Transform.Mul(math3d.Translate(math3d.V3(nums[0], nums[1], nums[2])))
		default:
			return Model{}, rkerr.New(rkerr.SchemaViolation, "model has unknown property <%s>", prop.name)
		}
	}
	if !haveMesh {
		return Model{}, rkerr.New(rkerr.SchemaViolation, "model is missing a <mesh> tag")
	}
	return model, nil
}

func lightFromNode(node xmlNode) (Light, error) {
	var light Light
	haveColor, havePosition := false, false
	for _, prop := range node.children {
		switch prop.name {
		case "strength":
			nums, err := prop.numbers(1)
			if err != nil {
				return Light{}, err
			}
			if nums[0] < 0 || nums[0] > 1 {
				return Light{}, rkerr.New(rkerr.SchemaViolation, "light strength %v outside [0,1]", nums[0])
			}
			light.AmbientStrength = nums[0]
		case "color":
			nums, err := prop.numbers(3)
			if err != nil {
				return Light{}, err
			}
			c, err := colorFromNumbers(nums)
			if err != nil {
				return Light{}, err
			}
			light.Color = c
			haveColor = true
		case "position":
			nums, err := prop.numbers(3)
			if err != nil {
				return Light{}, err
			}
			light.Position = math3d.V3(nums[0], nums[1], nums[2])
			havePosition = true
		default:
			return Light{}, rkerr.New(rkerr.SchemaViolation, "light has unknown property <%s>", prop.name)
		}
	}
	if !haveColor {
		return Light{}, rkerr.New(rkerr.SchemaViolation, "light is missing a <color> tag")
	}
	if !havePosition {
		return Light{}, rkerr.New(rkerr.SchemaViolation, "light is missing a <position> tag")
	}
	return light, nil
}

func cameraFromNode(node xmlNode, defaults *CameraDefaults) (*Camera, error) {
	cam := defaultCamera(defaults)
	var position, lookAt, up math3d.Vec3
	up = math3d.V3(0, 1, 0)
	haveLookAt := false

	for _, prop := range node.children {
		switch prop.name {
		case "projection":
			nums, err := prop.numbers(5)
			if err != nil {
				return nil, err
			}
			w, h := int(nums[0]), int(nums[1])
			if w <= 0 || h <= 0 {
				return nil, rkerr.New(rkerr.SchemaViolation, "camera projection canvas size must be positive, got %dx%d", w, h)
			}
			near, far := nums[3], nums[4]
			if near <= 0 || far <= near {
				return nil, rkerr.New(rkerr.SchemaViolation, "camera clip planes must satisfy 0 < near < far, got near=%v far=%v", near, far)
			}
			cam = NewCamera(w, h, nums[2], near, far)
		case "position":
			nums, err := prop.numbers(3)
			if err != nil {
				return nil, err
			}
			position = math3d.V3(nums[0], nums[1], nums[2])
		case "lookat":
			nums, err := prop.numbers(3)
			if err != nil {
				return nil, err
			}
			lookAt = math3d.V3(nums[0], nums[1], nums[2])
			haveLookAt = true
		case "up":
			nums, err := prop.numbers(3)
			if err != nil {
				return nil, err
			}
			up = math3d.V3(nums[0], nums[1], nums[2])
		default:
			return nil, rkerr.New(rkerr.SchemaViolation, "camera has unknown property <%s>", prop.name)
		}
	}

	if haveLookAt {
		cam.LookAt(position, lookAt, up)
	}
	return cam, nil
}

func colorFromNumbers(nums []float32) (math3d.Color, error) {
	var bytes [3]uint8
	for i, v := range nums {
		if v < 0 || v > 255 {
			return math3d.Color{}, rkerr.New(rkerr.SchemaViolation, "color channel %v outside [0,255]", v)
		}
		bytes[i] = uint8(v)
	}
	return math3d.Color{R: bytes[0], G: bytes[1], B: bytes[2]}, nil
}

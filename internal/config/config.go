// Package config loads the optional TOML configuration file accepted by
// the rasterize command's --config flag. Every field is optional: a
// scene's own <camera><projection> always overrides whatever is set
// here, and an absent config file is not an error.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/rasterkit/pkg/rkerr"
)

// Config holds default camera and output values a scene XML may omit.
type Config struct {
	Camera CameraConfig `toml:"camera"`
	Output string       `toml:"output"`
}

// CameraConfig mirrors scene.CameraDefaults in TOML-friendly form.
type CameraConfig struct {
	FOVDegrees *float64 `toml:"fov_degrees"`
	Near       *float64 `toml:"near"`
	Far        *float64 `toml:"far"`
}

// Load reads and parses a TOML config file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, rkerr.Wrap(rkerr.IoFailure, err, "opening %s", path)
	}
	var cfg Config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, rkerr.Wrap(rkerr.ParseFailure, err, "parsing %s", path)
	}
	return &cfg, nil
}

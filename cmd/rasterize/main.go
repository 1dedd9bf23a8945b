// rasterize renders a scene XML file to a PPM image in a single batch
// pass: load scene, rasterize every model, write the framebuffer to disk.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/rasterkit/internal/applog"
	"github.com/taigrr/rasterkit/internal/config"
	"github.com/taigrr/rasterkit/pkg/image"
	"github.com/taigrr/rasterkit/pkg/raster"
	"github.com/taigrr/rasterkit/pkg/scene"
)

var (
	outputPath string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "rasterize [input.xml]",
	Short: "Render a scene description to a PPM image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "output.ppm", "path to write the rendered PPM image")
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional TOML config supplying camera defaults")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rasterize: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string) error {
	logger, err := applog.New(verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	defaults, err := loadCameraDefaults(configPath)
	if err != nil {
		return err
	}

	logger.Info("loading scene", zap.String("path", inputPath))
	s, err := scene.LoadSceneWithDefaults(inputPath, defaults)
	if err != nil {
		return err
	}
	logger.Debug("scene loaded",
		zap.Int("models", len(s.Models)),
		zap.Int("lights", len(s.Lights)),
		zap.Int("canvas_width", s.Camera.CanvasWidth),
		zap.Int("canvas_height", s.Camera.CanvasHeight),
	)

	w, h := s.Camera.CanvasWidth, s.Camera.CanvasHeight
	depthBuf := make([]float32, w*h)
	for i := range depthBuf {
		depthBuf[i] = float32(math.Inf(1))
	}
	img := image.New(w, h)

	logger.Info("rendering scene")
	raster.RenderScene(s, img.Pixels, depthBuf)

	logger.Info("writing output", zap.String("path", outputPath))
	if err := img.SavePPM(outputPath); err != nil {
		return err
	}

	logger.Info("done", zap.String("output", outputPath))
	return nil
}

func loadCameraDefaults(path string) (*scene.CameraDefaults, error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	defaults := &scene.CameraDefaults{}
	if cfg.Camera.FOVDegrees != nil {
		fov := float32(*cfg.Camera.FOVDegrees * math.Pi / 180)
		defaults.FOV = &fov
	}
	if cfg.Camera.Near != nil {
		near := float32(*cfg.Camera.Near)
		defaults.Near = &near
	}
	if cfg.Camera.Far != nil {
		far := float32(*cfg.Camera.Far)
		defaults.Far = &far
	}
	if cfg.Output != "" && outputPath == "output.ppm" {
		outputPath = cfg.Output
	}
	return defaults, nil
}

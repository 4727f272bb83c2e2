// Command varlet runs the editor viewport without a window.
//
// It boots the engine from a config file, places a model in front of the
// editor camera, renders a number of frames and writes the viewport image
// to a PNG. The headless backend records draws without rasterizing, so
// its snapshot shows the clear color; build with -tags opengl and provide
// a current context to get real images.
//
// Usage:
//
//	varlet -config varlet.toml -frames 10 -output view.png
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/gogpu/varlet/asset"
	_ "github.com/gogpu/varlet/backend/headless"
	"github.com/gogpu/varlet/config"
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/editor"
	"github.com/gogpu/varlet/internal/injector"
	"github.com/gogpu/varlet/scene"
)

func main() {
	var (
		configPath  = flag.String("config", "", "config file (.toml, .yaml, .yml)")
		backendName = flag.String("backend", "", "override engine.backend")
		frames      = flag.Int("frames", -1, "override engine.frames")
		output      = flag.String("output", "", "override output.snapshot")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("varlet: %v", err)
	}
	if *backendName != "" {
		cfg.Engine.Backend = *backendName
	}
	if *frames >= 0 {
		cfg.Engine.Frames = *frames
	}
	if *output != "" {
		cfg.Output.Snapshot = *output
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("varlet: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(ctx context.Context, cfg *config.Config) error {
	eng, cleanup, err := injector.InitializeEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	defer func() { _ = eng.Logger.Sync() }()

	release, err := populate(ctx, eng)
	if err != nil {
		return err
	}
	defer release()

	cam := ecs.GetComponent[*scene.Transform](eng.Viewport.Entity())
	cam.SetPosition(mgl32.Vec3(cfg.Camera.Position))
	cam.SetRotation(mgl32.Vec3(cfg.Camera.Rotation))

	frame := editor.Frame{Width: cfg.Camera.Width, Height: cfg.Camera.Height}
	for i := 0; i < cfg.Engine.Frames; i++ {
		if ctx.Err() != nil {
			eng.Logger.Info("interrupted", zap.Int("frame", i))
			break
		}
		if _, err := eng.Step(cfg.Engine.TimeStep, frame); err != nil {
			eng.Logger.Warn("frame error", zap.Int("frame", i), zap.Error(err))
		}
	}
	eng.Logger.Info("frames rendered", zap.Int("frames", cfg.Engine.Frames))

	if cfg.Output.Snapshot == "" {
		return nil
	}
	return writeSnapshot(eng, cfg.Output.Snapshot, cfg.Output.MaxDim)
}

func writeSnapshot(eng *injector.Engine, path string, maxDim int) error {
	camera := ecs.GetComponent[*scene.Camera](eng.Viewport.Entity())
	if camera == nil || camera.Core() == nil {
		return fmt.Errorf("snapshot: %w", editor.ErrNoCamera)
	}
	img, err := camera.Core().Target().ReadImage()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if maxDim > 0 {
		img = asset.Downscale(img, maxDim)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	eng.Logger.Info("snapshot written",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return nil
}


// Command curveview plots cubic parametric curves read from a data file.
//
// With no -output it opens a window and draws the curves on the GPU:
//
//	Space       toggle aspect-ratio preservation
//	+ / -       zoom in / out
//	arrows      pan
//	R           reset to the initial region
//	V           log the visible model-space region
//
// With -output it renders one frame to a PNG file without a window, on the
// CPU or, with -gpu, on a headless Vulkan device.
//
//	curveview -data data.txt
//	curveview -data data.txt -roi -2,2,-1,1 -no-aspect
//	curveview -data data.txt -output curves.png -width 1024 -height 512
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/curveview"
	"github.com/gogpu/curveview/gpu"
	"github.com/gogpu/curveview/loader"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("curveview: %v", err)
	}
	level, _ := cfg.Level() // checked by Validate
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	curveview.SetLogger(logger)

	scene, err := buildScene(cfg)
	if err != nil {
		log.Fatalf("curveview: %v", err)
	}

	if cfg.Output != "" {
		if err := renderToFile(cfg, scene); err != nil {
			log.Fatalf("curveview: %v", err)
		}
		log.Printf("Curves saved to %s (%dx%d)", cfg.Output, cfg.Width, cfg.Height)
		return
	}
	if err := runWindow(cfg, scene, logger); err != nil {
		log.Fatalf("curveview: %v", err)
	}
}

// parseFlags loads the -config file, if any, and applies explicitly set
// flags on top of it.
func parseFlags(fs *flag.FlagSet, args []string) (*Config, error) {
	def := DefaultConfig()
	var (
		configPath = fs.String("config", "", "JSON config file")
		data       = fs.String("data", def.Data, "curve data file")
		width      = fs.Int("width", def.Width, "window or image width")
		height     = fs.Int("height", def.Height, "window or image height")
		roi        = fs.String("roi", "", "initial region xmin,xmax,ymin,ymax (default: fit all curves)")
		noAspect   = fs.Bool("no-aspect", false, "start with aspect-ratio preservation disabled")
		output     = fs.String("output", "", "render to this PNG file instead of opening a window")
		useGPU     = fs.Bool("gpu", false, "render -output on a headless GPU device")
		lineWidth  = fs.Float64("line-width", def.LineWidth, "CPU line width in pixels")
		clearColor = fs.String("clear-color", def.ClearColor, "background hex color")
		logLevel   = fs.String("log-level", def.LogLevel, "log level: debug, info, warn, error")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = Load(*configPath); err != nil {
			return nil, err
		}
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Data = *data
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "roi":
			r, err := parseROI(*roi)
			if err != nil {
				flagErr = err
				return
			}
			cfg.ROI = r
		case "no-aspect":
			cfg.PreserveAspectRatio = !*noAspect
		case "output":
			cfg.Output = *output
		case "gpu":
			cfg.GPU = *useGPU
		case "line-width":
			cfg.LineWidth = *lineWidth
		case "clear-color":
			cfg.ClearColor = *clearColor
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildScene loads the curves and sets up the view: the configured region
// of interest if any, otherwise the bounds of all curves.
func buildScene(cfg *Config) (*curveview.Scene, error) {
	curves, err := loader.Load(cfg.Data)
	if err != nil {
		return nil, err
	}
	view := curveview.NewView(curveview.WithAspectRatioPreservation(cfg.PreserveAspectRatio))
	scene := curveview.NewScene(view, curves...)

	if len(cfg.ROI) != 0 {
		r, err := cfg.Region()
		if err != nil {
			return nil, err
		}
		if err := view.SetHome(r); err != nil {
			return nil, err
		}
		return scene, nil
	}
	if err := scene.FrameAll(); err != nil && !errors.Is(err, curveview.ErrEmptyScene) {
		return nil, err
	}
	return scene, nil
}

// renderToFile draws one frame headlessly and writes it as PNG.
func renderToFile(cfg *Config, scene *curveview.Scene) error {
	img, err := renderImage(cfg, scene)
	if err != nil {
		return err
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", cfg.Output, err)
	}
	return f.Close()
}

func renderImage(cfg *Config, scene *curveview.Scene) (image.Image, error) {
	bg, err := cfg.Background()
	if err != nil {
		return nil, err
	}
	if cfg.GPU {
		r, err := gpu.NewHeadless(gpu.WithClearColor(bg))
		if err != nil {
			return nil, err
		}
		defer r.Destroy()
		return r.Render(cfg.Width, cfg.Height, scene)
	}
	sr := curveview.NewSoftwareRenderer(cfg.Width, cfg.Height)
	sr.SetLineWidth(cfg.LineWidth)
	sr.SetBackground(bg)
	return sr.Render(scene.Frame(sr.AspectRatio())), nil
}

// runWindow opens the viewer window and blocks until it is closed.
func runWindow(cfg *Config, scene *curveview.Scene, logger *slog.Logger) error {
	bg, err := cfg.Background()
	if err != nil {
		return err
	}
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("curveview").
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(true))

	var (
		renderer *gpu.Renderer
		keys     = newKeyHandler(scene.View(), logger)
	)

	app.OnDraw(func(dc *gogpu.Context) {
		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		if renderer == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			r, err := gpu.New(provider, gpu.WithClearColor(bg))
			if err != nil {
				logger.Error("curveview: GPU renderer unavailable", "err", err)
				app.Quit()
				return
			}
			renderer = r
		}

		sw, sh := dc.SurfaceSize()
		vAR := curveview.ViewportAspectRatio(w, h)
		keys.setViewportAspectRatio(vAR)
		if err := renderer.Draw(dc.SurfaceView(), uint32(sw), uint32(sh), scene, vAR); err != nil { //nolint:gosec // surface sizes fit uint32
			logger.Warn("curveview: frame skipped", "err", err)
		}
	})

	// View edits land between frames; the next frame picks them up.
	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		keys.handle(key)
	})

	app.OnClose(func() {
		if renderer != nil {
			renderer.Destroy()
			renderer = nil
		}
	})

	return app.Run()
}

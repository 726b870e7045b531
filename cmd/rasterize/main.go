// Command rasterize renders a mesh to PNG files with the software rasterizer, either as a single still or as a
// turntable sequence orbiting the active camera around the model.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/solarlune/raster3d"
	"github.com/solarlune/raster3d/internal/config"
	"github.com/solarlune/raster3d/internal/scene"
	"github.com/solarlune/raster3d/internal/turntable"
)

func main() {

	var (
		configPath = flag.String("config", "", "path to a job YAML file (defaults are used without one)")
		width      = flag.Int("width", 640, "output width in pixels")
		height     = flag.Int("height", 480, "output height in pixels")
		mesh       = flag.String("mesh", "", "glTF / GLB mesh to render")
		primitive  = flag.String("primitive", "cube", "built-in mesh when -mesh is unset: cube | plane | icosphere")
		texture    = flag.String("texture", "", "texture image (PNG, JPEG, BMP, TIFF, WebP)")
		mode       = flag.String("mode", "all", "render mode: wireframe | texture | lighting | texture-lighting | all")
		workers    = flag.Int("workers", 1, "goroutines rasterizing each frame")
		frames     = flag.Int("frames", 0, "turntable frames to render (0 renders a single still)")
		easing     = flag.String("easing", "linear", "turntable easing: linear | in-out-sine | in-out-quad | in-out-cubic")
		output     = flag.String("o", "render.png", "output PNG path")
		saveConfig = flag.String("save-config", "", "write the effective job to this YAML file and exit")
		logLevel   = flag.String("log-level", "info", "log level: debug | info | warn | error")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err != nil {
		log.Warn().Err(err).Str("level", *logLevel).Msg("unknown log level; using info")
	} else {
		zerolog.SetGlobalLevel(lvl)
	}
	raster3d.SetLogger(log.Logger)

	job := config.Default()
	if *configPath != "" {
		j, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		job = j
	}

	// Flags given explicitly on the command line override the job.
	var modeErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			job.Width = *width
		case "height":
			job.Height = *height
		case "mesh":
			job.Mesh = *mesh
		case "primitive":
			job.Primitive = *primitive
		case "texture":
			job.Texture = *texture
		case "mode":
			job.Mode, modeErr = raster3d.ParseRenderMode(*mode)
		case "workers":
			job.Workers = *workers
		case "frames":
			job.Turntable.Frames = *frames
		case "easing":
			job.Turntable.Easing = *easing
		case "o":
			job.Output = *output
		}
	})
	if modeErr != nil {
		log.Fatal().Err(modeErr).Msg("bad -mode")
	}

	if *saveConfig != "" {
		if err := config.Save(*saveConfig, job); err != nil {
			log.Fatal().Err(err).Str("path", *saveConfig).Msg("saving config failed")
		}
		log.Info().Str("path", *saveConfig).Msg("config saved")
		return
	}

	if err := run(job); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}

}

func run(job *config.Job) error {

	sc, err := scene.Build(job)
	if err != nil {
		return err
	}

	engine := raster3d.NewEngine()
	engine.Workers = job.Workers

	target := image.NewNRGBA(image.Rect(0, 0, job.Width, job.Height))

	if job.Turntable.Frames == 0 {
		if err := sc.Render(engine, target, job.Mode); err != nil {
			return err
		}
		logStats(engine.Stats(), job.Output)
		return writePNG(job.Output, target)
	}

	cam, err := sc.Cameras.Active()
	if err != nil {
		return err
	}

	fn, err := turntable.Easing(job.Turntable.Easing)
	if err != nil {
		return err
	}

	cams := turntable.Cameras(cam, turntable.Angles(job.Turntable.Frames, job.Turntable.Revolutions, fn))

	start := time.Now()

	for i, c := range cams {
		if err := sc.RenderFrom(engine, c, target, job.Mode); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		path := framePath(job.Output, i)
		logStats(engine.Stats(), path)
		if err := writePNG(path, target); err != nil {
			return err
		}
	}

	log.Info().Int("frames", len(cams)).Dur("elapsed", time.Since(start)).Msg("turntable done")

	return nil

}

func logStats(stats raster3d.FrameStats, path string) {
	log.Info().
		Str("path", path).
		Int("triangles", stats.Triangles).
		Int("drawn", stats.Drawn).
		Int("pixels", stats.PixelsShaded).
		Dur("frame_time", stats.FrameTime).
		Msg("frame")
}

// framePath numbers an output path for a turntable frame: "out/spin.png" becomes "out/spin_0003.png".
func framePath(path string, frame int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(path, ext), frame, ext)
}

func writePNG(path string, img image.Image) error {

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return f.Close()

}

// Package scene turns a render job into the things an Engine draws: a mesh, its texture, and the cameras.
package scene

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/solarlune/raster3d"
	"github.com/solarlune/raster3d/internal/config"
	"github.com/solarlune/raster3d/loader"
)

type Scene struct {
	Mesh       *raster3d.Mesh
	Texture    image.Image // nil when the job names none and the mesh file embeds none
	Model      raster3d.Mat4
	Cameras    *raster3d.CameraManager
	ClearColor raster3d.Color
}

// Build loads everything the job refers to. A texture named by the job takes priority over one embedded in a
// glTF file.
func Build(job *config.Job) (*Scene, error) {

	if err := job.Validate(); err != nil {
		return nil, err
	}

	sc := &Scene{Model: job.ModelMatrix()}

	if job.Mesh != "" {
		opts := loader.DefaultGLTFLoadOptions()
		if job.TextureMaxSize > 0 {
			opts.TextureMaxSize = job.TextureMaxSize
		}
		asset, err := loader.LoadGLTFFile(job.Mesh, opts)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		sc.Mesh = asset.Mesh
		if asset.Texture != nil {
			sc.Texture = asset.Texture
		}
	} else {
		mesh, err := job.PrimitiveMesh()
		if err != nil {
			return nil, err
		}
		sc.Mesh = mesh
	}

	if job.Texture != "" {
		maxSize := job.TextureMaxSize
		if maxSize <= 0 {
			maxSize = loader.DefaultGLTFLoadOptions().TextureMaxSize
		}
		tex, err := loader.LoadTexture(job.Texture, maxSize)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		sc.Texture = tex
	}

	cams, err := job.CameraManager()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	sc.Cameras = cams

	// Validate() already parsed it.
	sc.ClearColor, _ = config.ParseColor(job.ClearColor)

	raster3d.Logger().Info().
		Str("mesh", sc.Mesh.Name).
		Int("vertices", sc.Mesh.VertexCount()).
		Int("faces", sc.Mesh.FaceCount()).
		Bool("textured", sc.Texture != nil).
		Int("cameras", sc.Cameras.Len()).
		Msg("scene built")

	return sc, nil

}

// Render clears the target and draws the scene from the active camera.
func (sc *Scene) Render(engine *raster3d.Engine, target draw.Image, mode raster3d.RenderMode) error {
	cam, err := sc.Cameras.Active()
	if err != nil {
		return err
	}
	return sc.RenderFrom(engine, cam, target, mode)
}

// RenderFrom clears the target and draws the scene from the given camera.
func (sc *Scene) RenderFrom(engine *raster3d.Engine, cam *raster3d.Camera, target draw.Image, mode raster3d.RenderMode) error {
	engine.Clear(target, sc.ClearColor, true)
	return engine.RenderModel(sc.Mesh, sc.Model, cam, target, mode, sc.Texture)
}

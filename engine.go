package raster3d

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/solarlune/raster3d/math32"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNilGeometry        = errors.New("raster3d: geometry is nil")
	ErrNilCamera          = errors.New("raster3d: camera is nil")
	ErrNilTarget          = errors.New("raster3d: render target is nil")
	ErrMissingModelMatrix = errors.New("raster3d: model matrix is unset (all zeroes)")
)

// FrameStats is a set of statistics about the last frame an Engine rendered.
type FrameStats struct {
	Faces        int           // Faces the Geometry offered
	SkippedFaces int           // Faces with fewer than three indices, or indices out of range
	Triangles    int           // Triangles produced by triangulating the remaining faces
	Culled       int           // Triangles with a vertex on or behind the camera plane
	Degenerate   int           // Triangles with zero screen-space area
	Drawn        int           // Triangles that made it to the scan converter
	PixelsShaded int           // Pixels that passed the depth test and were written
	FrameTime    time.Duration // How long RenderModel took
}

// Engine is a software rasterizer: it renders polygon meshes into a color surface, depth buffered, optionally
// textured and lit by a single light attached to the camera. An Engine owns its depth buffer and reusable
// per-frame scratch space, and isn't safe for concurrent use; use one Engine per render target and goroutine.
type Engine struct {
	// Workers is how many goroutines scan-convert a frame; the surface is split into that many horizontal bands.
	// Values of 1 or less render on the calling goroutine. The output is the same either way.
	Workers int

	// WireColor is the color wireframe edges are drawn in. Defaults to white.
	WireColor Color
	// BaseColor is the flat color of untextured surfaces. Defaults to 50% gray.
	BaseColor Color

	depth *DepthBuffer
	stats FrameStats

	// Scratch, reused across frames.
	tris      [][3]int
	setups    []triangleSetup
	world     []Vec3
	normals   []Vec3
	projected []vertexOut
	uvs       []Vec2
	shaded    []int
}

// NewEngine returns a new Engine that renders serially, with white wires on a gray base.
func NewEngine() *Engine {
	return &Engine{
		Workers:   1,
		WireColor: Color{1, 1, 1, 1},
		BaseColor: flatGray,
	}
}

// DepthBuffer returns the Engine's depth buffer, or nil if it hasn't rendered or cleared anything yet.
func (engine *Engine) DepthBuffer() *DepthBuffer {
	return engine.depth
}

// Stats returns statistics about the last frame rendered.
func (engine *Engine) Stats() FrameStats {
	return engine.stats
}

// Clear fills every pixel of the target with the given color. If clearDepth is true, the depth buffer (if one
// exists yet) is also reset, so the next frame starts from scratch.
func (engine *Engine) Clear(target draw.Image, c Color, clearDepth bool) {

	if target == nil {
		return
	}

	draw.Draw(target, target.Bounds(), image.NewUniform(c.ToNRGBA()), image.Point{}, draw.Src)

	if clearDepth && engine.depth != nil {
		engine.depth.Clear()
	}

}

// RenderModel renders the Geometry, placed in the world by the model matrix, as seen by the Camera, into the
// target, using the given RenderMode. texture is optional; without it, textured modes use the flat base color.
//
// The depth buffer is kept between calls (so several models can be drawn into one frame), and is only
// reallocated when the target's size changes; call Clear() with clearDepth set to start a new frame.
func (engine *Engine) RenderModel(geo Geometry, model Mat4, cam *Camera, target draw.Image, mode RenderMode, texture image.Image) error {

	switch {
	case geo == nil:
		return ErrNilGeometry
	case cam == nil:
		return ErrNilCamera
	case target == nil:
		return ErrNilTarget
	case model.IsZero():
		return ErrMissingModelMatrix
	case !mode.Valid():
		return fmt.Errorf("%w: %v", ErrInvalidRenderMode, mode)
	}

	start := time.Now()

	surf := newSurface(target)

	if engine.depth == nil {
		engine.depth = NewDepthBuffer(surf.width, surf.height)
	} else {
		engine.depth.Resize(surf.width, surf.height)
	}

	stats := FrameStats{Faces: geo.FaceCount()}

	mvp := cam.ViewProjection().Mult(model)

	engine.triangulate(geo, &stats)
	engine.transformVertices(geo, model, mvp, float32(surf.width), float32(surf.height))
	engine.recomputeNormals()
	engine.setupTriangles(surf.width, surf.height, &stats)

	wire, useTex, useLight := mode.Flags()

	fs := &frameState{
		surface:   surf,
		depth:     engine.depth,
		triangles: engine.setups,
		normals:   engine.normals,
		uvs:       engine.uvs,
		texture:   texture,
		ray:       cam.LightRayDirection(),
		wire:      wire,
		fill:      mode.fills(),
		useTex:    useTex,
		useLight:  useLight,
		wireColor: engine.WireColor,
		baseColor: engine.BaseColor,
	}

	stats.PixelsShaded = engine.draw(fs, surf.height)
	stats.FrameTime = time.Since(start)
	engine.stats = stats

	Logger().Debug().
		Int("faces", stats.Faces).
		Int("skipped_faces", stats.SkippedFaces).
		Int("triangles", stats.Triangles).
		Int("culled", stats.Culled).
		Int("degenerate", stats.Degenerate).
		Int("drawn", stats.Drawn).
		Int("pixels", stats.PixelsShaded).
		Dur("frame_time", stats.FrameTime).
		Str("mode", mode.String()).
		Msg("frame rendered")

	return nil

}

// triangulate fans every usable face of the Geometry out into the triangle scratch list.
func (engine *Engine) triangulate(geo Geometry, stats *FrameStats) {

	engine.tris = engine.tris[:0]
	vertexCount := geo.VertexCount()

	for f := 0; f < stats.Faces; f++ {
		var ok bool
		if engine.tris, ok = triangulateFace(engine.tris, geo.FaceIndices(f), vertexCount); !ok {
			stats.SkippedFaces++
		}
	}

	if stats.SkippedFaces > 0 {
		Logger().Warn().Int("skipped", stats.SkippedFaces).Int("faces", stats.Faces).Msg("skipped faces that can't be triangulated")
	}

	stats.Triangles = len(engine.tris)

}

// transformVertices fills the world-space, projected, and texture coordinate scratch lists, one entry per vertex.
func (engine *Engine) transformVertices(geo Geometry, model, mvp Mat4, width, height float32) {

	n := geo.VertexCount()

	engine.world = resize(engine.world, n)
	engine.projected = resize(engine.projected, n)
	engine.uvs = resize(engine.uvs, n)

	hasUV := geo.HasTexCoords()

	for i := 0; i < n; i++ {
		p := geo.Vertex(i)
		engine.world[i] = model.MultPoint(p)
		engine.projected[i] = projectVertex(mvp, p, width, height)
		if hasUV {
			engine.uvs[i] = geo.TexCoord(i)
		} else {
			engine.uvs[i] = Vec2{}
		}
	}

}

// recomputeNormals derives per-vertex normals from the world-space triangles: each triangle adds its
// un-normalized face normal (so larger triangles weigh more) to its three vertices, and the sums are normalized.
func (engine *Engine) recomputeNormals() {

	engine.normals = resize(engine.normals, len(engine.world))
	for i := range engine.normals {
		engine.normals[i] = Vec3{}
	}

	for _, t := range engine.tris {
		a, b, c := engine.world[t[0]], engine.world[t[1]], engine.world[t[2]]
		faceNormal := b.Sub(a).Cross(c.Sub(a))
		engine.normals[t[0]] = engine.normals[t[0]].Add(faceNormal)
		engine.normals[t[1]] = engine.normals[t[1]].Add(faceNormal)
		engine.normals[t[2]] = engine.normals[t[2]].Add(faceNormal)
	}

	for i, n := range engine.normals {
		engine.normals[i] = n.Unit()
	}

}

// setupTriangles drops triangles that can't be drawn (behind the camera, or zero-area) and computes the
// on-surface bounding box of the rest.
func (engine *Engine) setupTriangles(width, height int, stats *FrameStats) {

	engine.setups = engine.setups[:0]

	for _, t := range engine.tris {

		a, b, c := engine.projected[t[0]], engine.projected[t[1]], engine.projected[t[2]]

		if !a.valid || !b.valid || !c.valid {
			stats.Culled++
			continue
		}

		area := edge(a.sx, a.sy, b.sx, b.sy, c.sx, c.sy)
		if area == 0 || math32.IsNaN(area) {
			stats.Degenerate++
			continue
		}

		setup := triangleSetup{
			indices: t,
			a:       a,
			b:       b,
			c:       c,
			area:    area,
			minX:    clampCoord(math32.Floor(math32.Min(a.sx, math32.Min(b.sx, c.sx))), width),
			maxX:    clampCoord(math32.Ceil(math32.Max(a.sx, math32.Max(b.sx, c.sx))), width),
			minY:    clampCoord(math32.Floor(math32.Min(a.sy, math32.Min(b.sy, c.sy))), height),
			maxY:    clampCoord(math32.Ceil(math32.Max(a.sy, math32.Max(b.sy, c.sy))), height),
		}

		engine.setups = append(engine.setups, setup)
		stats.Drawn++

	}

}

// draw runs the frame over the surface's rows, serially or split into bands across goroutines, returning the
// number of pixels shaded.
func (engine *Engine) draw(fs *frameState, height int) int {

	if height == 0 || fs.surface.width == 0 {
		return 0
	}

	workers := engine.Workers
	if workers > height {
		workers = height
	}

	if workers <= 1 {
		return fs.drawBand(band{0, height})
	}

	engine.shaded = resize(engine.shaded, workers)

	group := errgroup.Group{}
	rows := (height + workers - 1) / workers

	for i := 0; i < workers; i++ {
		i := i
		b := band{y0: i * rows, y1: math32.Min((i+1)*rows, height)}
		if b.y0 >= b.y1 {
			engine.shaded[i] = 0
			continue
		}
		group.Go(func() error {
			engine.shaded[i] = fs.drawBand(b)
			return nil
		})
	}

	group.Wait()

	total := 0
	for _, s := range engine.shaded {
		total += s
	}
	return total

}

// clampCoord converts a screen coordinate to an int within [0, size-1].
func clampCoord(v float32, size int) int {
	if size <= 0 {
		return 0
	}
	if !(v > 0) {
		return 0
	}
	if v >= float32(size-1) {
		return size - 1
	}
	return int(v)
}

// resize returns s with length n, reallocating only when its capacity is too small.
func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}

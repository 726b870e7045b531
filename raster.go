package raster3d

import (
	"image"

	"github.com/solarlune/raster3d/math32"
	"golang.org/x/image/draw"
)

// vertexOut is a vertex after projection: its screen position, its NDC depth, and 1 / clip W for perspective-correct
// interpolation. A vertex on or behind the camera plane (clip W <= 0) can't be projected and is marked invalid.
type vertexOut struct {
	sx, sy float32
	ndcZ   float32
	invW   float32
	valid  bool
}

// projectVertex transforms a model-space point by the MVP matrix and maps it onto a width x height surface.
func projectVertex(mvp Mat4, p Vec3, width, height float32) vertexOut {

	clip := mvp.MultVec4(p.Vec4(1))
	if !(clip.W > 0) {
		return vertexOut{}
	}

	invW := 1 / clip.W
	ndcX := clip.X * invW
	ndcY := clip.Y * invW

	return vertexOut{
		sx:    (ndcX*0.5 + 0.5) * (width - 1),
		sy:    (1 - (ndcY*0.5 + 0.5)) * (height - 1),
		ndcZ:  clip.Z * invW,
		invW:  invW,
		valid: true,
	}

}

// edge is the 2D edge function: twice the signed area of the triangle (a, b, p). Its sign says which side of the
// line a -> b the point p is on.
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}

// triangleSetup is everything the scan converter needs about one projected triangle.
type triangleSetup struct {
	indices                [3]int
	a, b, c                vertexOut
	area                   float32
	minX, maxX, minY, maxY int
}

// surface writes pixels to a draw.Image, addressing them relative to its top-left corner.
type surface struct {
	img           draw.Image
	nrgba         *image.NRGBA
	min           image.Point
	width, height int
}

func newSurface(img draw.Image) surface {
	bounds := img.Bounds()
	s := surface{
		img:    img,
		min:    bounds.Min,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}
	s.nrgba, _ = img.(*image.NRGBA)
	return s
}

func (s surface) set(x, y int, c Color) {
	n := c.ToNRGBA()
	if s.nrgba != nil {
		s.nrgba.SetNRGBA(s.min.X+x, s.min.Y+y, n)
		return
	}
	s.img.Set(s.min.X+x, s.min.Y+y, n)
}

// band is a horizontal strip of rows [y0, y1) of the surface. Each band is drawn by exactly one goroutine.
type band struct {
	y0, y1 int
}

// frameState is the read-only data shared by every band while a frame is drawn.
type frameState struct {
	surface   surface
	depth     *DepthBuffer
	triangles []triangleSetup
	normals   []Vec3
	uvs       []Vec2
	texture   image.Image
	ray       Vec3
	wire      bool
	fill      bool
	useTex    bool
	useLight  bool
	wireColor Color
	baseColor Color
}

// drawBand draws every triangle, in order, restricted to the rows of the band. It returns how many pixels passed
// the depth test and were shaded.
func (fs *frameState) drawBand(b band) int {

	shaded := 0

	for i := range fs.triangles {

		tri := &fs.triangles[i]

		if fs.wire {
			fs.drawLine(b, tri.a.sx, tri.a.sy, tri.b.sx, tri.b.sy)
			fs.drawLine(b, tri.b.sx, tri.b.sy, tri.c.sx, tri.c.sy)
			fs.drawLine(b, tri.c.sx, tri.c.sy, tri.a.sx, tri.a.sy)
		}

		if fs.fill {
			shaded += fs.fillTriangle(b, tri)
		}

	}

	return shaded

}

// fillTriangle scan-converts a triangle within the band, depth-testing, shading, and writing each covered pixel.
func (fs *frameState) fillTriangle(b band, tri *triangleSetup) int {

	minY := math32.Max(tri.minY, b.y0)
	maxY := math32.Min(tri.maxY, b.y1-1)

	if minY > maxY {
		return 0
	}

	a, bv, c := tri.a, tri.b, tri.c
	area := tri.area
	positive := area > 0
	invArea := 1 / area

	shaded := 0

	for y := minY; y <= maxY; y++ {

		py := float32(y) + 0.5

		for x := tri.minX; x <= tri.maxX; x++ {

			px := float32(x) + 0.5

			w0 := edge(bv.sx, bv.sy, c.sx, c.sy, px, py)
			w1 := edge(c.sx, c.sy, a.sx, a.sy, px, py)
			w2 := edge(a.sx, a.sy, bv.sx, bv.sy, px, py)

			if positive {
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
			} else if w0 > 0 || w1 > 0 || w2 > 0 {
				continue
			}

			alpha := w0 * invArea
			beta := w1 * invArea
			gamma := w2 * invArea

			// Weights for perspective-correct interpolation.
			wa := alpha * a.invW
			wb := beta * bv.invW
			wc := gamma * c.invW

			invW := wa + wb + wc
			if invW == 0 {
				continue
			}

			ndcZ := (wa*a.ndcZ + wb*bv.ndcZ + wc*c.ndcZ) / invW

			if !fs.depth.testAndSet(x, y, ndcZ*0.5+0.5) {
				continue
			}

			fs.surface.set(x, y, fs.shade(tri, wa, wb, wc, invW))
			shaded++

		}

	}

	return shaded

}

// shade returns the color of a covered pixel given its perspective weights (barycentric weight * 1/W per vertex)
// and their sum.
func (fs *frameState) shade(tri *triangleSetup, wa, wb, wc, invW float32) Color {

	color := fs.baseColor

	if fs.useTex && fs.texture != nil {
		uvA, uvB, uvC := fs.uvs[tri.indices[0]], fs.uvs[tri.indices[1]], fs.uvs[tri.indices[2]]
		uv := Vec2{
			X: (wa*uvA.X + wb*uvB.X + wc*uvC.X) / invW,
			Y: (wa*uvA.Y + wb*uvB.Y + wc*uvC.Y) / invW,
		}
		color = SampleTexture(fs.texture, uv)
	}

	if fs.useLight {
		nA, nB, nC := fs.normals[tri.indices[0]], fs.normals[tri.indices[1]], fs.normals[tri.indices[2]]
		n := Vec3{
			X: (wa*nA.X + wb*nB.X + wc*nC.X) / invW,
			Y: (wa*nA.Y + wb*nB.Y + wc*nC.Y) / invW,
			Z: (wa*nA.Z + wb*nB.Z + wc*nC.Z) / invW,
		}.Unit()
		if l := -n.Dot(fs.ray); l > 0 {
			color = Lambert(color, l)
		}
	}

	return color

}

// maxLineCoord bounds wire endpoints; projections of points barely in front of the camera can land absurdly far
// off-screen, and such lines are skipped rather than walked.
const maxLineCoord = 1 << 20

// drawLine draws a Bresenham line between two screen points in the wire color, writing only pixels that are on the
// surface and within the band. Wires are not depth-tested.
func (fs *frameState) drawLine(b band, x0f, y0f, x1f, y1f float32) {

	for _, v := range [4]float32{x0f, y0f, x1f, y1f} {
		if !(math32.Abs(v) < maxLineCoord) {
			return
		}
	}

	x0 := int(math32.Floor(x0f + 0.5))
	y0 := int(math32.Floor(y0f + 0.5))
	x1 := int(math32.Floor(x1f + 0.5))
	y1 := int(math32.Floor(y1f + 0.5))

	// Lines entirely above or below the band can't touch it.
	if (y0 < b.y0 && y1 < b.y0) || (y0 >= b.y1 && y1 >= b.y1) {
		return
	}

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}

	err := dx - dy
	x, y := x0, y0

	for {

		if x >= 0 && x < fs.surface.width && y >= b.y0 && y < b.y1 {
			fs.surface.set(x, y, fs.wireColor)
		}

		if x == x1 && y == y1 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}

	}

}

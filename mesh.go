package raster3d

import (
	"github.com/solarlune/raster3d/math32"
)

// Dimensions represents the minimum and maximum spatial dimensions of a Mesh.
type Dimensions [2]Vec3

// Center returns the center point inbetween the two corners of the dimension set.
func (dim Dimensions) Center() Vec3 {
	return dim[0].Add(dim[1]).Scale(0.5)
}

func (dim Dimensions) Width() float32 {
	return dim[1].X - dim[0].X
}

func (dim Dimensions) Height() float32 {
	return dim[1].Y - dim[0].Y
}

func (dim Dimensions) Depth() float32 {
	return dim[1].Z - dim[0].Z
}

// MaxSpan returns the maximum span out of width, height, and depth.
func (dim Dimensions) MaxSpan() float32 {
	return math32.Max(math32.Max(dim.Width(), dim.Height()), dim.Depth())
}

// Mesh is an in-memory polygon mesh: a list of vertex positions, an optional parallel list of texture
// coordinates, and a list of polygonal faces indexing into them. Mesh implements Geometry.
type Mesh struct {
	Name       string
	Positions  []Vec3
	TexCoords  []Vec2 // Either empty or exactly as long as Positions
	Faces      [][]int
	Dimensions Dimensions
}

// NewMesh returns a new, empty Mesh with the given name.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Clone returns a deep copy of the Mesh.
func (mesh *Mesh) Clone() *Mesh {

	newMesh := &Mesh{
		Name:       mesh.Name,
		Positions:  append([]Vec3(nil), mesh.Positions...),
		TexCoords:  append([]Vec2(nil), mesh.TexCoords...),
		Faces:      make([][]int, 0, len(mesh.Faces)),
		Dimensions: mesh.Dimensions,
	}

	for _, f := range mesh.Faces {
		newMesh.Faces = append(newMesh.Faces, append([]int(nil), f...))
	}

	return newMesh

}

// AddVertex appends a vertex with the given position and texture coordinate, returning its index.
func (mesh *Mesh) AddVertex(position Vec3, uv Vec2) int {
	mesh.Positions = append(mesh.Positions, position)
	mesh.TexCoords = append(mesh.TexCoords, uv)
	return len(mesh.Positions) - 1
}

// AddFace appends a polygonal face. No validation is done here; the Engine skips faces it can't triangulate.
func (mesh *Mesh) AddFace(indices ...int) {
	mesh.Faces = append(mesh.Faces, append([]int(nil), indices...))
}

// ApplyMatrix applies the Mat4 provided to all vertices on the Mesh, and then updates its Dimensions.
func (mesh *Mesh) ApplyMatrix(matrix Mat4) {
	for i, p := range mesh.Positions {
		mesh.Positions[i] = matrix.MultPoint(p)
	}
	mesh.UpdateBounds()
}

// UpdateBounds updates the mesh's dimensions; call this after manually changing vertex positions.
func (mesh *Mesh) UpdateBounds() {

	if len(mesh.Positions) == 0 {
		mesh.Dimensions = Dimensions{}
		return
	}

	lo, hi := mesh.Positions[0], mesh.Positions[0]

	for _, v := range mesh.Positions[1:] {
		lo.X = math32.Min(lo.X, v.X)
		lo.Y = math32.Min(lo.Y, v.Y)
		lo.Z = math32.Min(lo.Z, v.Z)
		hi.X = math32.Max(hi.X, v.X)
		hi.Y = math32.Max(hi.Y, v.Y)
		hi.Z = math32.Max(hi.Z, v.Z)
	}

	mesh.Dimensions = Dimensions{lo, hi}

}

// TriangleCount returns how many triangles the Mesh's valid faces fan out into.
func (mesh *Mesh) TriangleCount() int {
	count := 0
	for _, f := range mesh.Faces {
		if len(f) >= 3 {
			count += len(f) - 2
		}
	}
	return count
}

func (mesh *Mesh) VertexCount() int { return len(mesh.Positions) }

func (mesh *Mesh) Vertex(i int) Vec3 { return mesh.Positions[i] }

func (mesh *Mesh) FaceCount() int { return len(mesh.Faces) }

func (mesh *Mesh) FaceIndices(f int) []int { return mesh.Faces[f] }

// HasTexCoords returns true if every vertex carries a texture coordinate.
func (mesh *Mesh) HasTexCoords() bool {
	return len(mesh.TexCoords) > 0 && len(mesh.TexCoords) == len(mesh.Positions)
}

// TexCoord returns the texture coordinate of the indexed vertex, or (0, 0) if it has none.
func (mesh *Mesh) TexCoord(i int) Vec2 {
	if i < 0 || i >= len(mesh.TexCoords) {
		return Vec2{}
	}
	return mesh.TexCoords[i]
}

// NewCubeMesh creates a new 2x2x2 cube Mesh centered on the origin. Each side is its own quad (so UVs can span
// the full texture on every side), wound counter-clockwise when seen from outside.
func NewCubeMesh() *Mesh {

	mesh := NewMesh("Cube")

	sides := [6][4]Vec3{
		{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},     // Top
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, // Bottom
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},     // Front
		{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}, // Back
		{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},     // Right
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, // Left
	}

	uvs := [4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, side := range sides {
		var face [4]int
		for i, p := range side {
			face[i] = mesh.AddVertex(p, uvs[i])
		}
		mesh.AddFace(face[:]...)
	}

	mesh.UpdateBounds()
	return mesh

}

// NewPlaneMesh creates a new 2x2 plane Mesh lying on the XZ plane and facing +Y, split into segments x segments quads.
// segments below 1 are treated as 1.
func NewPlaneMesh(segments int) *Mesh {

	if segments < 1 {
		segments = 1
	}

	mesh := NewMesh("Plane")

	step := 2 / float32(segments)

	for z := 0; z <= segments; z++ {
		for x := 0; x <= segments; x++ {
			u := float32(x) / float32(segments)
			v := float32(z) / float32(segments)
			mesh.AddVertex(Vec3{-1 + float32(x)*step, 0, 1 - float32(z)*step}, Vec2{u, v})
		}
	}

	row := segments + 1

	for z := 0; z < segments; z++ {
		for x := 0; x < segments; x++ {
			i := z*row + x
			mesh.AddFace(i, i+1, i+1+row, i+row)
		}
	}

	mesh.UpdateBounds()
	return mesh

}

// NewIcosphereMesh creates a new sphere Mesh of radius 1 by subdividing an icosahedron the given number of times
// (each subdivision quarters every triangle). Texture coordinates are a simple spherical projection.
func NewIcosphereMesh(subdivisions int) *Mesh {

	t := (1 + math32.Sqrt(5)) / 2

	verts := []Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}

	for i := range verts {
		verts[i] = verts[i].Unit()
	}

	tris := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for s := 0; s < subdivisions; s++ {

		midpoints := map[[2]int]int{}

		midpoint := func(a, b int) int {
			key := [2]int{a, b}
			if b < a {
				key = [2]int{b, a}
			}
			if index, exists := midpoints[key]; exists {
				return index
			}
			verts = append(verts, verts[a].Add(verts[b]).Unit())
			midpoints[key] = len(verts) - 1
			return len(verts) - 1
		}

		next := make([][3]int, 0, len(tris)*4)

		for _, tri := range tris {
			ab := midpoint(tri[0], tri[1])
			bc := midpoint(tri[1], tri[2])
			ca := midpoint(tri[2], tri[0])
			next = append(next,
				[3]int{tri[0], ab, ca},
				[3]int{tri[1], bc, ab},
				[3]int{tri[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}

		tris = next

	}

	mesh := NewMesh("Icosphere")

	for _, p := range verts {
		u := 0.5 + math32.Atan2(p.Z, p.X)/(2*math32.Pi)
		v := 0.5 + math32.Asin(math32.Clamp(p.Y, -1, 1))/math32.Pi
		mesh.AddVertex(p, Vec2{u, v})
	}

	for _, tri := range tris {
		mesh.AddFace(tri[0], tri[1], tri[2])
	}

	mesh.UpdateBounds()
	return mesh

}

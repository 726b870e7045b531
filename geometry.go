package raster3d

// Geometry is the read-only view of a polygon mesh the Engine renders from. Indices are zero-based. A Geometry is
// never modified while rendering, and the Engine never asks it for normals: those are recomputed every frame from
// the positions.
type Geometry interface {
	VertexCount() int
	Vertex(i int) Vec3
	FaceCount() int
	// FaceIndices returns the vertex indices of a polygonal face, in winding order. Faces of three or more
	// indices are fan-triangulated around their first index.
	FaceIndices(f int) []int
	HasTexCoords() bool
	// TexCoord is only consulted when HasTexCoords() is true.
	TexCoord(i int) Vec2
}

// triangulateFace appends the fan triangles (v0, vi, vi+1) of the given face to tris, returning the extended slice
// and whether the face was usable. Faces with fewer than three indices or with any index outside [0, vertexCount)
// are rejected whole.
func triangulateFace(tris [][3]int, face []int, vertexCount int) ([][3]int, bool) {

	if len(face) < 3 {
		return tris, false
	}

	for _, index := range face {
		if index < 0 || index >= vertexCount {
			return tris, false
		}
	}

	for i := 1; i < len(face)-1; i++ {
		tris = append(tris, [3]int{face[0], face[i], face[i+1]})
	}

	return tris, true

}

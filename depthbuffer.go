package raster3d

import "github.com/solarlune/raster3d/math32"

// DepthBuffer holds one depth value per pixel of the surface being rendered to. Depths are stored remapped to
// [0, 1] (0 at the near plane); a cleared cell holds MaxFloat32, so anything rendered passes the test against it.
type DepthBuffer struct {
	width, height int
	values        []float32
}

// NewDepthBuffer returns a cleared DepthBuffer of the given size.
func NewDepthBuffer(width, height int) *DepthBuffer {
	db := &DepthBuffer{}
	db.Resize(width, height)
	return db
}

// Resize reallocates the buffer if the dimensions differ from the current ones, returning true if it did. A
// reallocated buffer comes back cleared; otherwise the contents are untouched.
func (db *DepthBuffer) Resize(width, height int) bool {

	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	if db.values != nil && width == db.width && height == db.height {
		return false
	}

	db.width = width
	db.height = height
	db.values = make([]float32, width*height)
	db.Clear()
	return true

}

// Clear resets every cell to the maximum depth.
func (db *DepthBuffer) Clear() {
	for i := range db.values {
		db.values[i] = math32.MaxFloat32
	}
}

// Size returns the dimensions of the buffer.
func (db *DepthBuffer) Size() (width, height int) {
	return db.width, db.height
}

// At returns the depth stored for the pixel at x, y (relative to the surface's top-left corner). Coordinates outside
// of the buffer report the maximum depth.
func (db *DepthBuffer) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= db.width || y >= db.height {
		return math32.MaxFloat32
	}
	return db.values[y*db.width+x]
}

// testAndSet writes depth into the cell at x, y if it's strictly nearer than the stored value, returning whether it did.
func (db *DepthBuffer) testAndSet(x, y int, depth float32) bool {
	i := y*db.width + x
	if depth < db.values[i] {
		db.values[i] = depth
		return true
	}
	return false
}

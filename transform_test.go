package raster3d

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solarlune/raster3d/math32"
)

func TestTransformMatrix(t *testing.T) {

	assert.True(t, NewTransform().Matrix().IsIdentity())

	tf := NewTransform()
	tf.Position = Vec3{10, 0, 0}
	tf.Rotation = Vec3{0, math32.Pi / 2, 0}
	tf.Scale = Vec3{2, 2, 2}

	// Scaled to (0, 0, 2), turned onto +X, then moved.
	p := tf.Matrix().MultPoint(Vec3{0, 0, 1})
	assert.InDelta(t, 12, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)

	// X rotation happens before Z rotation.
	tf = NewTransform()
	tf.Rotation = Vec3{math32.Pi / 2, 0, math32.Pi / 2}
	p = tf.Matrix().MultPoint(Vec3{0, 1, 0})
	// Rx turns +Y onto +Z; Rz leaves +Z alone.
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, 1, p.Z, 1e-5)

}

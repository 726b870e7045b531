package raster3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func BenchmarkMatrixMult(b *testing.B) {

	b.ReportAllocs()

	mat := NewMat4Rotate(Vec3{0, 1, 0.2}, 0.24).Mult(NewMat4Translate(1, 4, -12))
	other := NewMat4Scale(2, 3, 4)

	for i := 0; i < b.N; i++ {
		mat = mat.Mult(other)
	}

}

func TestNewMat4(t *testing.T) {

	values := make([]float32, 16)
	for i := range values {
		values[i] = float32(i)
	}

	mat, err := NewMat4(values)
	require.NoError(t, err)
	assert.Equal(t, float32(6), mat.At(1, 2))
	assert.Equal(t, Vec4{12, 13, 14, 15}, mat.Row(3))

	for _, n := range []int{0, 9, 15, 17} {
		_, err := NewMat4(make([]float32, n))
		assert.ErrorIs(t, err, ErrMat4Length, "length %d", n)
	}

}

func TestMatrixIdentity(t *testing.T) {

	matrices := []Mat4{
		NewMat4Rotate(Vec3{0, 1, 0}, 0.1),
		NewMat4Translate(-10, 0.1, 3232.1976),
		NewMat4Scale(10, 0.1, -0.45),
		NewMat4Translate(-1, -1, -1).Mult(NewMat4Rotate(Vec3{1, 0, 0.1}, 0.334)).Mult(NewMat4Scale(10, 1, 0)),
	}

	for i, mat := range matrices {
		assert.True(t, mat.Mult(Identity()).Equals(mat), "matrix #%d * identity changed the matrix", i)
		assert.True(t, Identity().Mult(mat).Equals(mat), "identity * matrix #%d changed the matrix", i)
	}

	assert.True(t, Identity().IsIdentity())
	assert.False(t, NewMat4Translate(1, 0, 0).IsIdentity())

}

func TestMatrixMultOrder(t *testing.T) {

	// Translate * Scale scales first, then moves.
	mat := NewMat4Translate(1, 2, 3).Mult(NewMat4Scale(2, 2, 2))
	assert.True(t, mat.MultPoint(Vec3{1, 1, 1}).Equals(Vec3{3, 4, 5}))

	// Scale * Translate moves first, then scales.
	mat = NewMat4Scale(2, 2, 2).Mult(NewMat4Translate(1, 2, 3))
	assert.True(t, mat.MultPoint(Vec3{1, 1, 1}).Equals(Vec3{4, 6, 8}))

	// Homogeneous W is carried through.
	assert.Equal(t, Vec4{1, 2, 3, 0}, NewMat4Translate(5, 5, 5).MultVec4(Vec4{1, 2, 3, 0}))

}

func TestMatrixRotation(t *testing.T) {

	quarter := float32(1.5707963)

	tests := []struct {
		name string
		mat  Mat4
		in   Vec3
		out  Vec3
	}{
		{"x", NewMat4RotateX(quarter), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y", NewMat4RotateY(quarter), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"z", NewMat4RotateZ(quarter), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"axis x", NewMat4Rotate(Vec3{1, 0, 0}, quarter), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"axis y", NewMat4Rotate(Vec3{0, 2, 0}, quarter), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.mat.MultPoint(test.in)
			assert.InDelta(t, test.out.X, got.X, 1e-5)
			assert.InDelta(t, test.out.Y, got.Y, 1e-5)
			assert.InDelta(t, test.out.Z, got.Z, 1e-5)
		})
	}

	// Arbitrary-axis rotation agrees with the per-axis constructors.
	assert.True(t, NewMat4Rotate(Vec3{0, 0, 1}, 0.7).Equals(NewMat4RotateZ(0.7)))

}

func TestMatrixTransposed(t *testing.T) {
	mat := NewMat4Translate(1, 2, 3)
	tr := mat.Transposed()
	assert.Equal(t, float32(1), tr.At(3, 0))
	assert.Equal(t, float32(3), tr.At(3, 2))
	assert.Equal(t, mat, tr.Transposed())
}

func TestMatrixZero(t *testing.T) {
	var mat Mat4
	assert.True(t, mat.IsZero())
	assert.False(t, Identity().IsZero())
	assert.Equal(t, "{1, 0, 0, 0\n0, 1, 0, 0\n0, 0, 1, 0\n0, 0, 0, 1}", Identity().String())
}

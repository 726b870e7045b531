package raster3d

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/solarlune/raster3d/math32"
)

// ErrMat4Length is returned when a Mat4 is built from anything other than exactly 16 values.
var ErrMat4Length = errors.New("raster3d: Mat4 needs exactly 16 values")

// Mat4 represents a 4x4 matrix for translation, scale, rotation, and projection. A Mat4 in raster3d is row-major:
// element (row, column) is stored at index row*4+column, and vectors are multiplied as column vectors on the right (M * v).
type Mat4 [16]float32

// NewMat4 builds a Mat4 from exactly 16 row-major values.
func NewMat4(values []float32) (Mat4, error) {
	var mat Mat4
	if len(values) != 16 {
		return mat, fmt.Errorf("%w (got %d)", ErrMat4Length, len(values))
	}
	copy(mat[:], values)
	return mat, nil
}

// Identity returns a new identity Mat4.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewMat4Translate returns a new identity Mat4, but with the x, y, and z translation components set as provided.
func NewMat4Translate(x, y, z float32) Mat4 {
	mat := Identity()
	mat[3] = x
	mat[7] = y
	mat[11] = z
	return mat
}

// NewMat4Scale returns a new identity Mat4, but with the scale components set as provided. 1, 1, 1 is the default.
func NewMat4Scale(x, y, z float32) Mat4 {
	mat := Identity()
	mat[0] = x
	mat[5] = y
	mat[10] = z
	return mat
}

// NewMat4RotateX returns a Mat4 rotating counter-clockwise around +X by the angle given (in radians).
func NewMat4RotateX(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	mat := Identity()
	mat[5], mat[6] = c, -s
	mat[9], mat[10] = s, c
	return mat
}

// NewMat4RotateY returns a Mat4 rotating counter-clockwise around +Y by the angle given (in radians).
func NewMat4RotateY(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	mat := Identity()
	mat[0], mat[2] = c, s
	mat[8], mat[10] = -s, c
	return mat
}

// NewMat4RotateZ returns a Mat4 rotating counter-clockwise around +Z by the angle given (in radians).
func NewMat4RotateZ(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	mat := Identity()
	mat[0], mat[1] = c, -s
	mat[4], mat[5] = s, c
	return mat
}

// NewMat4Rotate returns a Mat4 rotating by the angle given (in radians) around the axis given. The rotation
// works as though you pierced the object through by the axis and then rotated it counter-clockwise.
// A zero axis defaults to spinning on +Y.
func NewMat4Rotate(axis Vec3, angle float32) Mat4 {

	if axis.IsZero() {
		axis = WorldUp
	}

	a := axis.Unit()
	s := math32.Sin(angle)
	c := math32.Cos(angle)
	m := 1 - c

	return Mat4{
		m*a.X*a.X + c, m*a.X*a.Y - a.Z*s, m*a.X*a.Z + a.Y*s, 0,
		m*a.X*a.Y + a.Z*s, m*a.Y*a.Y + c, m*a.Y*a.Z - a.X*s, 0,
		m*a.X*a.Z - a.Y*s, m*a.Y*a.Z + a.X*s, m*a.Z*a.Z + c, 0,
		0, 0, 0, 1,
	}

}

// At returns the element at the given row and column.
func (matrix Mat4) At(row, col int) float32 {
	return matrix[row*4+col]
}

// Row returns the indexed row of the Mat4 as a Vec4.
func (matrix Mat4) Row(row int) Vec4 {
	return Vec4{matrix[row*4], matrix[row*4+1], matrix[row*4+2], matrix[row*4+3]}
}

// Mult multiplies the Mat4 by another provided Mat4, returning matrix * other. Applied to a vector, the result
// performs other's transformation first, then the calling Mat4's.
func (matrix Mat4) Mult(other Mat4) Mat4 {

	var out Mat4

	for r := 0; r < 4; r++ {
		a0, a1, a2, a3 := matrix[r*4], matrix[r*4+1], matrix[r*4+2], matrix[r*4+3]
		for c := 0; c < 4; c++ {
			out[r*4+c] = a0*other[c] + a1*other[4+c] + a2*other[8+c] + a3*other[12+c]
		}
	}

	return out

}

// MultVec4 multiplies the Vec4 provided by the Mat4 (M * v).
func (matrix Mat4) MultVec4(v Vec4) Vec4 {
	return Vec4{
		X: matrix[0]*v.X + matrix[1]*v.Y + matrix[2]*v.Z + matrix[3]*v.W,
		Y: matrix[4]*v.X + matrix[5]*v.Y + matrix[6]*v.Z + matrix[7]*v.W,
		Z: matrix[8]*v.X + matrix[9]*v.Y + matrix[10]*v.Z + matrix[11]*v.W,
		W: matrix[12]*v.X + matrix[13]*v.Y + matrix[14]*v.Z + matrix[15]*v.W,
	}
}

// MultPoint transforms a position (W = 1) by the Mat4 and drops the resulting W component.
func (matrix Mat4) MultPoint(v Vec3) Vec3 {
	return matrix.MultVec4(v.Vec4(1)).Vec3()
}

// Transposed returns a copy of the Mat4 with rows and columns swapped.
func (matrix Mat4) Transposed() Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = matrix[r*4+c]
		}
	}
	return out
}

// Equals returns true if every element of the Mat4 is within 1e-5 of the other Mat4.
func (matrix Mat4) Equals(other Mat4) bool {
	eps := float32(1e-5)
	for i := range matrix {
		if math32.Abs(matrix[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// IsIdentity returns true if the matrix is an unmodified identity matrix.
func (matrix Mat4) IsIdentity() bool {
	return matrix.Equals(Identity())
}

// IsZero returns true if the Mat4 is zero'd out (all values are 0), as an unset Mat4 is.
func (matrix Mat4) IsZero() bool {
	return matrix == Mat4{}
}

func (matrix Mat4) String() string {
	s := "{"
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s += strconv.FormatFloat(float64(matrix[r*4+c]), 'f', -1, 32)
			if c < 3 {
				s += ", "
			}
		}
		if r < 3 {
			s += "\n"
		}
	}
	s += "}"
	return s
}

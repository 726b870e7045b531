package raster3d

import (
	"fmt"

	"github.com/solarlune/raster3d/math32"
)

// WorldUp is the default upward direction (+Y) on raster3d's right-handed coordinate system.
var WorldUp = Vec3{0, 1, 0}

// Vec2 is a 2D vector; raster3d uses it for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// NewVec2 creates a new Vec2 with the specified x and y components.
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Vec3 represents a 3D vector (position, direction, normal, etc).
// Any Vec3 functions that would modify the calling Vec3 return copies of the modified Vec3, meaning you can do method-chaining easily.
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 creates a new Vec3 with the specified x, y, and z components.
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns a copy of the calling vector, added together with the other Vec3 provided.
func (vec Vec3) Add(other Vec3) Vec3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vec3, with the other Vec3 subtracted from it.
func (vec Vec3) Sub(other Vec3) Vec3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Scale returns a copy of the Vec3 with every component multiplied by the scalar.
func (vec Vec3) Scale(scalar float32) Vec3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Dot returns the dot product of the calling Vec3 and the other Vec3.
func (vec Vec3) Dot(other Vec3) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Cross returns a new Vec3, indicating the cross product of the calling Vec3 and the provided other Vec3.
func (vec Vec3) Cross(other Vec3) Vec3 {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Invert returns a copy of the Vec3 pointing the opposite way.
func (vec Vec3) Invert() Vec3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Magnitude returns the length of the Vec3.
func (vec Vec3) Magnitude() float32 {
	return math32.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// MagnitudeSquared returns the squared length of the Vec3; this is faster than Magnitude() as it avoids the square root.
func (vec Vec3) MagnitudeSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// Unit returns a copy of the Vec3, normalized (set to be of unit length).
// A Vec3 with a length of zero has no direction, so the zero Vec3 is returned instead.
func (vec Vec3) Unit() Vec3 {
	l := vec.Magnitude()
	if l == 0 || math32.IsNaN(l) {
		return Vec3{}
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Equals returns true if the two Vec3s are close enough in all values.
func (vec Vec3) Equals(other Vec3) bool {
	eps := float32(1e-6)
	return math32.Abs(vec.X-other.X) <= eps && math32.Abs(vec.Y-other.Y) <= eps && math32.Abs(vec.Z-other.Z) <= eps
}

// IsZero returns true if every component of the Vec3 is exactly zero.
func (vec Vec3) IsZero() bool {
	return vec.X == 0 && vec.Y == 0 && vec.Z == 0
}

// Vec4 returns the Vec3 extended with the provided W component.
func (vec Vec3) Vec4(w float32) Vec4 {
	return Vec4{X: vec.X, Y: vec.Y, Z: vec.Z, W: w}
}

func (vec Vec3) String() string {
	return fmt.Sprintf("{%.3f, %.3f, %.3f}", vec.X, vec.Y, vec.Z)
}

// Vec4 is a homogeneous 4D vector; W is 1 for positions and holds the clip-space w after projection.
type Vec4 struct {
	X, Y, Z, W float32
}

// NewVec4 creates a new Vec4 with the specified components.
func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Vec3 drops the W component.
func (vec Vec4) Vec3() Vec3 {
	return Vec3{X: vec.X, Y: vec.Y, Z: vec.Z}
}

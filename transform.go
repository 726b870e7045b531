package raster3d

// Transform holds the editable placement of a model in the world. Rotation is a set of Euler angles in radians,
// applied X first, then Y, then Z.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// NewTransform returns a Transform at the origin with no rotation and a scale of 1 on every axis.
func NewTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Matrix returns the model matrix for the Transform, T * Rz * Ry * Rx * S: vertices are scaled, rotated, and then moved.
func (t Transform) Matrix() Mat4 {
	return NewMat4Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mult(NewMat4RotateZ(t.Rotation.Z)).
		Mult(NewMat4RotateY(t.Rotation.Y)).
		Mult(NewMat4RotateX(t.Rotation.X)).
		Mult(NewMat4Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

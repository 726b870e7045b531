package raster3d

import (
	"errors"
	"fmt"

	"github.com/solarlune/raster3d/math32"
)

// ErrInvalidCamera is returned (wrapped with the reason) when a Camera is built from unusable parameters.
var ErrInvalidCamera = errors.New("raster3d: invalid camera")

// Camera represents a camera (where you look from) in raster3d. A Camera is immutable once created; methods that
// "change" it, like Orbit() or WithAspect(), return a new Camera instead.
//
// The scene's single light is rigidly attached to the Camera: it shines along the Camera's viewing direction, so
// whichever Camera is active also decides the lighting.
type Camera struct {
	eye, target, up Vec3
	fieldOfView     float32 // Vertical field of view in radians
	aspect          float32
	near, far       float32
}

// NewCamera creates a new Camera at eye looking towards target. fovY is the vertical field of view in radians and
// must be within (0, Pi); aspect (width / height) must be positive; near must be positive and far must be greater than near.
// up must not be parallel to the viewing direction, or the view basis would collapse.
func NewCamera(eye, target, up Vec3, fovY, aspect, near, far float32) (*Camera, error) {

	switch {
	case !(fovY > 0 && fovY < math32.Pi):
		return nil, fmt.Errorf("%w: field of view %v is outside (0, Pi)", ErrInvalidCamera, fovY)
	case !(aspect > 0):
		return nil, fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidCamera, aspect)
	case !(near > 0):
		return nil, fmt.Errorf("%w: near plane %v must be positive", ErrInvalidCamera, near)
	case !(far > near):
		return nil, fmt.Errorf("%w: far plane %v must be beyond the near plane %v", ErrInvalidCamera, far, near)
	}

	forward := eye.Sub(target)
	if forward.IsZero() {
		return nil, fmt.Errorf("%w: eye and target are both %v", ErrInvalidCamera, eye)
	}

	if up.Unit().Cross(forward.Unit()).MagnitudeSquared() < 1e-10 {
		return nil, fmt.Errorf("%w: up %v is parallel to the viewing direction", ErrInvalidCamera, up)
	}

	return &Camera{
		eye:         eye,
		target:      target,
		up:          up,
		fieldOfView: fovY,
		aspect:      aspect,
		near:        near,
		far:         far,
	}, nil

}

// Eye returns the Camera's position.
func (camera *Camera) Eye() Vec3 { return camera.eye }

// Target returns the point the Camera looks at.
func (camera *Camera) Target() Vec3 { return camera.target }

// Up returns the upward hint the Camera was built with.
func (camera *Camera) Up() Vec3 { return camera.up }

// FieldOfView returns the vertical field of view in radians.
func (camera *Camera) FieldOfView() float32 { return camera.fieldOfView }

// AspectRatio returns the width / height ratio of the Camera's projection.
func (camera *Camera) AspectRatio() float32 { return camera.aspect }

// Near returns the near plane of the Camera.
func (camera *Camera) Near() float32 { return camera.near }

// Far returns the far plane of the Camera.
func (camera *Camera) Far() float32 { return camera.far }

// ViewMatrix returns the Camera's right-handed look-at view matrix. Its rows are the Camera's right, up, and
// backward axes, each translated by the negated projection of the eye onto that axis.
func (camera *Camera) ViewMatrix() Mat4 {

	z := camera.eye.Sub(camera.target).Unit() // backward; the Camera looks down -Z
	x := camera.up.Cross(z).Unit()            // right
	y := z.Cross(x)                           // true up

	return Mat4{
		x.X, x.Y, x.Z, -x.Dot(camera.eye),
		y.X, y.Y, y.Z, -y.Dot(camera.eye),
		z.X, z.Y, z.Z, -z.Dot(camera.eye),
		0, 0, 0, 1,
	}

}

// ProjectionMatrix returns the Camera's symmetric perspective projection. Clip-space W ends up as the negated
// view-space Z, and Z lands within [-1, 1] after the perspective divide (OpenGL convention).
func (camera *Camera) ProjectionMatrix() Mat4 {

	f := 1 / math32.Tan(camera.fieldOfView/2)
	nf := 1 / (camera.near - camera.far)

	return Mat4{
		f / camera.aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (camera.far + camera.near) * nf, 2 * camera.far * camera.near * nf,
		0, 0, -1, 0,
	}

}

// ViewProjection returns Projection * View.
func (camera *Camera) ViewProjection() Mat4 {
	return camera.ProjectionMatrix().Mult(camera.ViewMatrix())
}

// LightRayDirection returns the direction the scene's light travels in: straight out of the Camera, towards its target.
func (camera *Camera) LightRayDirection() Vec3 {
	return camera.target.Sub(camera.eye).Unit()
}

// WorldToScreen projects a world-space point onto a width x height surface using the same mapping the Engine
// rasterizes with. The returned X and Y are pixel coordinates (row 0 at the top); Z is the depth remapped to [0, 1].
// ok is false when the point sits on or behind the Camera's plane and so has no projection.
func (camera *Camera) WorldToScreen(point Vec3, width, height int) (screen Vec3, ok bool) {
	out := projectVertex(camera.ViewProjection(), point, float32(width), float32(height))
	if !out.valid {
		return Vec3{}, false
	}
	return Vec3{out.sx, out.sy, out.ndcZ*0.5 + 0.5}, true
}

// Orbit returns a new Camera whose eye has been rotated around the target by angle radians, turning about the
// Camera's up axis. The distance to the target is preserved.
func (camera *Camera) Orbit(angle float32) *Camera {
	clone := *camera
	offset := camera.eye.Sub(camera.target)
	clone.eye = camera.target.Add(NewMat4Rotate(camera.up, angle).MultPoint(offset))
	return &clone
}

// WithAspect returns a copy of the Camera using the given aspect ratio; non-positive ratios leave it unchanged.
func (camera *Camera) WithAspect(aspect float32) *Camera {
	clone := *camera
	if aspect > 0 {
		clone.aspect = aspect
	}
	return &clone
}

// Package turntable produces eased orbit angles, for rendering a model from all the way around.
package turntable

import (
	"errors"
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/solarlune/raster3d"
	"github.com/solarlune/raster3d/math32"
)

var ErrUnknownEasing = errors.New("turntable: unknown easing")

var easings = map[string]ease.TweenFunc{
	"":             ease.Linear,
	"linear":       ease.Linear,
	"in-out-sine":  ease.InOutSine,
	"in-out-quad":  ease.InOutQuad,
	"in-out-cubic": ease.InOutCubic,
}

// Easing returns the easing function with the given name; an empty name is linear.
func Easing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// Angles returns one orbit angle (in radians) per frame, easing from 0 towards revolutions full turns. Frame i sits
// at i / frames along the way, so the last frame stops a step short of the end and a looped sequence doesn't
// show the same pose twice.
func Angles(frames int, revolutions float32, easing ease.TweenFunc) []float32 {

	if frames <= 0 {
		return nil
	}

	tween := gween.New(0, 2*math32.Pi*revolutions, float32(frames), easing)

	angles := make([]float32, frames)
	for i := 1; i < frames; i++ {
		angles[i], _ = tween.Update(1)
	}

	return angles

}

// Cameras orbits the camera around its target once per angle.
func Cameras(camera *raster3d.Camera, angles []float32) []*raster3d.Camera {
	cams := make([]*raster3d.Camera, 0, len(angles))
	for _, a := range angles {
		cams = append(cams, camera.Orbit(a))
	}
	return cams
}

// Spinner loops an eased turn endlessly, for interactive use.
type Spinner struct {
	tween *gween.Tween
}

// NewSpinner returns a Spinner taking period seconds per full turn.
func NewSpinner(period float32, easing ease.TweenFunc) *Spinner {
	return &Spinner{tween: gween.New(0, 2*math32.Pi, period, easing)}
}

// Update advances the Spinner by dt seconds and returns the current angle.
func (s *Spinner) Update(dt float32) float32 {
	angle, finished := s.tween.Update(dt)
	if finished {
		s.tween.Reset()
		return 0
	}
	return angle
}

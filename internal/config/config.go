// Package config describes a render job (what to render, from where, and how) as a YAML document.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solarlune/raster3d"
	"github.com/solarlune/raster3d/colors"
	"github.com/solarlune/raster3d/math32"
)

// ErrInvalidJob is wrapped by every error Validate() reports.
var ErrInvalidJob = errors.New("config: invalid job")

type Transform struct {
	Position    [3]float32 `yaml:"position"`
	RotationDeg [3]float32 `yaml:"rotation_deg"` // Euler angles, applied X, then Y, then Z
	Scale       [3]float32 `yaml:"scale"`
}

type Camera struct {
	Name   string     `yaml:"name,omitempty"`
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	Up     [3]float32 `yaml:"up,omitempty"` // defaults to +Y
	FOVDeg float32    `yaml:"fov_deg"`      // vertical
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

type Turntable struct {
	Frames      int     `yaml:"frames"`      // 0 renders a single still
	Revolutions float32 `yaml:"revolutions"` // full turns over the sequence
	Easing      string  `yaml:"easing"`      // linear | in-out-sine | in-out-quad | in-out-cubic
}

type Job struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Mesh         string `yaml:"mesh,omitempty"`      // .gltf / .glb path; takes priority over Primitive
	Primitive    string `yaml:"primitive,omitempty"` // cube | plane | icosphere
	Subdivisions int    `yaml:"subdivisions,omitempty"`

	Texture        string `yaml:"texture,omitempty"`
	TextureMaxSize int    `yaml:"texture_max_size,omitempty"`

	Mode         raster3d.RenderMode `yaml:"mode"`
	Transform    Transform           `yaml:"transform"`
	Cameras      []Camera            `yaml:"cameras"`
	ActiveCamera int                 `yaml:"active_camera"`
	ClearColor   string              `yaml:"clear_color"` // color name or #rrggbb[aa]
	Workers      int                 `yaml:"workers"`
	Turntable    Turntable           `yaml:"turntable"`
	Output       string              `yaml:"output"` // PNG path; turntable frames get a _0000 style suffix
}

// Default returns a job rendering a lit, wireframed cube from a single camera.
func Default() *Job {
	return &Job{
		Width:     640,
		Height:    480,
		Primitive: "cube",
		Mode:      raster3d.RenderModeAll,
		Transform: Transform{
			RotationDeg: [3]float32{20, 30, 0},
			Scale:       [3]float32{1, 1, 1},
		},
		Cameras: []Camera{{
			Name:   "main",
			Eye:    [3]float32{0, 0, 5},
			Up:     [3]float32{0, 1, 0},
			FOVDeg: 60,
			Near:   0.1,
			Far:    100,
		}},
		ClearColor: "black",
		Workers:    1,
		Turntable: Turntable{
			Revolutions: 1,
			Easing:      "linear",
		},
		Output: "render.png",
	}
}

// Load reads a job from a YAML file. Fields the file leaves out keep their Default() values.
func Load(path string) (*Job, error) {

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	job := Default()
	if err := yaml.Unmarshal(b, job); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil

}

// Save writes the job to a YAML file.
func Save(path string, job *Job) error {
	b, err := yaml.Marshal(job)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, b, 0644)
}

var primitives = map[string]bool{"cube": true, "plane": true, "icosphere": true}

var easings = map[string]bool{"": true, "linear": true, "in-out-sine": true, "in-out-quad": true, "in-out-cubic": true}

// Validate reports every problem with the job at once; each wraps ErrInvalidJob.
func (job *Job) Validate() error {

	var errs []error

	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidJob}, args...)...))
	}

	if job.Width <= 0 || job.Height <= 0 {
		invalid("size %dx%d must be positive", job.Width, job.Height)
	}

	if job.Mesh == "" && !primitives[job.Primitive] {
		invalid("unknown primitive %q", job.Primitive)
	}

	if !job.Mode.Valid() {
		invalid("render mode %v", job.Mode)
	}

	if len(job.Cameras) == 0 {
		invalid("no cameras")
	} else if job.ActiveCamera < 0 || job.ActiveCamera >= len(job.Cameras) {
		invalid("active camera %d out of range [0, %d)", job.ActiveCamera, len(job.Cameras))
	}

	if job.Width > 0 && job.Height > 0 {
		if _, err := job.CameraManager(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidJob, err))
		}
	}

	if _, err := ParseColor(job.ClearColor); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidJob, err))
	}

	if job.Workers < 0 {
		invalid("workers %d can't be negative", job.Workers)
	}

	if job.Turntable.Frames < 0 {
		invalid("turntable frames %d can't be negative", job.Turntable.Frames)
	}

	if !easings[job.Turntable.Easing] {
		invalid("unknown easing %q", job.Turntable.Easing)
	}

	return errors.Join(errs...)

}

// ModelMatrix returns the job's model transform as a Mat4.
func (job *Job) ModelMatrix() raster3d.Mat4 {
	t := job.Transform
	return raster3d.Transform{
		Position: raster3d.Vec3{X: t.Position[0], Y: t.Position[1], Z: t.Position[2]},
		Rotation: raster3d.Vec3{
			X: math32.ToRadians(t.RotationDeg[0]),
			Y: math32.ToRadians(t.RotationDeg[1]),
			Z: math32.ToRadians(t.RotationDeg[2]),
		},
		Scale: raster3d.Vec3{X: t.Scale[0], Y: t.Scale[1], Z: t.Scale[2]},
	}.Matrix()
}

// CameraManager builds the job's cameras, with the aspect ratio of the output, and the active one selected.
func (job *Job) CameraManager() (*raster3d.CameraManager, error) {

	cm := raster3d.NewCameraManager()
	aspect := float32(job.Width) / float32(job.Height)

	for i, c := range job.Cameras {

		up := raster3d.Vec3{X: c.Up[0], Y: c.Up[1], Z: c.Up[2]}
		if up.IsZero() {
			up = raster3d.WorldUp
		}

		cam, err := raster3d.NewCamera(
			raster3d.Vec3{X: c.Eye[0], Y: c.Eye[1], Z: c.Eye[2]},
			raster3d.Vec3{X: c.Target[0], Y: c.Target[1], Z: c.Target[2]},
			up,
			math32.ToRadians(c.FOVDeg),
			aspect,
			c.Near,
			c.Far,
		)
		if err != nil {
			return nil, fmt.Errorf("camera %d (%s): %w", i, c.Name, err)
		}

		cm.Add(cam)

	}

	cm.SetActive(job.ActiveCamera)
	return cm, nil

}

// PrimitiveMesh builds the job's built-in primitive.
func (job *Job) PrimitiveMesh() (*raster3d.Mesh, error) {
	switch job.Primitive {
	case "cube":
		return raster3d.NewCubeMesh(), nil
	case "plane":
		return raster3d.NewPlaneMesh(max(1, job.Subdivisions)), nil
	case "icosphere":
		return raster3d.NewIcosphereMesh(job.Subdivisions), nil
	}
	return nil, fmt.Errorf("%w: unknown primitive %q", ErrInvalidJob, job.Primitive)
}

// ParseColor parses a color name (see colors.ByName()) or a #rrggbb / #rrggbbaa hex string.
func ParseColor(s string) (raster3d.Color, error) {

	s = strings.ToLower(strings.TrimSpace(s))

	if c, ok := colors.ByName(s); ok {
		return c, nil
	}

	hex, found := strings.CutPrefix(s, "#")
	if !found || (len(hex) != 6 && len(hex) != 8) {
		return raster3d.Color{}, fmt.Errorf("unknown color %q", s)
	}

	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return raster3d.Color{}, fmt.Errorf("unknown color %q: %w", s, err)
	}

	return raster3d.NewColor(
		float32(v>>24&0xff)/255,
		float32(v>>16&0xff)/255,
		float32(v>>8&0xff)/255,
		float32(v&0xff)/255,
	), nil

}

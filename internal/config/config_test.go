package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarlune/raster3d"
)

func TestDefaultIsValid(t *testing.T) {
	job := Default()
	require.NoError(t, job.Validate())

	cm, err := job.CameraManager()
	require.NoError(t, err)
	assert.Equal(t, 1, cm.Len())

	cam, err := cm.Active()
	require.NoError(t, err)
	assert.InDelta(t, float32(640)/480, cam.AspectRatio(), 1e-6)
}

func TestLoadKeepsDefaults(t *testing.T) {

	path := filepath.Join(t.TempDir(), "job.yaml")
	doc := `
width: 320
height: 200
primitive: icosphere
subdivisions: 2
mode: texture-lighting
clear_color: "#ff000080"
cameras:
  - name: front
    eye: [0, 0, 4]
    target: [0, 0, 0]
    fov_deg: 45
    near: 0.5
    far: 50
  - name: top
    eye: [0, 6, 0.01]
    target: [0, 0, 0]
    fov_deg: 70
    near: 0.1
    far: 20
active_camera: 1
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	job, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 320, job.Width)
	assert.Equal(t, raster3d.RenderModeTextureLighting, job.Mode)
	assert.Equal(t, 1, job.Workers, "unset fields keep their defaults")
	assert.Equal(t, "render.png", job.Output)

	cm, err := job.CameraManager()
	require.NoError(t, err)
	assert.Equal(t, 2, cm.Len())
	assert.Equal(t, 1, cm.ActiveIndex())

	cam, err := cm.Active()
	require.NoError(t, err)
	assert.Equal(t, raster3d.WorldUp, cam.Up(), "a missing up vector defaults to +Y")

	mesh, err := job.PrimitiveMesh()
	require.NoError(t, err)
	assert.Equal(t, "Icosphere", mesh.Name)

	bg, err := ParseColor(job.ClearColor)
	require.NoError(t, err)
	assert.Equal(t, raster3d.NewColor(1, 0, 0, float32(0x80)/255), bg)

}

func TestSaveLoadRoundTrip(t *testing.T) {

	path := filepath.Join(t.TempDir(), "job.yaml")

	job := Default()
	job.Mode = raster3d.RenderModeWireframe
	job.Turntable.Frames = 12
	job.Turntable.Easing = "in-out-sine"

	require.NoError(t, Save(path, job))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, job, loaded)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "mode: wireframe")

}

func TestLoadErrors(t *testing.T) {

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: sideways\n"), 0644))
	_, err = Load(path)
	assert.ErrorIs(t, err, raster3d.ErrInvalidRenderMode)

}

func TestValidate(t *testing.T) {

	tests := []struct {
		name   string
		modify func(job *Job)
		target error
	}{
		{"size", func(job *Job) { job.Width = 0 }, ErrInvalidJob},
		{"primitive", func(job *Job) { job.Primitive = "torus" }, ErrInvalidJob},
		{"mode none", func(job *Job) { job.Mode = raster3d.RenderModeNone }, ErrInvalidJob},
		{"no cameras", func(job *Job) { job.Cameras = nil }, ErrInvalidJob},
		{"active camera", func(job *Job) { job.ActiveCamera = 3 }, ErrInvalidJob},
		{"camera", func(job *Job) { job.Cameras[0].Near = 0 }, raster3d.ErrInvalidCamera},
		{"clear color", func(job *Job) { job.ClearColor = "#12345" }, ErrInvalidJob},
		{"workers", func(job *Job) { job.Workers = -1 }, ErrInvalidJob},
		{"frames", func(job *Job) { job.Turntable.Frames = -2 }, ErrInvalidJob},
		{"easing", func(job *Job) { job.Turntable.Easing = "bounce" }, ErrInvalidJob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Default()
			tt.modify(job)
			assert.ErrorIs(t, job.Validate(), tt.target)
		})
	}

	t.Run("mesh path skips the primitive check", func(t *testing.T) {
		job := Default()
		job.Primitive = ""
		job.Mesh = "model.glb"
		assert.NoError(t, job.Validate())
	})

	t.Run("all problems reported", func(t *testing.T) {
		job := Default()
		job.Width = -1
		job.Workers = -1
		err := job.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size")
		assert.Contains(t, err.Error(), "workers")
	})

}

func TestModelMatrix(t *testing.T) {
	job := Default()
	job.Transform = Transform{
		Position:    [3]float32{1, 2, 3},
		RotationDeg: [3]float32{0, 90, 0},
		Scale:       [3]float32{2, 2, 2},
	}
	p := job.ModelMatrix().MultPoint(raster3d.Vec3{X: 1})
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 1, p.Z, 1e-5)
}

func TestParseColor(t *testing.T) {

	tests := []struct {
		in   string
		want raster3d.Color
		ok   bool
	}{
		{"white", raster3d.NewColor(1, 1, 1, 1), true},
		{" SkyBlue ", raster3d.NewColor(0.5, 0.7, 0.9, 1), true},
		{"#00ff00", raster3d.NewColor(0, 1, 0, 1), true},
		{"#0000ff00", raster3d.NewColor(0, 0, 1, 0), true},
		{"#xyzxyz", raster3d.Color{}, false},
		{"ff0000", raster3d.Color{}, false},
		{"mauve", raster3d.Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}

}

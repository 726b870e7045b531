package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarlune/raster3d/internal/config"
)

func TestFramePath(t *testing.T) {
	assert.Equal(t, "out/spin_0003.png", framePath("out/spin.png", 3))
	assert.Equal(t, "render_0012", framePath("render", 12))
}

func TestRun(t *testing.T) {

	dir := t.TempDir()

	job := config.Default()
	job.Width, job.Height = 32, 24
	job.Workers = 3
	job.Output = filepath.Join(dir, "still.png")
	require.NoError(t, run(job))

	f, err := os.Open(job.Output)
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 24, cfg.Height)

	job.Output = filepath.Join(dir, "spin.png")
	job.Turntable.Frames = 3
	require.NoError(t, run(job))
	for i := 0; i < 3; i++ {
		assert.FileExists(t, framePath(job.Output, i))
	}
	assert.NoFileExists(t, framePath(job.Output, 3))

}

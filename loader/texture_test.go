package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func newGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

func TestDecodeTextureFormats(t *testing.T) {

	src := newGradient(8, 4)

	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {

			data := bytes.Buffer{}
			require.NoError(t, encode(&data))

			tex, err := DecodeTexture(&data, 0)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), tex.Bounds())
			assert.Equal(t, src.NRGBAAt(5, 2), tex.NRGBAAt(5, 2))

		})
	}

}

func TestDecodeTextureDownscales(t *testing.T) {

	data := bytes.Buffer{}
	require.NoError(t, png.Encode(&data, newGradient(64, 16)))

	tex, err := DecodeTexture(&data, 16)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 4), tex.Bounds())

}

func TestDecodeTextureOffsetSource(t *testing.T) {

	// Sub-images keep their parent's coordinates; decoded textures always start at the origin.
	parent := newGradient(8, 8)
	sub := parent.SubImage(image.Rect(2, 2, 6, 6))

	data := bytes.Buffer{}
	require.NoError(t, png.Encode(&data, sub))

	tex, err := DecodeTexture(&data, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), tex.Bounds())
	assert.Equal(t, parent.NRGBAAt(2, 2), tex.NRGBAAt(0, 0))

}

func TestLoadTexture(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "gradient.png")

	data := bytes.Buffer{}
	require.NoError(t, png.Encode(&data, newGradient(4, 4)))
	require.NoError(t, os.WriteFile(path, data.Bytes(), 0o644))

	tex, err := LoadTexture(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Bounds().Dx())

	_, err = LoadTexture(filepath.Join(dir, "missing.png"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadTexture(garbage, 0)
	assert.ErrorIs(t, err, image.ErrFormat)

}

func TestFitSize(t *testing.T) {

	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{100, 50, 50, 50, 25},
		{50, 100, 50, 25, 50},
		{1000, 1, 10, 10, 1},
		{64, 64, 64, 64, 64},
	}

	for _, test := range tests {
		w, h := fitSize(test.w, test.h, test.max)
		assert.Equal(t, test.wantW, w, "%+v", test)
		assert.Equal(t, test.wantH, h, "%+v", test)
	}

}

package loader

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/solarlune/raster3d"

	// Texture formats understood by DecodeTexture.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyTexture is returned when a texture decodes to an image with no pixels.
var ErrEmptyTexture = errors.New("loader: texture has no pixels")

// LoadTexture loads a PNG, JPEG, BMP, TIFF or WebP image to use as a texture; see DecodeTexture().
func LoadTexture(path string, maxSize int) (*image.NRGBA, error) {

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening texture: %w", err)
	}
	defer file.Close()

	tex, err := DecodeTexture(file, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	return tex, nil

}

// DecodeTexture decodes an image into a non-premultiplied RGBA texture with its origin at (0, 0), which is the
// layout the Engine samples fastest. If maxSize is positive and the image is larger than maxSize on either side,
// it's scaled down (keeping its aspect ratio) so the larger side is maxSize.
func DecodeTexture(r io.Reader, maxSize int) (*image.NRGBA, error) {

	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("loader: decoding texture: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyTexture
	}

	w, h := fitSize(bounds.Dx(), bounds.Dy(), maxSize)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	if w != bounds.Dx() || h != bounds.Dy() {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	}

	raster3d.Logger().Debug().
		Str("format", format).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Int("scaled_width", w).
		Int("scaled_height", h).
		Msg("texture decoded")

	return dst, nil

}

// fitSize scales w x h down so neither side exceeds maxSize, keeping the aspect ratio and never going below 1 pixel.
func fitSize(w, h, maxSize int) (int, int) {

	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}

	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}

	return max(1, w*maxSize/h), maxSize

}

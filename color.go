package raster3d

import (
	"image/color"

	"github.com/solarlune/raster3d/math32"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromStd converts any image/color value (texture samples, for example) into a Color.
func NewColorFromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// ScaleRGB returns a copy of the Color with the R, G, and B components multiplied by the scalar; alpha is left alone.
func (c Color) ScaleRGB(scalar float32) Color {
	c.R *= scalar
	c.G *= scalar
	c.B *= scalar
	return c
}

// Clamped returns a copy of the Color with every component clamped to [0, 1].
func (c Color) Clamped() Color {
	c.R = math32.Clamp(c.R, 0, 1)
	c.G = math32.Clamp(c.G, 0, 1)
	c.B = math32.Clamp(c.B, 0, 1)
	c.A = math32.Clamp(c.A, 0, 1)
	return c
}

// ToNRGBA converts the Color to a non-premultiplied 8-bit color.NRGBA, rounding to the nearest step.
func (c Color) ToNRGBA() color.NRGBA {
	c = c.Clamped()
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// RGBA implements color.Color, so a Color can be handed directly to image APIs.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.ToNRGBA().RGBA()
}

package raster3d

import (
	"image"

	"github.com/solarlune/raster3d/math32"
)

// LambertK is the Lambert coefficient: the share of a surface's brightness that depends on the light. A surface
// facing away from the light keeps (1 - LambertK) of its base color.
const LambertK = 0.5

// flatGray is the base color used when nothing else colors a surface.
var flatGray = Color{0.5, 0.5, 0.5, 1}

// Lambert applies Lambert lighting to a base color, given l, the cosine between the surface normal and the
// direction towards the light. A negative l means the surface faces away from the light, and the base color is
// returned unchanged; otherwise the RGB components are scaled by (1 - LambertK) + LambertK * l and clamped to [0, 1].
// Alpha is never touched.
func Lambert(base Color, l float32) Color {
	if l < 0 {
		return base
	}
	out := base.ScaleRGB((1 - LambertK) + LambertK*l)
	out.R = math32.Clamp(out.R, 0, 1)
	out.G = math32.Clamp(out.G, 0, 1)
	out.B = math32.Clamp(out.B, 0, 1)
	return out
}

// SampleTexture returns the texel of tex nearest the given texture coordinate. Coordinates repeat outside of
// [0, 1), and V runs up from the bottom of the image. A nil or empty texture samples as flat gray.
func SampleTexture(tex image.Image, uv Vec2) Color {

	if tex == nil {
		return flatGray
	}

	bounds := tex.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return flatGray
	}

	u := uv.X - math32.Floor(uv.X)
	v := uv.Y - math32.Floor(uv.Y)

	tx := bounds.Min.X + math32.Clamp(int(u*float32(w)), 0, w-1)
	ty := bounds.Min.Y + math32.Clamp(int((1-v)*float32(h)), 0, h-1)

	if img, ok := tex.(*image.NRGBA); ok {
		i := img.PixOffset(tx, ty)
		p := img.Pix[i : i+4 : i+4]
		return Color{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255}
	}

	return NewColorFromStd(tex.At(tx, ty))

}

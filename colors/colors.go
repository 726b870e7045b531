package colors

// package colors contains functions to quickly and easily generate raster3d.Color instances by name (i.e. "White()", "Gray()", etc).

import "github.com/solarlune/raster3d"

// Transparent generates a raster3d.Color instance of the provided name.
func Transparent() raster3d.Color {
	return raster3d.NewColor(0, 0, 0, 0)
}

// White generates a raster3d.Color instance of the provided name.
func White() raster3d.Color {
	return raster3d.NewColor(1, 1, 1, 1)
}

// Black generates a raster3d.Color instance of the provided name.
func Black() raster3d.Color {
	return raster3d.NewColor(0, 0, 0, 1)
}

// Gray generates a raster3d.Color instance of the provided name. It matches the engine's flat base color.
func Gray() raster3d.Color {
	return raster3d.NewColor(0.5, 0.5, 0.5, 1)
}

// DarkGray generates a raster3d.Color instance of the provided name.
func DarkGray() raster3d.Color {
	return raster3d.NewColor(0.2, 0.2, 0.2, 1)
}

// SkyBlue generates a raster3d.Color instance of the provided name.
func SkyBlue() raster3d.Color {
	return raster3d.NewColor(0.5, 0.7, 0.9, 1)
}

// ByName returns the named color, or false when the name is unknown. Names are lowercase ("white", "darkgray").
func ByName(name string) (raster3d.Color, bool) {
	switch name {
	case "transparent":
		return Transparent(), true
	case "white":
		return White(), true
	case "black":
		return Black(), true
	case "gray", "grey":
		return Gray(), true
	case "darkgray", "darkgrey":
		return DarkGray(), true
	case "skyblue":
		return SkyBlue(), true
	}
	return raster3d.Color{}, false
}

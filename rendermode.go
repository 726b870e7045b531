package raster3d

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRenderMode is returned when rendering with (or parsing) a RenderMode that isn't one of the defined modes.
var ErrInvalidRenderMode = errors.New("raster3d: invalid render mode")

// RenderMode selects which of the wireframe, texture, and lighting stages a render runs.
type RenderMode int

const (
	// RenderModeNone is the zero value; it's not a usable mode, and the Engine rejects it.
	RenderModeNone RenderMode = iota
	// RenderModeWireframe draws only the triangle edges.
	RenderModeWireframe
	// RenderModeTexture fills triangles with the texture (or the flat base color if there's no texture).
	RenderModeTexture
	// RenderModeLighting fills triangles with the flat base color, lit by the Camera's light.
	RenderModeLighting
	// RenderModeTextureLighting fills triangles with the lit texture.
	RenderModeTextureLighting
	// RenderModeAll draws the wireframe over the lit, textured fill.
	RenderModeAll
)

var renderModeNames = map[RenderMode]string{
	RenderModeNone:            "none",
	RenderModeWireframe:       "wireframe",
	RenderModeTexture:         "texture",
	RenderModeLighting:        "lighting",
	RenderModeTextureLighting: "texture-lighting",
	RenderModeAll:             "all",
}

// Valid returns true if the RenderMode is one the Engine can render with.
func (mode RenderMode) Valid() bool {
	return mode >= RenderModeWireframe && mode <= RenderModeAll
}

// Flags returns which stages the RenderMode enables.
func (mode RenderMode) Flags() (wire, texture, lighting bool) {
	switch mode {
	case RenderModeWireframe:
		return true, false, false
	case RenderModeTexture:
		return false, true, false
	case RenderModeLighting:
		return false, false, true
	case RenderModeTextureLighting:
		return false, true, true
	case RenderModeAll:
		return true, true, true
	}
	return false, false, false
}

// fills returns true if the RenderMode scan-converts triangles at all (i.e. it isn't wires only).
func (mode RenderMode) fills() bool {
	_, texture, lighting := mode.Flags()
	return texture || lighting
}

func (mode RenderMode) String() string {
	if name, exists := renderModeNames[mode]; exists {
		return name
	}
	return fmt.Sprintf("RenderMode(%d)", int(mode))
}

// Next returns the RenderMode after this one, wrapping from RenderModeAll back to RenderModeWireframe.
func (mode RenderMode) Next() RenderMode {
	if !mode.Valid() || mode == RenderModeAll {
		return RenderModeWireframe
	}
	return mode + 1
}

// ParseRenderMode returns the RenderMode with the given name ("wireframe", "texture", "lighting",
// "texture-lighting", or "all"). Matching ignores case, and underscores may stand in for the dash.
func ParseRenderMode(name string) (RenderMode, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for mode, modeName := range renderModeNames {
		if mode.Valid() && modeName == n {
			return mode, nil
		}
	}
	return RenderModeNone, fmt.Errorf("%w: %q", ErrInvalidRenderMode, name)
}

// MarshalText implements encoding.TextMarshaler, so RenderModes read and write as their names in config files.
func (mode RenderMode) MarshalText() ([]byte, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRenderMode, int(mode))
	}
	return []byte(mode.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (mode *RenderMode) UnmarshalText(text []byte) error {
	parsed, err := ParseRenderMode(string(text))
	if err != nil {
		return err
	}
	*mode = parsed
	return nil
}

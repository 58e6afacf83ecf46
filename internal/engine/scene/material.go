package scene

import (
	"github.com/Faultbox/pagesketch/internal/engine/texture"
)

// Side selects which faces of a mesh are drawn.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Color is a linear RGB color with components in [0,1].
type Color struct {
	R, G, B float32
}

// Hex converts a 0xRRGGBB value to a Color.
func Hex(rgb uint32) Color {
	return Color{
		R: float32((rgb>>16)&0xff) / 255,
		G: float32((rgb>>8)&0xff) / 255,
		B: float32(rgb&0xff) / 255,
	}
}

// Material describes how a mesh is shaded.
type Material interface {
	// RenderSide reports which faces are drawn.
	RenderSide() Side
	// IsWireframe reports whether only triangle edges are drawn.
	IsWireframe() bool
}

// BasicMaterial is an unlit material: a flat color, or a texture when Map is set.
type BasicMaterial struct {
	Color     Color
	Map       *texture.Image
	Side      Side
	Wireframe bool
}

// RenderSide implements Material.
func (m *BasicMaterial) RenderSide() Side { return m.Side }

// IsWireframe implements Material.
func (m *BasicMaterial) IsWireframe() bool { return m.Wireframe }

// Uniform is a named shader input. Value is a float32, a float64 (uploaded
// as float) or a *texture.Image (bound as a sampler2D).
type Uniform struct {
	Value any
}

// ShaderMaterial shades a mesh with a named shader program.
type ShaderMaterial struct {
	// Program names a vertex/fragment pair known to the renderer.
	Program   string
	Uniforms  map[string]*Uniform
	Side      Side
	Wireframe bool
}

// RenderSide implements Material.
func (m *ShaderMaterial) RenderSide() Side { return m.Side }

// IsWireframe implements Material.
func (m *ShaderMaterial) IsWireframe() bool { return m.Wireframe }

// Float returns a float uniform's value, or 0 if the uniform is missing or
// holds something else.
func (m *ShaderMaterial) Float(name string) float64 {
	u, ok := m.Uniforms[name]
	if !ok {
		return 0
	}
	switch v := u.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	}
	return 0
}

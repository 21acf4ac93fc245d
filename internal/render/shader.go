package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/wellview/internal/scene"
)

// Stroke is one pass of a shaded interval.
type Stroke struct {
	Name    string
	Color   colorful.Color
	Width   float64
	Opacity float64
	Offset  scene.Point2
	// Main marks the stroke that carries the selection glow.
	Main bool
}

// Shader decides how an interval of the given style and width is stroked.
type Shader interface {
	Shade(style ComponentStyle, width float64) []Stroke
}

// CylinderShader fakes a lit cylinder with a wide dark stroke, a main color
// stroke and a thin offset highlight.
type CylinderShader struct{}

func (CylinderShader) Shade(s ComponentStyle, w float64) []Stroke {
	return []Stroke{
		{Name: "shadow", Color: s.Shadow, Width: w, Opacity: 1},
		{Name: "main", Color: s.Main, Width: w * 0.85, Opacity: 1, Main: true},
		{Name: "highlight", Color: s.Highlight, Width: w * 0.2, Opacity: 0.5, Offset: scene.Point2{X: -0.5, Y: -0.5}},
	}
}

// FlatShader draws a single stroke in the main color.
type FlatShader struct{}

func (FlatShader) Shade(s ComponentStyle, w float64) []Stroke {
	return []Stroke{{Name: "main", Color: s.Main, Width: w, Opacity: 1, Main: true}}
}

// ShaderByName returns "cylinder" or "flat"; anything else is a cylinder.
func ShaderByName(name string) Shader {
	if name == "flat" {
		return FlatShader{}
	}
	return CylinderShader{}
}

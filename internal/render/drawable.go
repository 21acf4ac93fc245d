package render

import (
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/wellview/internal/scene"
)

// Layer orders drawables back to front.
type Layer int

const (
	LayerRuler Layer = iota
	LayerWells
	LayerComponents
	LayerTrees
	LayerStructures
	LayerTooltips
)

func (l Layer) String() string {
	switch l {
	case LayerRuler:
		return "ruler"
	case LayerWells:
		return "wells"
	case LayerComponents:
		return "components"
	case LayerTrees:
		return "trees"
	case LayerStructures:
		return "structures"
	case LayerTooltips:
		return "tooltips"
	}
	return "unknown"
}

// Part says which piece of a well a drawable belongs to.
type Part string

const (
	PartPath      Part = "path"
	PartComponent Part = "component"
	PartTree      Part = "tree"
	PartStructure Part = "structure"
)

// Tag links a drawable back to the field. Drawables with an empty WellID
// are decoration and never picked.
type Tag struct {
	WellID      string `json:"well_id,omitempty"`
	ComponentID string `json:"component_id,omitempty"`
	Part        Part   `json:"part,omitempty"`
}

// Pickable reports whether the drawable can be hit by a pointer.
func (t Tag) Pickable() bool { return t.WellID != "" }

// Gradient is a two-stop linear gradient across the drawable's bounding
// box, top to bottom unless Horizontal.
type Gradient struct {
	From, To               colorful.Color
	FromOpacity, ToOpacity float64
	Horizontal             bool
}

// At returns the color and opacity at t in [0, 1].
func (g Gradient) At(t float64) (colorful.Color, float64) {
	t = clamp01(t)
	return g.From.BlendLab(g.To, t).Clamped(), g.FromOpacity + (g.ToOpacity-g.FromOpacity)*t
}

// Drawable is one stroke or label in projection-plane coordinates. The
// zoom transform is applied by the backend.
type Drawable struct {
	ID       string
	Layer    Layer
	Tag      Tag
	Points   []scene.Point2
	Stroke   colorful.Color
	Gradient *Gradient
	Width    float64
	Opacity  float64
	Offset   scene.Point2
	Glow     bool

	// Labels draw Text at Points[0].
	Text     string
	FontSize float64
	Anchor   string
}

// IsText reports whether the drawable is a label.
func (d *Drawable) IsText() bool { return d.Text != "" }

func (d *Drawable) equal(o *Drawable) bool {
	if d.ID != o.ID || d.Layer != o.Layer || d.Tag != o.Tag ||
		d.Stroke != o.Stroke || d.Width != o.Width || d.Opacity != o.Opacity ||
		d.Offset != o.Offset || d.Glow != o.Glow ||
		d.Text != o.Text || d.FontSize != o.FontSize || d.Anchor != o.Anchor {
		return false
	}
	if (d.Gradient == nil) != (o.Gradient == nil) {
		return false
	}
	if d.Gradient != nil && *d.Gradient != *o.Gradient {
		return false
	}
	return slices.Equal(d.Points, o.Points)
}

// Warning reports a component interval that reached past its well's path
// and was clamped to it.
type Warning struct {
	WellID        string  `json:"well_id"`
	ComponentID   string  `json:"component_id"`
	Top           float64 `json:"top"`
	Bottom        float64 `json:"bottom"`
	ClampedTop    float64 `json:"clamped_top"`
	ClampedBottom float64 `json:"clamped_bottom"`
}

// Frame is the full drawable list for one render, in draw order.
type Frame struct {
	Drawables []Drawable
	Warnings  []Warning
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

package render

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/scene"
	"github.com/san-kum/wellview/internal/survey"
)

const (
	DefaultRulerInterval = 500.0
	rulerMarginFactor    = 0.12
	rulerTickLength      = 6.0
	rulerBandWidth       = 40.0
	maxRulerTicks        = 400

	idleOpacity = 0.4

	selectedPathWidth = 2.5
	idlePathWidth     = 1.0

	selectedWidthFactor = 1.3
	packerWidthFactor   = 1.1
	packerHalfLength    = 8.0

	treeHeight   = 25.0
	treeWingDrop = treeHeight * 0.6
	treeWingSpan = 12.0
	treeWingSize = 0.6

	templateHalf   = 18.0
	templateHeight = 8.0
)

// Style switches optional decoration on and off.
type Style struct {
	RulerInterval  float64
	ShowRuler      bool
	ShowTrees      bool
	ShowStructures bool
}

func DefaultStyle() Style {
	return Style{
		RulerInterval:  DefaultRulerInterval,
		ShowRuler:      true,
		ShowTrees:      true,
		ShowStructures: true,
	}
}

// Hover asks for a tooltip describing tag at a projection-plane point.
type Hover struct {
	Tag Tag
	At  scene.Point2
}

// Builder produces frames. The zero value is not usable; use NewBuilder.
type Builder struct {
	Palette Palette
	Shader  Shader
	Style   Style
}

func NewBuilder() *Builder {
	return &Builder{Palette: DefaultPalette(), Shader: CylinderShader{}, Style: DefaultStyle()}
}

// frame carries the per-build state.
type frame struct {
	*Builder
	scene *scene.Scene
	proj  scene.Projection
	state scene.ViewportState
	out   Frame
}

// Build lays out one frame of s seen through p at the state's rotation.
func (b *Builder) Build(s *scene.Scene, p scene.Projector, state scene.ViewportState, hover *Hover) Frame {
	f := &frame{Builder: b, scene: s, proj: p.At(state.Rotation), state: state}
	if b.Style.ShowRuler {
		f.ruler()
	}
	for i := range s.Wells {
		f.wellPath(&s.Wells[i])
	}
	for i := range s.Wells {
		f.components(&s.Wells[i])
	}
	if b.Style.ShowTrees {
		for i := range s.Wells {
			f.tree(&s.Wells[i])
		}
	}
	if b.Style.ShowStructures {
		for i := range s.Wells {
			f.structure(&s.Wells[i])
		}
	}
	if hover != nil {
		f.tooltip(*hover)
	}
	return f.out
}

func (f *frame) add(d Drawable) {
	f.out.Drawables = append(f.out.Drawables, d)
}

func (f *frame) project(pts []survey.Point) []scene.Point2 {
	out := make([]scene.Point2, len(pts))
	for i, p := range pts {
		out[i] = f.proj.Project(p.Vec())
	}
	return out
}

func (f *frame) projectVecs(vs ...r3.Vec) []scene.Point2 {
	out := make([]scene.Point2, len(vs))
	for i, v := range vs {
		out[i] = f.proj.Project(v)
	}
	return out
}

func (f *frame) selectedWell(w *field.Well) bool {
	return w.ID == f.state.SelectedWellID
}

func (f *frame) wellOpacity(w *field.Well) float64 {
	if f.selectedWell(w) {
		return 1
	}
	return idleOpacity
}

// shaded appends one drawable per shader stroke.
func (f *frame) shaded(id string, layer Layer, tag Tag, pts []scene.Point2, st ComponentStyle, width, opacity float64, glow bool) {
	for _, s := range f.Shader.Shade(st, width) {
		f.add(Drawable{
			ID:      id + "/" + s.Name,
			Layer:   layer,
			Tag:     tag,
			Points:  pts,
			Stroke:  s.Color,
			Width:   s.Width,
			Opacity: s.Opacity * opacity,
			Offset:  s.Offset,
			Glow:    glow && s.Main,
		})
	}
}

func (f *frame) ruler() {
	b := f.scene.Bounds
	size := b.Size()
	margin := math.Max(size.X, size.Y) * rulerMarginFactor
	x, y := b.Min.X-margin, b.Min.Y-margin

	if w, ok := f.scene.Well(f.state.SelectedWellID); ok && len(w.Path) > 0 {
		i := 0
		for _, c := range w.Well.Components {
			if c.Kind != field.Casing {
				continue
			}
			top, _ := survey.PointAt(w.Path, c.Top)
			bot, _ := survey.PointAt(w.Path, c.Bottom)
			f.add(Drawable{
				ID:     "ruler/band/" + w.Well.ID + "/" + c.ID,
				Layer:  LayerRuler,
				Points: f.projectVecs(r3.Vec{X: x + 5, Y: y, Z: top.TVD}, r3.Vec{X: x + 5, Y: y, Z: bot.TVD}),
				Gradient: &Gradient{
					From:       f.Palette.Components[field.Casing].Main,
					To:         f.Palette.Components[field.Casing].Main,
					ToOpacity:  0.1 + 0.05*float64(i),
					Horizontal: true,
				},
				Width:   rulerBandWidth,
				Opacity: 1,
			})
			i++
		}
	}

	step := f.Style.RulerInterval
	if step <= 0 {
		step = DefaultRulerInterval
	}
	for n := 0; n < maxRulerTicks; n++ {
		z := float64(n) * step
		if z > b.Max.Z {
			break
		}
		p := f.proj.Project(r3.Vec{X: x, Y: y, Z: z})
		label := strconv.FormatFloat(z, 'f', -1, 64)
		f.add(Drawable{
			ID:      "ruler/tick/" + label,
			Layer:   LayerRuler,
			Points:  []scene.Point2{{X: p.X - rulerTickLength, Y: p.Y}, p},
			Stroke:  f.Palette.RulerTick,
			Width:   1,
			Opacity: 1,
		})
		f.add(Drawable{
			ID:       "ruler/label/" + label,
			Layer:    LayerRuler,
			Points:   []scene.Point2{{X: p.X - 10, Y: p.Y}},
			Stroke:   f.Palette.RulerLabel,
			Opacity:  1,
			Text:     label,
			FontSize: 9,
			Anchor:   "end",
		})
	}
}

func (f *frame) wellPath(w *scene.WellPath) {
	if len(w.Path) < 2 {
		return
	}
	d := Drawable{
		ID:     "well/" + w.Well.ID + "/path",
		Layer:  LayerWells,
		Tag:    Tag{WellID: w.Well.ID, Part: PartPath},
		Points: f.project(w.Path),
	}
	if f.selectedWell(w.Well) {
		d.Gradient = &Gradient{From: f.Palette.PathFrom, To: f.Palette.PathTo, FromOpacity: 1, ToOpacity: 1}
		d.Stroke = f.Palette.PathFrom
		d.Width = selectedPathWidth
		d.Opacity = 1
		d.Glow = true
	} else {
		d.Stroke = f.Palette.PathIdle
		d.Width = idlePathWidth
		d.Opacity = idleOpacity
	}
	f.add(d)
}

func (f *frame) components(w *scene.WellPath) {
	opacity := f.wellOpacity(w.Well)
	lo, hi := survey.Span(w.Path)
	for _, c := range w.Well.Components {
		st, ok := f.Palette.Components[c.Kind]
		if !ok {
			continue
		}
		top, bottom := c.Interval()
		if len(w.Path) == 0 {
			f.out.Warnings = append(f.out.Warnings, Warning{
				WellID: w.Well.ID, ComponentID: c.ID, Top: top, Bottom: bottom,
			})
			continue
		}
		if top < lo || bottom > hi || top > hi || bottom < lo {
			f.out.Warnings = append(f.out.Warnings, Warning{
				WellID: w.Well.ID, ComponentID: c.ID,
				Top: top, Bottom: bottom,
				ClampedTop: clamp(top, lo, hi), ClampedBottom: clamp(bottom, lo, hi),
			})
			// Nothing of it lies on the path.
			if top > hi || bottom < lo {
				continue
			}
		}

		selected := f.selectedWell(w.Well) && c.ID == f.state.SelectedComponentID
		width := st.Width
		if selected {
			width *= selectedWidthFactor
		}
		if c.Kind == field.Packer {
			top, bottom = top-packerHalfLength, top+packerHalfLength
			width *= packerWidthFactor
		}
		seg := survey.Segment(w.Path, top, bottom)
		if len(seg) < 2 {
			continue
		}
		tag := Tag{WellID: w.Well.ID, ComponentID: c.ID, Part: PartComponent}
		f.shaded("well/"+w.Well.ID+"/comp/"+c.ID, LayerComponents, tag, f.project(seg), st, width, opacity, selected)
	}
}

func (f *frame) tree(w *scene.WellPath) {
	st := f.Palette.PlatformTree
	if w.Well.Kind == field.Subsea {
		st = f.Palette.SubseaTree
	}
	root := w.Well.WellheadDepth()
	sx, sy := w.Surface.X, w.Surface.Y
	tag := Tag{WellID: w.Well.ID, Part: PartTree}
	opacity := f.wellOpacity(w.Well)
	id := "well/" + w.Well.ID + "/tree"

	stack := f.projectVecs(r3.Vec{X: sx, Y: sy, Z: root}, r3.Vec{X: sx, Y: sy, Z: root - treeHeight})
	f.shaded(id+"/stack", LayerTrees, tag, stack, st, st.Width, opacity, false)

	wz := root - treeWingDrop
	wing := f.projectVecs(r3.Vec{X: sx, Y: sy, Z: wz}, r3.Vec{X: sx + treeWingSpan, Y: sy, Z: wz})
	f.shaded(id+"/wing", LayerTrees, tag, wing, st, st.Width*treeWingSize, opacity, false)
}

func (f *frame) structure(w *scene.WellPath) {
	if w.Well.Kind != field.Subsea || w.Well.Structure == field.NoStructure {
		return
	}
	z := w.Well.WellheadDepth()
	cx, cy := w.Surface.X, w.Surface.Y
	tag := Tag{WellID: w.Well.ID, Part: PartStructure}
	id := "well/" + w.Well.ID + "/structure"

	switch w.Well.Structure {
	case field.Template:
		s := templateHalf
		ring := func(z float64) []scene.Point2 {
			return f.projectVecs(
				r3.Vec{X: cx - s, Y: cy - s, Z: z}, r3.Vec{X: cx + s, Y: cy - s, Z: z},
				r3.Vec{X: cx + s, Y: cy + s, Z: z}, r3.Vec{X: cx - s, Y: cy + s, Z: z},
				r3.Vec{X: cx - s, Y: cy - s, Z: z},
			)
		}
		f.outline(id+"/top", tag, ring(z))
		f.outline(id+"/bottom", tag, ring(z-templateHeight))
		corners := [4][2]float64{{-s, -s}, {-s, s}, {s, s}, {s, -s}}
		for k, c := range corners {
			edge := f.projectVecs(
				r3.Vec{X: cx + c[0], Y: cy + c[1], Z: z},
				r3.Vec{X: cx + c[0], Y: cy + c[1], Z: z - templateHeight},
			)
			f.outline(fmt.Sprintf("%s/edge/%d", id, k), tag, edge)
		}
	case field.Manifold:
		for k := 0; k < 4; k++ {
			x := cx - 12 + 8*float64(k)
			pipe := f.projectVecs(r3.Vec{X: x, Y: cy - 10, Z: z - 4}, r3.Vec{X: x, Y: cy + 10, Z: z - 4})
			f.shaded(fmt.Sprintf("%s/pipe/%d", id, k), LayerStructures, tag, pipe, f.Palette.Pipe, f.Palette.Pipe.Width, 1, false)
		}
	case field.PLET:
		skid := f.projectVecs(r3.Vec{X: cx - 10, Y: cy, Z: z - 3}, r3.Vec{X: cx + 10, Y: cy, Z: z - 3})
		f.shaded(id+"/skid", LayerStructures, tag, skid, f.Palette.Pipe, f.Palette.Pipe.Width*1.5, 1, false)
	}
}

func (f *frame) outline(id string, tag Tag, pts []scene.Point2) {
	f.add(Drawable{
		ID:      id,
		Layer:   LayerStructures,
		Tag:     tag,
		Points:  pts,
		Stroke:  f.Palette.Template,
		Width:   2,
		Opacity: 1,
	})
}

func (f *frame) tooltip(h Hover) {
	w, ok := f.scene.Well(h.Tag.WellID)
	if !ok {
		return
	}
	var title, detail string
	switch h.Tag.Part {
	case PartStructure:
		title = w.Well.Structure.Title()
		detail = "Assoc. with " + w.Well.Name
	case PartComponent:
		c, ok := w.Well.Component(h.Tag.ComponentID)
		if !ok {
			return
		}
		title = c.Label()
		detail = w.Well.Name
	default:
		title = w.Well.Name
		if s, ok := survey.Summarize(w.Path); ok {
			detail = fmt.Sprintf("MD %.0f  TVD %.0f", s.TotalMD, s.FinalTVD)
		}
	}
	f.add(Drawable{
		ID:       "tooltip/title",
		Layer:    LayerTooltips,
		Points:   []scene.Point2{{X: h.At.X, Y: h.At.Y - 27}},
		Stroke:   f.Palette.Tooltip,
		Opacity:  1,
		Text:     title,
		FontSize: 11,
		Anchor:   "middle",
	})
	if detail != "" {
		f.add(Drawable{
			ID:       "tooltip/detail",
			Layer:    LayerTooltips,
			Points:   []scene.Point2{{X: h.At.X, Y: h.At.Y - 15}},
			Stroke:   f.Palette.TooltipMuted,
			Opacity:  1,
			Text:     detail,
			FontSize: 10,
			Anchor:   "middle",
		})
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

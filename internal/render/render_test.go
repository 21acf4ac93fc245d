package render

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/scene"
)

func build(t *testing.T, sample string, state scene.ViewportState, hover *Hover) (Frame, *field.Field) {
	t.Helper()
	f, err := field.Sample(sample)
	if err != nil {
		t.Fatal(err)
	}
	return buildField(f, state, hover), f
}

func buildField(f *field.Field, state scene.ViewportState, hover *Hover) Frame {
	s := scene.Aggregate(f.Wells, nil)
	p := scene.NewProjector(s.Bounds, 800, 600)
	return NewBuilder().Build(s, p, state, hover)
}

func selected(well, comp string) scene.ViewportState {
	st := scene.NewViewportState()
	st.SelectedWellID = well
	st.SelectedComponentID = comp
	return st
}

func find(fr Frame, id string) *Drawable {
	for i := range fr.Drawables {
		if fr.Drawables[i].ID == id {
			return &fr.Drawables[i]
		}
	}
	return nil
}

func TestCylinderShader(t *testing.T) {
	st := DefaultPalette().Components[field.Casing]
	strokes := CylinderShader{}.Shade(st, 20)

	if len(strokes) != 3 {
		t.Fatalf("expected 3 strokes, got %d", len(strokes))
	}
	if strokes[0].Width != 20 || strokes[0].Color != st.Shadow {
		t.Errorf("shadow stroke wrong: %+v", strokes[0])
	}
	if strokes[1].Width != 17 || strokes[1].Color != st.Main || !strokes[1].Main {
		t.Errorf("main stroke wrong: %+v", strokes[1])
	}
	h := strokes[2]
	if h.Width != 4 || h.Opacity != 0.5 || h.Offset != (scene.Point2{X: -0.5, Y: -0.5}) {
		t.Errorf("highlight stroke wrong: %+v", h)
	}

	if n := len(FlatShader{}.Shade(st, 20)); n != 1 {
		t.Errorf("flat shader should emit one stroke, got %d", n)
	}
}

func TestBuildLayerOrder(t *testing.T) {
	fr, _ := build(t, "north-sea", selected("11", ""), &Hover{Tag: Tag{WellID: "55", Part: PartPath}})

	last := LayerRuler
	for _, d := range fr.Drawables {
		if d.Layer < last {
			t.Fatalf("%s (%s) drawn after %s layer", d.ID, d.Layer, last)
		}
		last = d.Layer
	}
	if last != LayerTooltips {
		t.Errorf("expected tooltips last, got %s", last)
	}
	if fr.Drawables[0].ID != "ruler/band/11/11-surface" {
		t.Errorf("expected casing bands first, got %s", fr.Drawables[0].ID)
	}
}

func TestBuildOpacityPriority(t *testing.T) {
	fr, _ := build(t, "north-sea", selected("11", ""), nil)

	sel := find(fr, "well/11/path")
	if sel == nil || sel.Opacity != 1 || sel.Width != 2.5 || sel.Gradient == nil || !sel.Glow {
		t.Errorf("selected path not emphasized: %+v", sel)
	}
	idle := find(fr, "well/55/path")
	if idle == nil || idle.Opacity != 0.4 || idle.Width != 1 || idle.Gradient != nil || idle.Glow {
		t.Errorf("idle path not subdued: %+v", idle)
	}
	if c := find(fr, "well/55/comp/55-surface/main"); c == nil || c.Opacity != 0.4 {
		t.Errorf("idle well components should inherit opacity 0.4: %+v", c)
	}
}

func TestBuildSelectedComponent(t *testing.T) {
	fr, _ := build(t, "north-sea", selected("11", "11-intermediate"), nil)

	main := find(fr, "well/11/comp/11-intermediate/main")
	if main == nil {
		t.Fatal("missing selected component")
	}
	if math.Abs(main.Width-24*1.3*0.85) > 1e-9 || !main.Glow {
		t.Errorf("expected boosted glowing main stroke, got width %f glow %v", main.Width, main.Glow)
	}
	if sh := find(fr, "well/11/comp/11-intermediate/shadow"); sh.Glow {
		t.Error("only the main stroke should glow")
	}
	if other := find(fr, "well/11/comp/11-surface/main"); other.Glow || math.Abs(other.Width-24*0.85) > 1e-9 {
		t.Errorf("unselected component changed: %+v", other)
	}
	if tag := main.Tag; tag.WellID != "11" || tag.ComponentID != "11-intermediate" || tag.Part != PartComponent {
		t.Errorf("unexpected tag %+v", tag)
	}

	// A component ID alone does not select without its well.
	fr, _ = build(t, "north-sea", selected("55", "11-intermediate"), nil)
	if find(fr, "well/11/comp/11-intermediate/main").Glow {
		t.Error("component of an unselected well must not glow")
	}
}

func TestRulerBandsAndTicks(t *testing.T) {
	fr, _ := build(t, "north-sea", selected("11", ""), nil)

	for i, id := range []string{"11-surface", "11-intermediate", "11-production"} {
		d := find(fr, "ruler/band/11/"+id)
		if d == nil {
			t.Fatalf("missing band for %s", id)
		}
		want := 0.1 + 0.05*float64(i)
		if d.Gradient == nil || !d.Gradient.Horizontal || math.Abs(d.Gradient.ToOpacity-want) > 1e-12 || d.Gradient.FromOpacity != 0 {
			t.Errorf("%s: expected horizontal fade to %.2f, got %+v", id, want, d.Gradient)
		}
		if d.Width != 40 || d.Tag.Pickable() {
			t.Errorf("%s: unexpected band %+v", id, d)
		}
	}

	fr, _ = build(t, "vertical", scene.NewViewportState(), nil)
	ticks := 0
	for _, d := range fr.Drawables {
		if strings.HasPrefix(d.ID, "ruler/tick/") {
			ticks++
		}
		if strings.HasPrefix(d.ID, "ruler/band/") {
			t.Error("bands drawn without a selected well")
		}
	}
	if ticks != 5 {
		t.Errorf("expected ticks at 0..2000 every 500, got %d", ticks)
	}
	if l := find(fr, "ruler/label/1500"); l == nil || l.Text != "1500" || l.Anchor != "end" {
		t.Errorf("unexpected label %+v", l)
	}
}

func TestBuildClampsAndReports(t *testing.T) {
	f, _ := field.Sample("north-sea")
	w, _ := f.Well("11")
	w.Components = append(w.Components, field.Component{ID: "deep", Kind: field.Perforation, Top: 3400, Bottom: 5000, ShotsPerFoot: 6})

	fr := buildField(f, selected("11", ""), nil)

	if len(fr.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", fr.Warnings)
	}
	wr := fr.Warnings[0]
	if wr.ComponentID != "deep" || wr.Bottom != 5000 || wr.ClampedBottom != 3500 || wr.ClampedTop != 3400 {
		t.Errorf("unexpected warning %+v", wr)
	}
	if find(fr, "well/11/comp/deep/main") == nil {
		t.Error("clamped component should still be drawn")
	}
}

func TestBuildSkipsComponentBelowTD(t *testing.T) {
	f, _ := field.Sample("north-sea")
	w, _ := f.Well("11")
	w.Components = append(w.Components, field.Component{ID: "ghost", Kind: field.Perforation, Top: 9000, Bottom: 9500, ShotsPerFoot: 6})

	fr := buildField(f, selected("11", "ghost"), nil)

	if len(fr.Warnings) != 1 || fr.Warnings[0].ComponentID != "ghost" {
		t.Fatalf("expected a warning for ghost, got %v", fr.Warnings)
	}
	for _, d := range fr.Drawables {
		if d.Tag.ComponentID == "ghost" {
			t.Errorf("component below TD should not be drawn, got %s", d.ID)
		}
	}
}

func TestBuildPacker(t *testing.T) {
	fr, _ := build(t, "vertical", selected("v1", ""), nil)

	main := find(fr, "well/v1/comp/v1-packer/main")
	if main == nil {
		t.Fatal("missing packer")
	}
	if math.Abs(main.Width-22*1.1*0.85) > 1e-9 {
		t.Errorf("expected packer width boost, got %f", main.Width)
	}
	if len(main.Points) != 2 {
		t.Errorf("expected a short two-point segment, got %d points", len(main.Points))
	}
	if len(fr.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", fr.Warnings)
	}
}

func TestBuildTreesAndStructures(t *testing.T) {
	fr, _ := build(t, "cluster", scene.NewViewportState(), nil)

	for _, id := range []string{
		"well/c1/tree/stack/main", "well/c1/tree/wing/main",
		"well/c1/structure/top", "well/c1/structure/bottom", "well/c1/structure/edge/3",
		"well/c2/structure/pipe/0/shadow", "well/c2/structure/pipe/3/highlight",
		"well/c3/structure/skid/main",
	} {
		d := find(fr, id)
		if d == nil {
			t.Errorf("missing %s", id)
			continue
		}
		if d.Tag.WellID == "" {
			t.Errorf("%s is not tagged with its well", id)
		}
	}
	if d := find(fr, "well/c1/structure/top"); d != nil && len(d.Points) != 5 {
		t.Errorf("template ring should close on itself, got %d points", len(d.Points))
	}

	b := NewBuilder()
	b.Style.ShowStructures = false
	f, _ := field.Sample("cluster")
	s := scene.Aggregate(f.Wells, nil)
	fr = b.Build(s, scene.NewProjector(s.Bounds, 800, 600), scene.NewViewportState(), nil)
	for _, d := range fr.Drawables {
		if d.Layer == LayerStructures {
			t.Fatalf("structure %s drawn while disabled", d.ID)
		}
	}
}

func TestTooltip(t *testing.T) {
	hover := &Hover{Tag: Tag{WellID: "55", Part: PartStructure}, At: scene.Point2{X: 10, Y: 20}}
	fr, _ := build(t, "north-sea", scene.NewViewportState(), hover)

	title, detail := find(fr, "tooltip/title"), find(fr, "tooltip/detail")
	if title == nil || title.Text != "Template" {
		t.Errorf("unexpected title %+v", title)
	}
	if detail == nil || detail.Text != "Assoc. with Satellite_55" {
		t.Errorf("unexpected detail %+v", detail)
	}

	hover = &Hover{Tag: Tag{WellID: "11", ComponentID: "11-production", Part: PartComponent}}
	fr, _ = build(t, "north-sea", scene.NewViewportState(), hover)
	if title := find(fr, "tooltip/title"); title == nil || !strings.Contains(title.Text, "Production") {
		t.Errorf("unexpected component tooltip %+v", title)
	}
}

func TestGraphApply(t *testing.T) {
	f, _ := field.Sample("north-sea")
	s := scene.Aggregate(f.Wells, nil)
	p := scene.NewProjector(s.Bounds, 800, 600)
	b := NewBuilder()
	g := NewGraph()

	first := b.Build(s, p, selected("11", ""), nil)
	diff := g.Apply(first)
	if len(diff.Added) != len(first.Drawables) || len(diff.Updated) != 0 || len(diff.Removed) != 0 {
		t.Fatalf("unexpected initial diff %d/%d/%d", len(diff.Added), len(diff.Updated), len(diff.Removed))
	}
	n, _ := g.Node("well/55/path")
	handle := n.Handle

	if d := g.Apply(b.Build(s, p, selected("11", ""), nil)); !d.Empty() {
		t.Errorf("identical frame should not change the graph: %+v", d)
	}

	diff = g.Apply(b.Build(s, p, selected("55", ""), nil))
	if !contains(diff.Updated, "well/55/path") || !contains(diff.Updated, "well/11/path") {
		t.Errorf("selection change should update both paths: %v", diff.Updated)
	}
	if !contains(diff.Removed, "ruler/band/11/11-surface") || !contains(diff.Added, "ruler/band/55/55-surface") {
		t.Errorf("bands should follow the selection: +%v -%v", diff.Added, diff.Removed)
	}
	if n, _ := g.Node("well/55/path"); n.Handle != handle {
		t.Error("updated drawable should keep its handle")
	}
	if g.Len() != len(g.Drawables()) {
		t.Error("draw order and node set disagree")
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestSVG(t *testing.T) {
	fr, _ := build(t, "north-sea", selected("11", "11-surface"), nil)
	doc := SVG(fr.Drawables, SVGOptions{Width: 800, Height: 600})

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600"`,
		`data-id="well/11/path"`,
		`data-component="11-surface"`,
		`filter="url(#glow)"`,
		`<linearGradient id="grad-0"`,
		`>500</text>`,
		`translate(400,300) scale(1)`,
		`class="ruler-layer"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Count(doc, "<g") != strings.Count(doc, "</g>") {
		t.Error("unbalanced groups")
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(10, 5)
	d := []Drawable{
		{ID: "line", Points: []scene.Point2{{X: 0, Y: 0}, {X: 19, Y: 19}}, Stroke: DefaultPalette().PathIdle, Width: 1, Opacity: 1},
		{ID: "label", Points: []scene.Point2{{X: 19, Y: 19}}, Stroke: DefaultPalette().RulerLabel, Opacity: 1, Text: "42", Anchor: "end"},
	}
	c.Draw(d, scene.ZoomTransform{K: 1})

	if c.Grid[0][0] == brailleBlank {
		t.Error("expected dots at the line start")
	}
	if got := string(c.Grid[4][7:9]); got != "42" {
		t.Errorf("expected label in the last row, got %q", got)
	}
	if !strings.Contains(c.String(), "42") {
		t.Error("label missing from text output")
	}
	if c.Render() == "" {
		t.Error("empty styled output")
	}

	c.Clear()
	if strings.Trim(c.String(), string(rune(brailleBlank))+"\n") != "" {
		t.Error("clear should blank every cell")
	}
}

func TestThemes(t *testing.T) {
	th, err := GetTheme("retro")
	if err != nil {
		t.Fatal(err)
	}
	p := DefaultPalette()
	casing := p.Components[field.Casing]
	th.Apply(&p)

	if got := p.Background.Hex(); got != "#001100" {
		t.Errorf("expected retro background, got %s", got)
	}
	if p.Components[field.Casing] != casing {
		t.Error("themes must not recolor components")
	}

	if th, _ := GetTheme(""); th.Name != "default" {
		t.Errorf("expected default theme for empty name, got %s", th.Name)
	}
	if _, err := GetTheme("neon"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestPaletteColors(t *testing.T) {
	if got := DefaultPalette().PathFrom.Hex(); got != "#2563eb" {
		t.Errorf("expected default path color #2563eb, got %s", got)
	}
	for _, th := range Themes {
		p := DefaultPalette()
		th.Apply(&p)
		if got := p.Background.Hex(); got != th.Background {
			t.Errorf("%s: expected background %s, got %s", th.Name, th.Background, got)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for malformed color")
		}
	}()
	mustHex("#zzz")
}

package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/pick"
	"github.com/san-kum/wellview/internal/scene"
	"github.com/san-kum/wellview/internal/survey"
)

func newTestModel(t *testing.T, sample string) (*Model, *[]pick.Event) {
	t.Helper()
	f, err := field.Sample(sample)
	if err != nil {
		t.Fatal(err)
	}
	var events []pick.Event
	m, err := New(f, Options{
		Orbit:    scene.DefaultOrbitConfig(),
		OnSelect: func(e pick.Event) { events = append(events, e) },
	})
	if err != nil {
		t.Fatal(err)
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, &events
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: action}
}

// cellAt returns the terminal cell showing measured depth md of well id.
func cellAt(t *testing.T, m *Model, id string, md float64) (int, int) {
	t.Helper()
	w, ok := m.scene.Well(id)
	if !ok {
		t.Fatalf("no well %s", id)
	}
	pt, _ := survey.PointAt(w.Path, md)
	s := m.vp.Zoom.Apply(m.vp.Projector(m.scene).Project(m.vp.State.Rotation, pt.Vec()))
	return int(s.X) / 2, int(s.Y)/4 + headerRows
}

func TestClickTogglesComponent(t *testing.T) {
	m, events := newTestModel(t, "vertical")
	x, y := cellAt(t, m, "v1", 1850)

	m.Update(mouse(x, y, tea.MouseActionPress))
	_, cmd := m.Update(mouse(x, y, tea.MouseActionRelease))
	if cmd != nil {
		t.Error("a click should not start coasting")
	}
	if got := m.Selection(); got != (pick.Event{WellID: "v1", ComponentID: "v1-perfs"}) {
		t.Fatalf("expected perforation selected, got %+v", got)
	}

	m.Update(mouse(x, y, tea.MouseActionPress))
	m.Update(mouse(x, y, tea.MouseActionRelease))
	if got := m.Selection(); got.ComponentID != "" || got.WellID != "v1" {
		t.Errorf("expected component toggled off, got %+v", got)
	}

	if len(*events) != 2 {
		t.Errorf("expected 2 selection events, got %d", len(*events))
	}
}

func TestClickOutsideCanvasClears(t *testing.T) {
	m, _ := newTestModel(t, "vertical")
	m.sel.Select("v1", "v1-perfs")

	// The panel sits right of the canvas.
	m.Update(mouse(m.canvas.Width+5, 5, tea.MouseActionPress))
	m.Update(mouse(m.canvas.Width+5, 5, tea.MouseActionRelease))
	if got := m.Selection(); got.ComponentID != "v1-perfs" {
		t.Errorf("press outside the canvas should be ignored, got %+v", got)
	}

	m.Update(mouse(0, headerRows, tea.MouseActionPress))
	m.Update(mouse(0, headerRows, tea.MouseActionRelease))
	if got := m.Selection(); got.ComponentID != "" {
		t.Errorf("expected empty click to clear component, got %+v", got)
	}
}

func TestDragCoasts(t *testing.T) {
	m, _ := newTestModel(t, "vertical")
	start := m.vp.State.Rotation

	m.Update(mouse(10, 10, tea.MouseActionPress))
	m.Update(mouse(15, 10, tea.MouseActionMotion))
	_, cmd := m.Update(mouse(15, 10, tea.MouseActionRelease))

	if got := m.vp.State.Rotation.Yaw - start.Yaw; math.Abs(got-0.1) > 1e-12 {
		t.Errorf("expected yaw change 0.1, got %f", got)
	}
	if cmd == nil || !m.vp.Orbit.Coasting() {
		t.Fatal("expected release after a drag to start coasting")
	}
	if m.Selection().WellID != "" {
		t.Error("a drag must not select")
	}

	gen := m.vp.Orbit.Generation()
	before := m.vp.State.Rotation.Yaw
	_, cmd = m.Update(coastMsg{gen: gen})
	if cmd == nil {
		t.Error("expected another coast tick")
	}
	if m.vp.State.Rotation.Yaw <= before {
		t.Error("coast tick should advance the rotation")
	}

	m.Update(key("r"))
	if m.vp.State.Rotation != scene.DefaultRotation {
		t.Errorf("expected default rotation after reset, got %+v", m.vp.State.Rotation)
	}
	before = m.vp.State.Rotation.Yaw
	_, cmd = m.Update(coastMsg{gen: gen})
	if cmd != nil || m.vp.State.Rotation.Yaw != before {
		t.Error("stale coast tick must be dropped")
	}
}

func TestKeys(t *testing.T) {
	m, _ := newTestModel(t, "cluster")

	m.Update(key("tab"))
	m.Update(key("tab"))
	if got := m.Selection().WellID; got != "c2" {
		t.Errorf("expected c2, got %s", got)
	}
	m.Update(key("shift+tab"))
	if got := m.Selection().WellID; got != "c1" {
		t.Errorf("expected c1, got %s", got)
	}
	m.Update(key("esc"))
	if got := m.Selection().WellID; got != "" {
		t.Errorf("expected cleared selection, got %s", got)
	}

	m.Update(key("+"))
	if m.vp.Zoom.K != zoomStep {
		t.Errorf("expected zoom %f, got %f", zoomStep, m.vp.Zoom.K)
	}
	if _, ok := m.graph.Node("well/c1/structure/top"); !ok {
		t.Fatal("expected template drawn before toggling structures")
	}
	m.Update(key("s"))
	if _, ok := m.graph.Node("well/c1/structure/top"); ok {
		t.Error("expected structures hidden")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestReloadKeepsCacheAndDropsMissingComponent(t *testing.T) {
	m, _ := newTestModel(t, "vertical")
	m.sel.Select("v1", "v1-perfs")
	misses := m.cache.Misses()

	next, _ := field.Sample("vertical")
	next.Wells[0].Components = next.Wells[0].Components[:2]
	m.Update(fieldMsg{field: next})

	if m.cache.Misses() != misses {
		t.Errorf("unchanged survey should not be recomputed, misses %d -> %d", misses, m.cache.Misses())
	}
	if got := m.Selection(); got != (pick.Event{WellID: "v1"}) {
		t.Errorf("expected component cleared on reload, got %+v", got)
	}
	if !strings.Contains(m.status, "reloaded") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, "vertical")
	m.sel.Select("v1", "v1-perfs")
	m.redraw()

	out := m.View()
	for _, want := range []string{"VERTICAL", "Vertical_1", "total MD", "depth vs MD"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/wellview/internal/pick"
	"github.com/san-kum/wellview/internal/render"
	"github.com/san-kum/wellview/internal/scene"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "r":
		m.vp.Reset()
	case "esc":
		m.sel.Reset()
	case "tab":
		m.nextWell(1)
	case "shift+tab":
		m.nextWell(-1)
	case "s":
		m.builder.Style.ShowStructures = !m.builder.Style.ShowStructures
	case "t":
		m.builder.Style.ShowTrees = !m.builder.Style.ShowTrees
	case "g":
		m.builder.Style.ShowRuler = !m.builder.Style.ShowRuler
	case "+", "=":
		m.zoom(zoomStep)
	case "-", "_":
		m.zoom(1 / zoomStep)
	case "left":
		return m.flick(-nudgeStep, 0)
	case "right":
		return m.flick(nudgeStep, 0)
	case "up":
		return m.flick(0, -nudgeStep)
	case "down":
		return m.flick(0, nudgeStep)
	default:
		return nil
	}
	m.redraw()
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	at, inside := m.toDots(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if inside {
			m.vp.Zoom = m.vp.Zoom.ScaleBy(zoomStep, at)
			m.redraw()
		}
		return nil
	case msg.Button == tea.MouseButtonWheelDown:
		if inside {
			m.vp.Zoom = m.vp.Zoom.ScaleBy(1/zoomStep, at)
			m.redraw()
		}
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return nil
		}
		m.pressed, m.dragged = true, false
		m.lastX, m.lastY = msg.X, msg.Y
		m.vp.Orbit.BeginDrag()
		return nil

	case tea.MouseActionMotion:
		if !m.pressed {
			m.hoverAt(at, inside)
			return nil
		}
		dx, dy := msg.X-m.lastX, msg.Y-m.lastY
		if dx == 0 && dy == 0 {
			return nil
		}
		m.lastX, m.lastY = msg.X, msg.Y
		m.dragged = true
		m.hover = nil
		m.vp.Orbit.Drag(float64(dx*2), float64(dy*4))
		m.redraw()
		return nil

	case tea.MouseActionRelease:
		if !m.pressed {
			return nil
		}
		m.pressed = false
		coasting := m.vp.Orbit.EndDrag()
		if !m.dragged {
			m.click(at, inside)
			return nil
		}
		if coasting {
			return m.coast()
		}
	}
	return nil
}

// click resolves a pointer click. Anything outside the canvas counts as
// empty space.
func (m *Model) click(at scene.Point2, inside bool) {
	var hit *pick.Hit
	if inside {
		if h, ok := m.picker.HitGraph(m.graph, m.vp.Zoom, at); ok {
			hit = &h
		}
	}
	m.sel.Click(hit)
	m.redraw()
}

func (m *Model) hoverAt(at scene.Point2, inside bool) {
	var next *render.Hover
	if inside {
		if h, ok := m.picker.HitGraph(m.graph, m.vp.Zoom, at); ok {
			next = &render.Hover{Tag: h.Tag, At: m.vp.Zoom.Invert(at)}
		}
	}
	if sameHover(m.hover, next) {
		return
	}
	m.hover = next
	m.redraw()
}

func sameHover(a, b *render.Hover) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Tag == b.Tag
}

// flick spins the scene as if dragged by (dx, dy) dots and released.
func (m *Model) flick(dx, dy float64) tea.Cmd {
	m.vp.Orbit.BeginDrag()
	m.vp.Orbit.Drag(dx, dy)
	coasting := m.vp.Orbit.EndDrag()
	m.redraw()
	if coasting {
		return m.coast()
	}
	return nil
}

func (m *Model) zoom(f float64) {
	dx, dy := m.canvas.Dots()
	m.vp.Zoom = m.vp.Zoom.ScaleBy(f, scene.Point2{X: float64(dx) / 2, Y: float64(dy) / 2})
}

func (m *Model) nextWell(step int) {
	wells := m.field.Wells
	if len(wells) == 0 {
		return
	}
	i := -1
	cur := m.sel.Current().WellID
	for j, w := range wells {
		if w.ID == cur {
			i = j
		}
	}
	if i < 0 && step < 0 {
		i = 0
	}
	n := len(wells)
	m.sel.Select(wells[((i+step)%n+n)%n].ID, "")
}

// toDots maps a terminal cell to the dot at its center.
func (m *Model) toDots(x, y int) (scene.Point2, bool) {
	cy := y - headerRows
	inside := x >= 0 && cy >= 0 && x < m.canvas.Width && cy < m.canvas.Height
	return scene.Point2{X: float64(x*2) + 1, Y: float64(cy*4) + 2}, inside
}

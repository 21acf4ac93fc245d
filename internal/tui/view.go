package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/survey"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff"))
	panelStyle  = lipgloss.NewStyle().
			Width(panelWidth-2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(10)
)

const profileSamples = 28

func (m *Model) View() string {
	var b strings.Builder

	name := m.field.Name
	if name == "" {
		name = "field"
	}
	b.WriteString(headerStyle.Render(strings.ToUpper(name)) + "  " + m.statusLine() + "\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), " ", m.panel()))
	b.WriteString("\n" + dim.Render("drag orbit  click select  wheel/± zoom  tab well  esc clear  r reset  s/t/g layers  q quit"))
	return b.String()
}

func (m *Model) statusLine() string {
	switch {
	case m.status != "":
		return yellow.Render(m.status)
	case m.vp.Orbit.Dragging():
		return cyan.Render("orbiting")
	case m.vp.Orbit.Coasting():
		return cyan.Render("coasting")
	}
	return dim.Render(fmt.Sprintf("%d wells", len(m.field.Wells)))
}

func (m *Model) panel() string {
	var b strings.Builder
	rot := m.vp.State.Rotation
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}

	row("pitch", white.Render(fmt.Sprintf("%.1f°", rot.Pitch*180/math.Pi)))
	row("yaw", white.Render(fmt.Sprintf("%.1f°", math.Mod(rot.Yaw*180/math.Pi, 360))))
	row("zoom", white.Render(fmt.Sprintf("%.2fx", m.vp.Zoom.K)))
	if n := len(m.graph.Warnings()); n > 0 {
		row("warnings", yellow.Render(fmt.Sprintf("%d clamped", n)))
	}
	b.WriteString("\n")

	cur := m.sel.Current()
	w, ok := m.field.Well(cur.WellID)
	if !ok {
		b.WriteString(dim.Render("no well selected"))
		return panelStyle.Render(b.String())
	}

	b.WriteString(green.Render(w.Name) + dim.Render(" "+string(w.Kind)) + "\n")
	if w.Structure != field.NoStructure {
		row("structure", white.Render(w.Structure.Title()))
	}
	path := m.cache.Path(w)
	if sum, ok := survey.Summarize(path); ok {
		row("total MD", white.Render(fmt.Sprintf("%.0f m", sum.TotalMD)))
		row("final TVD", white.Render(fmt.Sprintf("%.0f m", sum.FinalTVD)))
		row("offset", white.Render(fmt.Sprintf("%.0f m", sum.Displacement)))
	}

	if c, ok := w.Component(cur.ComponentID); ok {
		b.WriteString("\n" + magenta.Render(c.Label()) + "\n")
		top, bottom := c.Interval()
		row("interval", white.Render(fmt.Sprintf("%.0f-%.0f", top, bottom)))
	}

	if plot := profile(path); plot != "" {
		b.WriteString("\n" + cyan.Render(plot))
	}
	return panelStyle.Render(b.String())
}

// profile plots depth against measured depth. Depth is negated so the
// curve runs downward.
func profile(path []survey.Point) string {
	top, bottom := survey.Span(path)
	if bottom <= top {
		return ""
	}
	data := make([]float64, profileSamples)
	for i := range data {
		md := top + (bottom-top)*float64(i)/float64(profileSamples-1)
		p, _ := survey.PointAt(path, md)
		data[i] = -p.TVD
	}
	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(profileSamples-8),
		asciigraph.Caption("depth vs MD"),
	)
}

package tui

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/pick"
	"github.com/san-kum/wellview/internal/render"
	"github.com/san-kum/wellview/internal/scene"
)

const (
	panelWidth = 36
	headerRows = 2
	footerRows = 1

	// Braille cells are coarse, so clicks get more slack than in SVG.
	cellTolerance = 4.0

	zoomStep  = 1.25
	nudgeStep = 12.0
)

var frameInterval = time.Second / 60

type Options struct {
	// Path is the field file. With Watch set it is reloaded on change.
	Path     string
	Watch    bool
	Builder  *render.Builder
	Orbit    scene.OrbitConfig
	Logger   *slog.Logger
	OnSelect func(pick.Event)
}

// Model is the interactive viewport. Mouse drags orbit the scene, clicks
// pick wells and components and the wheel zooms.
type Model struct {
	field   *field.Field
	cache   *scene.PathCache
	builder *render.Builder
	vp      *scene.Viewport
	graph   *render.Graph
	sel     *pick.Selection
	picker  pick.Picker
	canvas  *render.Canvas
	scene   *scene.Scene
	hover   *render.Hover
	log     *slog.Logger

	path    string
	watcher *fsnotify.Watcher

	pressed  bool
	dragged  bool
	lastX    int
	lastY    int
	last     pick.Event
	status   string
	width    int
	height   int
	onSelect func(pick.Event)
}

type coastMsg struct{ gen uint64 }

func New(f *field.Field, opt Options) (*Model, error) {
	if opt.Builder == nil {
		opt.Builder = render.NewBuilder()
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Model{
		field:    f,
		cache:    scene.NewPathCache(),
		builder:  opt.Builder,
		vp:       scene.NewViewport(160, 96, opt.Orbit),
		graph:    render.NewGraph(),
		picker:   pick.Picker{Tolerance: cellTolerance},
		log:      opt.Logger,
		path:     opt.Path,
		onSelect: opt.OnSelect,
	}
	m.sel = pick.NewSelection(&m.vp.State, m.selected, m.vp.Orbit)

	if opt.Watch && opt.Path != "" {
		w, err := watchField(opt.Path)
		if err != nil {
			return nil, err
		}
		m.watcher = w
	}

	m.resize(80+panelWidth, 24+headerRows+footerRows)
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChange(m.watcher, m.path)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case coastMsg:
		if msg.gen != m.vp.Orbit.Generation() {
			return m, nil
		}
		moving := m.vp.Orbit.Step()
		m.redraw()
		if moving {
			return m, m.coast()
		}
		return m, nil
	case fieldMsg:
		m.reload(msg.field)
		return m, waitForChange(m.watcher, m.path)
	case watchErrMsg:
		m.status = "reload failed: " + msg.err.Error()
		m.log.Warn("reload failed", "path", m.path, "err", msg.err)
		return m, waitForChange(m.watcher, m.path)
	}
	return m, nil
}

// Selection returns the current well and component.
func (m *Model) Selection() pick.Event { return m.sel.Current() }

// Close stops the file watcher.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

func (m *Model) selected(ev pick.Event) {
	m.last = ev
	m.log.Debug("selection", "well", ev.WellID, "component", ev.ComponentID)
	if m.onSelect != nil {
		m.onSelect(ev)
	}
}

// coast schedules one refresh tagged with the current orbit generation.
func (m *Model) coast() tea.Cmd {
	gen := m.vp.Orbit.Generation()
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return coastMsg{gen: gen} })
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := max(w-panelWidth-1, 10)
	rows := max(h-headerRows-footerRows, 4)
	m.canvas = render.NewCanvas(cols, rows)
	m.canvas.Background = m.builder.Palette.Background
	m.canvas.Clear()
	dx, dy := m.canvas.Dots()
	m.vp.Resize(float64(dx), float64(dy))
	m.redraw()
}

func (m *Model) redraw() {
	m.scene = scene.Aggregate(m.field.Wells, m.cache)
	fr := m.builder.Build(m.scene, m.vp.Projector(m.scene), m.vp.State, m.hover)
	diff := m.graph.Apply(fr)
	if !diff.Empty() {
		m.log.Debug("frame", "added", len(diff.Added), "updated", len(diff.Updated), "removed", len(diff.Removed))
	}
	for _, w := range fr.Warnings {
		m.log.Debug("component outside survey", "well", w.WellID, "component", w.ComponentID)
	}
	m.canvas.Clear()
	m.canvas.Draw(m.graph.Drawables(), m.vp.Zoom)
}

// reload swaps in a changed field file, dropping a selection whose well
// no longer exists.
func (m *Model) reload(f *field.Field) {
	m.field.Replace(f)
	cur := m.sel.Current()
	w, ok := m.field.Well(cur.WellID)
	switch {
	case cur.WellID != "" && !ok:
		m.sel.Reset()
	case ok && cur.ComponentID != "":
		if _, found := w.Component(cur.ComponentID); !found {
			m.sel.Select(cur.WellID, "")
		}
	}
	m.hover = nil
	m.status = "reloaded " + m.path
	m.log.Info("field reloaded", "path", m.path, "wells", len(m.field.Wells))
	m.redraw()
}

// Run starts the viewer full screen with mouse tracking.
func Run(m *Model) error {
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

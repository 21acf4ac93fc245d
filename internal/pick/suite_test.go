package pick_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/pick"
	"github.com/san-kum/wellview/internal/render"
	"github.com/san-kum/wellview/internal/scene"
	"github.com/san-kum/wellview/internal/survey"
)

func TestPickSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pick Suite")
}

var _ = Describe("Clicking in the viewport", func() {
	var (
		f      *field.Field
		sc     *scene.Scene
		vp     *scene.Viewport
		graph  *render.Graph
		sel    *pick.Selection
		events []pick.Event
	)

	redraw := func() {
		p := vp.Projector(sc)
		graph.Apply(render.NewBuilder().Build(sc, p, vp.State, nil))
	}

	// screenAt returns the screen position of measured depth md on well id.
	screenAt := func(id string, md float64) scene.Point2 {
		w, ok := sc.Well(id)
		Expect(ok).To(BeTrue())
		pt, _ := survey.PointAt(w.Path, md)
		return vp.Zoom.Apply(vp.Projector(sc).Project(vp.State.Rotation, pt.Vec()))
	}

	click := func(at scene.Point2) pick.Event {
		hit, ok := pick.NewPicker().HitGraph(graph, vp.Zoom, at)
		var ev pick.Event
		if ok {
			ev = sel.Click(&hit)
		} else {
			ev = sel.Click(nil)
		}
		redraw()
		return ev
	}

	BeforeEach(func() {
		var err error
		f, err = field.Sample("vertical")
		Expect(err).NotTo(HaveOccurred())
		sc = scene.Aggregate(f.Wells, nil)
		vp = scene.NewViewport(800, 600, scene.DefaultOrbitConfig())
		graph = render.NewGraph()
		events = nil
		sel = pick.NewSelection(&vp.State, func(e pick.Event) { events = append(events, e) }, vp.Orbit)
		redraw()
	})

	It("toggles a component and clears on empty canvas", func() {
		perfs := screenAt("v1", 1850)

		Expect(click(perfs)).To(Equal(pick.Event{WellID: "v1", ComponentID: "v1-perfs"}))
		n, ok := graph.Node("well/v1/comp/v1-perfs/main")
		Expect(ok).To(BeTrue())
		Expect(n.Drawable.Glow).To(BeTrue())

		Expect(click(perfs).ComponentID).To(BeEmpty())

		Expect(click(perfs).ComponentID).To(Equal("v1-perfs"))
		Expect(click(scene.Point2{X: -5000, Y: -5000}).ComponentID).To(BeEmpty())

		Expect(events).To(HaveLen(4))
	})

	It("moves the well focus with the component", func() {
		sel.Select("other", "")
		redraw()

		ev := click(screenAt("v1", 1850))
		Expect(ev.WellID).To(Equal("v1"))
		n, _ := graph.Node("well/v1/path")
		Expect(n.Drawable.Opacity).To(Equal(1.0))
	})

	It("selects the well from its tree", func() {
		top := vp.Zoom.Apply(vp.Projector(sc).Project(vp.State.Rotation, sc.Wells[0].Surface))

		ev := click(top)
		Expect(ev).To(Equal(pick.Event{WellID: "v1"}))
	})

	It("never picks a component that lies below TD", func() {
		w, ok := f.Well("v1")
		Expect(ok).To(BeTrue())
		w.Components = append(w.Components, field.Component{ID: "ghost", Kind: field.Perforation, Top: 9000, Bottom: 9500, ShotsPerFoot: 6})
		sc = scene.Aggregate(f.Wells, nil)
		redraw()

		_, drawn := graph.Node("well/v1/comp/ghost/main")
		Expect(drawn).To(BeFalse())
		Expect(graph.Warnings()).To(HaveLen(1))

		_, td := survey.Span(sc.Wells[0].Path)
		Expect(click(screenAt("v1", td)).ComponentID).NotTo(Equal("ghost"))
	})

	It("stops coasting when the selection is reset", func() {
		vp.Orbit.BeginDrag()
		vp.Orbit.Drag(25, 0)
		Expect(vp.Orbit.EndDrag()).To(BeTrue())

		sel.Reset()
		Expect(vp.Orbit.Coasting()).To(BeFalse())
		Expect(vp.State.SelectedWellID).To(BeEmpty())
	})
})

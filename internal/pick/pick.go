// Package pick resolves pointer clicks on a rendered frame to wells and
// components and applies the toggle selection rules.
package pick

import (
	"math"

	"github.com/san-kum/wellview/internal/render"
	"github.com/san-kum/wellview/internal/scene"
)

// DefaultTolerance is the slack in screen units added around every stroke.
const DefaultTolerance = 3.0

// Hit is the drawable found under the pointer.
type Hit struct {
	DrawableID string
	Tag        render.Tag
}

// Picker hit-tests drawables against a screen point.
type Picker struct {
	Tolerance float64
}

func NewPicker() Picker { return Picker{Tolerance: DefaultTolerance} }

// HitTest returns the topmost pickable drawable whose stroke covers the
// screen point. Drawables are searched in reverse draw order.
func (p Picker) HitTest(drawables []render.Drawable, zoom scene.ZoomTransform, screen scene.Point2) (Hit, bool) {
	k := zoom.K
	if k <= 0 {
		k = 1
	}
	at := zoom.Invert(screen)
	slack := p.Tolerance / k

	for i := len(drawables) - 1; i >= 0; i-- {
		d := &drawables[i]
		if !d.Tag.Pickable() || d.IsText() || len(d.Points) == 0 {
			continue
		}
		q := scene.Point2{X: at.X - d.Offset.X, Y: at.Y - d.Offset.Y}
		if distance(d.Points, q) <= d.Width/2+slack {
			return Hit{DrawableID: d.ID, Tag: d.Tag}, true
		}
	}
	return Hit{}, false
}

// HitGraph hit-tests the retained drawables of g.
func (p Picker) HitGraph(g *render.Graph, zoom scene.ZoomTransform, screen scene.Point2) (Hit, bool) {
	return p.HitTest(g.Drawables(), zoom, screen)
}

// distance from q to the polyline pts.
func distance(pts []scene.Point2, q scene.Point2) float64 {
	if len(pts) == 1 {
		return math.Hypot(q.X-pts[0].X, q.Y-pts[0].Y)
	}
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		best = math.Min(best, segmentDistance(pts[i-1], pts[i], q))
	}
	return best
}

func segmentDistance(a, b, q scene.Point2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(q.X-a.X, q.Y-a.Y)
	}
	t := ((q.X-a.X)*dx + (q.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(q.X-(a.X+t*dx), q.Y-(a.Y+t*dy))
}

package scene

import "math"

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// ViewportState is everything one viewport owns between frames. Rotation
// and Velocity are written only by an Orbit, the selection only by a
// picker.
type ViewportState struct {
	Rotation            Rotation
	Velocity            Rotation
	SelectedWellID      string
	SelectedComponentID string
}

// NewViewportState starts at the default rotation with nothing selected.
func NewViewportState() ViewportState {
	return ViewportState{Rotation: DefaultRotation}
}

// ZoomTransform is the affine scale and translation applied after
// projection. It never touches rotation.
type ZoomTransform struct {
	K  float64 `json:"k"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
}

// CenteredZoom is the identity zoom translated to the viewport center.
func CenteredZoom(width, height float64) ZoomTransform {
	return ZoomTransform{K: 1, TX: width / 2, TY: height / 2}
}

// Apply maps a projected point to screen space.
func (z ZoomTransform) Apply(p Point2) Point2 {
	return Point2{X: p.X*z.K + z.TX, Y: p.Y*z.K + z.TY}
}

// Invert maps a screen point back to the projection plane.
func (z ZoomTransform) Invert(p Point2) Point2 {
	k := z.K
	if k == 0 {
		k = 1
	}
	return Point2{X: (p.X - z.TX) / k, Y: (p.Y - z.TY) / k}
}

// ScaleBy multiplies the zoom by f around the screen point at, clamped to
// [MinZoom, MaxZoom].
func (z ZoomTransform) ScaleBy(f float64, at Point2) ZoomTransform {
	k := math.Max(MinZoom, math.Min(MaxZoom, z.K*f))
	anchor := z.Invert(at)
	return ZoomTransform{K: k, TX: at.X - anchor.X*k, TY: at.Y - anchor.Y*k}
}

// Pan translates by (dx, dy) screen units.
func (z ZoomTransform) Pan(dx, dy float64) ZoomTransform {
	z.TX += dx
	z.TY += dy
	return z
}

// Viewport bundles the state, orbit and zoom of one independent view.
type Viewport struct {
	Width, Height float64
	State         ViewportState
	Orbit         *Orbit
	Zoom          ZoomTransform
}

func NewViewport(width, height float64, cfg OrbitConfig) *Viewport {
	v := &Viewport{
		Width:  width,
		Height: height,
		State:  NewViewportState(),
		Zoom:   CenteredZoom(width, height),
	}
	v.Orbit = NewOrbit(&v.State, cfg)
	return v
}

// Resize keeps the zoom level but recenters the translation.
func (v *Viewport) Resize(width, height float64) {
	v.Width, v.Height = width, height
	k := v.Zoom.K
	v.Zoom = CenteredZoom(width, height)
	v.Zoom.K = k
}

// Reset restores rotation and zoom and cancels coasting. The selection is
// left alone.
func (v *Viewport) Reset() {
	v.Orbit.Reset()
	v.Zoom = CenteredZoom(v.Width, v.Height)
}

// ClearSelection drops the selection and cancels coasting.
func (v *Viewport) ClearSelection() {
	v.State.SelectedWellID = ""
	v.State.SelectedComponentID = ""
	v.Orbit.Stop()
}

// Projector fits s into the viewport.
func (v *Viewport) Projector(s *Scene) Projector {
	return NewProjector(s.Bounds, v.Width, v.Height)
}

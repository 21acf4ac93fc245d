package scene

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// MinimumDimension keeps small fields from being blown up to fill the
	// viewport.
	MinimumDimension = 2000.0
	// FillFactor is the share of the shorter viewport side the field spans.
	FillFactor = 0.8
)

// Rotation is the camera orientation in radians. Pitch turns about the
// easting axis, yaw about the vertical screen axis.
type Rotation struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// DefaultRotation looks down on the field from the south-west.
var DefaultRotation = Rotation{Pitch: -math.Pi / 4, Yaw: math.Pi / 4}

// Point2 is a position on the projection plane.
type Point2 struct {
	X, Y float64
}

// Projector maps field coordinates to the plane. It is a value computed
// once from the field bounds and the viewport size; rotation is supplied
// per call so the same projector serves any number of viewports.
type Projector struct {
	Bounds Bounds
	Scale  float64
	center r3.Vec
}

// NewProjector fits bounds into a width x height viewport with the default
// minimum dimension and fill factor.
func NewProjector(b Bounds, width, height float64) Projector {
	return NewProjectorWith(b, width, height, MinimumDimension, FillFactor)
}

// NewProjectorWith is NewProjector with explicit sizing constants.
func NewProjectorWith(b Bounds, width, height, minDim, fill float64) Projector {
	size := b.Size()
	maxDim := floats.Max([]float64{size.X, size.Y, size.Z, minDim, MinNominalExtent})
	return Projector{
		Bounds: b,
		Scale:  math.Min(width, height) / maxDim * fill,
		center: b.Center(),
	}
}

// Projection is a projector fixed at one rotation.
type Projection struct {
	m      *r3.Mat
	center r3.Vec
	scale  float64
}

// At fixes the projector at rot.
func (p Projector) At(rot Rotation) Projection {
	sp, cp := math.Sincos(rot.Pitch)
	sy, cy := math.Sincos(rot.Yaw)
	rx := r3.NewMat([]float64{
		1, 0, 0,
		0, cp, -sp,
		0, sp, cp,
	})
	ry := r3.NewMat([]float64{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	})
	m := r3.NewMat(make([]float64, 9))
	m.Mul(ry, rx)
	return Projection{m: m, center: p.center, scale: p.Scale}
}

// Project maps v at rotation rot.
func (p Projector) Project(rot Rotation, v r3.Vec) Point2 {
	return p.At(rot).Project(v)
}

// Project recenters v on the bounds midpoint, rotates it and drops depth.
func (pr Projection) Project(v r3.Vec) Point2 {
	r := pr.m.MulVec(r3.Sub(v, pr.center))
	return Point2{X: r.X * pr.scale, Y: r.Y * pr.scale}
}

// Depth returns the rotated depth of v, larger is nearer the viewer.
func (pr Projection) Depth(v r3.Vec) float64 {
	return -pr.m.MulVec(r3.Sub(v, pr.center)).Z
}

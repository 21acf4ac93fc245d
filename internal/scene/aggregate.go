package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/survey"
)

// MinNominalExtent replaces any axis range that collapses to zero.
const MinNominalExtent = 1.0

// Bounds is an axis-aligned box in field coordinates (easting, northing,
// tvd). Every axis is at least MinNominalExtent wide.
type Bounds struct {
	Min, Max r3.Vec
}

// Size returns the extent along each axis.
func (b Bounds) Size() r3.Vec { return r3.Sub(b.Max, b.Min) }

// Center returns the midpoint of the box.
func (b Bounds) Center() r3.Vec { return r3.Scale(0.5, r3.Add(b.Min, b.Max)) }

// WellPath is a well's path translated into field coordinates.
type WellPath struct {
	Well    *field.Well
	Path    []survey.Point
	Surface r3.Vec
}

// Scene is the combined, translated geometry of every well in a field.
type Scene struct {
	Wells  []WellPath
	Bounds Bounds
	index  map[string]int
}

// Well returns the translated path of the well with the given ID.
func (s *Scene) Well(id string) (*WellPath, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.Wells[i], true
}

// Aggregate translates each well's path by its surface location and
// computes the field bounds over every vertex and surface point. Paths are
// fetched through cache when it is non-nil.
func Aggregate(wells []*field.Well, cache *PathCache) *Scene {
	s := &Scene{
		Wells: make([]WellPath, 0, len(wells)),
		index: make(map[string]int, len(wells)),
	}
	acc := newExtent()
	for _, w := range wells {
		var local []survey.Point
		if cache != nil {
			local = cache.Path(w)
		} else {
			local = survey.MinimumCurvature(w.Survey)
		}
		path := make([]survey.Point, len(local))
		for i, p := range local {
			path[i] = p.Offset(w.SurfaceX, w.SurfaceY)
			acc.add(path[i].Vec())
		}
		surface := r3.Vec{X: w.SurfaceX, Y: w.SurfaceY}
		acc.add(surface)

		s.index[w.ID] = len(s.Wells)
		s.Wells = append(s.Wells, WellPath{Well: w, Path: path, Surface: surface})
	}
	if cache != nil {
		cache.Retain(wells)
	}
	s.Bounds = acc.bounds()
	return s
}

type extent struct {
	min, max r3.Vec
	n        int
}

func newExtent() *extent {
	inf := math.Inf(1)
	return &extent{min: r3.Vec{X: inf, Y: inf, Z: inf}, max: r3.Vec{X: -inf, Y: -inf, Z: -inf}}
}

func (e *extent) add(v r3.Vec) {
	e.min = r3.Vec{X: math.Min(e.min.X, v.X), Y: math.Min(e.min.Y, v.Y), Z: math.Min(e.min.Z, v.Z)}
	e.max = r3.Vec{X: math.Max(e.max.X, v.X), Y: math.Max(e.max.Y, v.Y), Z: math.Max(e.max.Z, v.Z)}
	e.n++
}

func (e *extent) bounds() Bounds {
	if e.n == 0 {
		return Bounds{Max: r3.Vec{X: MinNominalExtent, Y: MinNominalExtent, Z: MinNominalExtent}}
	}
	b := Bounds{Min: e.min, Max: e.max}
	b.Max.X = widen(b.Min.X, b.Max.X)
	b.Max.Y = widen(b.Min.Y, b.Max.Y)
	b.Max.Z = widen(b.Min.Z, b.Max.Z)
	return b
}

func widen(lo, hi float64) float64 {
	if hi-lo > 0 {
		return hi
	}
	return lo + MinNominalExtent
}

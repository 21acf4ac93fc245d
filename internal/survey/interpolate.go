package survey

import "sort"

// PointAt returns the position at measured depth md. Depths outside the path
// clamp to the first or last vertex, an exact station match returns that
// vertex untouched, and anything else is interpolated linearly between the
// bracketing vertices. ok is false only for an empty path.
func PointAt(path []Point, md float64) (p Point, ok bool) {
	n := len(path)
	if n == 0 {
		return Point{}, false
	}
	if md <= path[0].MD {
		return path[0], true
	}
	if md >= path[n-1].MD {
		return path[n-1], true
	}

	// First vertex with MD >= md; path[0].MD < md < path[n-1].MD so 0 < j < n.
	j := sort.Search(n, func(i int) bool { return path[i].MD >= md })
	hi := path[j]
	if hi.MD == md {
		return hi, true
	}
	lo := path[j-1]
	span := hi.MD - lo.MD
	if span <= 0 {
		return lo, true
	}
	f := (md - lo.MD) / span
	return Point{
		E:   lo.E + (hi.E-lo.E)*f,
		N:   lo.N + (hi.N-lo.N)*f,
		TVD: lo.TVD + (hi.TVD-lo.TVD)*f,
		MD:  md,
	}, true
}

// Segment returns the polyline covering [top, bottom]: the interpolated top,
// every vertex strictly inside the interval and the interpolated bottom.
// Both ends clamp to the path, so the result may collapse to a single
// repeated point when the interval lies entirely outside it.
func Segment(path []Point, top, bottom float64) []Point {
	if len(path) == 0 {
		return nil
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	seg := make([]Point, 0, 4)
	if p, ok := PointAt(path, top); ok {
		seg = append(seg, p)
	}
	for _, p := range path {
		if p.MD > top && p.MD < bottom {
			seg = append(seg, p)
		}
	}
	if p, ok := PointAt(path, bottom); ok {
		seg = append(seg, p)
	}
	return seg
}

// Span returns the measured-depth range covered by path.
func Span(path []Point) (lo, hi float64) {
	if len(path) == 0 {
		return 0, 0
	}
	return path[0].MD, path[len(path)-1].MD
}

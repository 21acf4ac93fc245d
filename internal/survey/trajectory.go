package survey

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DoglegEpsilon is the dogleg angle (radians) below which an interval is
// treated as straight and the ratio factor is exactly 1.
const DoglegEpsilon = 1e-9

// Station is one directional survey measurement. Angles are in degrees.
type Station struct {
	MD  float64 `yaml:"md" json:"md"`
	Inc float64 `yaml:"inc" json:"inc"`
	Azi float64 `yaml:"azi" json:"azi"`
}

// Point is a computed path vertex relative to the well's surface location.
// TVD grows downwards.
type Point struct {
	E   float64 `json:"easting"`
	N   float64 `json:"northing"`
	TVD float64 `json:"tvd"`
	MD  float64 `json:"md"`
}

// Vec returns the point as an (easting, northing, tvd) vector.
func (p Point) Vec() r3.Vec { return r3.Vec{X: p.E, Y: p.N, Z: p.TVD} }

// Offset translates the point horizontally.
func (p Point) Offset(dx, dy float64) Point {
	p.E += dx
	p.N += dy
	return p
}

// MinimumCurvature computes the wellbore path for stations. The result has
// one vertex per station in the same order with identical MD values; the
// first vertex sits at the origin.
func MinimumCurvature(stations []Station) []Point {
	if len(stations) == 0 {
		return []Point{}
	}
	path := make([]Point, len(stations))
	path[0] = Point{MD: stations[0].MD}
	for i := 1; i < len(stations); i++ {
		path[i] = advance(path[i-1], stations[i-1], stations[i])
	}
	return path
}

// advance moves prev along the arc between stations a and b.
func advance(prev Point, a, b Station) Point {
	dmd := b.MD - a.MD
	if dmd <= 0 || math.IsNaN(dmd) {
		prev.MD = b.MD
		return prev
	}

	i1, i2 := radians(a.Inc), radians(b.Inc)
	a1, a2 := radians(a.Azi), radians(b.Azi)
	rf := RatioFactor(doglegRad(i1, i2, a1, a2))

	half := dmd / 2
	dn := half * (math.Sin(i1)*math.Cos(a1) + math.Sin(i2)*math.Cos(a2)) * rf
	de := half * (math.Sin(i1)*math.Sin(a1) + math.Sin(i2)*math.Sin(a2)) * rf
	dv := half * (math.Cos(i1) + math.Cos(i2)) * rf

	return Point{E: prev.E + de, N: prev.N + dn, TVD: prev.TVD + dv, MD: b.MD}
}

// RatioFactor returns the minimum curvature correction for a dogleg angle
// in radians. Straight intervals return 1.
func RatioFactor(beta float64) float64 {
	if math.Abs(beta) <= DoglegEpsilon {
		return 1
	}
	return 2 / beta * math.Tan(beta/2)
}

// Dogleg returns the angle in radians between the wellbore directions at
// two stations.
func Dogleg(a, b Station) float64 {
	return doglegRad(radians(a.Inc), radians(b.Inc), radians(a.Azi), radians(b.Azi))
}

// DoglegSeverity returns the dogleg between a and b normalised to degrees
// per course length (100 ft or 30 m by convention).
func DoglegSeverity(a, b Station, course float64) float64 {
	dmd := b.MD - a.MD
	if dmd <= 0 {
		return 0
	}
	return Dogleg(a, b) * 180 / math.Pi * course / dmd
}

func doglegRad(i1, i2, a1, a2 float64) float64 {
	c := math.Cos(i2-i1) - math.Sin(i1)*math.Sin(i2)*(1-math.Cos(a2-a1))
	// Rounding can push the cosine just past ±1 on parallel stations.
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

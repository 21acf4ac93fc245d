package survey

import "math"

// Summary holds the read-only metrics shown for a well.
type Summary struct {
	TotalMD      float64 `json:"total_md"`
	FinalTVD     float64 `json:"final_tvd"`
	Displacement float64 `json:"displacement"`
}

// Summarize reports the metrics of the last path vertex. ok is false for an
// empty path.
func Summarize(path []Point) (Summary, bool) {
	if len(path) == 0 {
		return Summary{}, false
	}
	last := path[len(path)-1]
	return Summary{
		TotalMD:      last.MD,
		FinalTVD:     last.TVD,
		Displacement: math.Hypot(last.E, last.N),
	}, true
}

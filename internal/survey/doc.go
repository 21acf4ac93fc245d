// Package survey turns directional survey stations into a wellbore path.
//
// The package is pure geometry with no I/O and no error returns:
//
//   - [MinimumCurvature]: stations to path vertices (minimum curvature method)
//   - [PointAt]: position at an arbitrary measured depth, clamped to the path
//   - [Segment]: the polyline covering a measured-depth interval
//   - [Summarize]: total MD, final TVD and horizontal displacement
//
// Stations are expected to be pre-validated by the caller (ascending MD,
// finite numbers, first station at MD 0). Misordered input does not panic
// but produces undefined visual results.
//
// # Example
//
//	path := survey.MinimumCurvature([]survey.Station{
//	    {MD: 0}, {MD: 1000, Inc: 30, Azi: 45},
//	})
//	top, _ := survey.PointAt(path, 250)
package survey

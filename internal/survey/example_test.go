package survey_test

import (
	"fmt"

	"github.com/san-kum/wellview/internal/survey"
)

func ExamplePointAt() {
	path := survey.MinimumCurvature([]survey.Station{
		{MD: 0}, {MD: 1000, Inc: 30, Azi: 45},
	})
	top, ok := survey.PointAt(path, 250)
	fmt.Println(top.MD, ok)
	// Output: 250 true
}

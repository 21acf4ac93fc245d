package field

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/wellview/internal/survey"
)

// ParseSurvey reads "md, inc, azi" rows, one per line. Commas, semicolons,
// tabs and spaces all separate columns. Blank lines and lines starting with
// '#' are skipped silently; any other row without three numeric columns is
// dropped and reported. The result is sorted by MD.
func ParseSurvey(r io.Reader) ([]survey.Station, []*LineError, error) {
	var (
		stations []survey.Station
		dropped  []*LineError
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		st, err := parseRow(text)
		if err != nil {
			dropped = append(dropped, &LineError{Line: line, Text: text, Wrapped: err})
			continue
		}
		stations = append(stations, st)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	slices.SortStableFunc(stations, byMD)
	return stations, dropped, nil
}

// ParseSurveyString is ParseSurvey over an in-memory string.
func ParseSurveyString(s string) ([]survey.Station, []*LineError) {
	stations, dropped, _ := ParseSurvey(strings.NewReader(s))
	return stations, dropped
}

func parseRow(text string) (survey.Station, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) < 3 {
		return survey.Station{}, fmt.Errorf("%w: want 3 columns, got %d", ErrMalformedRow, len(fields))
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return survey.Station{}, fmt.Errorf("%w: column %d: %q", ErrMalformedRow, i+1, fields[i])
		}
		v[i] = f
	}
	return survey.Station{MD: v[0], Inc: v[1], Azi: v[2]}, nil
}

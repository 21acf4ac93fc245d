package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/wellview/internal/survey"
)

var pathHeader = []string{"md", "tvd", "east", "north"}

// WritePathCSV writes one row per path vertex.
func WritePathCSV(w io.Writer, path []survey.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pathHeader); err != nil {
		return err
	}
	for _, p := range path {
		row := []string{
			strconv.FormatFloat(p.MD, 'f', 6, 64),
			strconv.FormatFloat(p.TVD, 'f', 6, 64),
			strconv.FormatFloat(p.E, 'f', 6, 64),
			strconv.FormatFloat(p.N, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPathCSV reads what WritePathCSV wrote.
func ReadPathCSV(r io.Reader) ([]survey.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(pathHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []survey.Point{}, nil
	}

	path := make([]survey.Point, 0, len(records)-1)
	for _, record := range records[1:] {
		vals := make([]float64, len(record))
		for i, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		path = append(path, survey.Point{MD: vals[0], TVD: vals[1], E: vals[2], N: vals[3]})
	}
	return path, nil
}

// PathExport is the JSON form of a computed well path.
type PathExport struct {
	WellID  string         `json:"well_id"`
	Name    string         `json:"name"`
	Summary survey.Summary `json:"summary"`
	Points  []survey.Point `json:"points"`
}

func WritePathJSON(w io.Writer, exp PathExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exp)
}

package field

import (
	"fmt"
	"sort"

	"github.com/san-kum/wellview/internal/survey"
)

// Samples builds the demonstration fields. Each call returns a fresh copy.
var Samples = map[string]func() *Field{
	"north-sea": northSea,
	"vertical":  vertical,
	"cluster":   cluster,
}

// Sample returns the named demonstration field.
func Sample(name string) (*Field, error) {
	build, ok := Samples[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSample, name)
	}
	return build(), nil
}

// ListSamples returns the sample names in sorted order.
func ListSamples() []string {
	names := make([]string, 0, len(Samples))
	for name := range Samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func casing(id string, top, bottom, size float64, notes string) Component {
	return Component{ID: id, Kind: Casing, Top: top, Bottom: bottom, Size: size, Notes: notes}
}

func northSea() *Field {
	return &Field{
		Name: "north-sea",
		Wells: []*Well{
			{
				ID: "11", Name: "Well_11", Kind: Platform,
				DatumElevation: 25,
				Survey: []survey.Station{
					{MD: 0, Inc: 0, Azi: 0},
					{MD: 500, Inc: 1.5, Azi: 45},
					{MD: 1000, Inc: 3.5, Azi: 45},
					{MD: 2000, Inc: 15, Azi: 45},
					{MD: 3500, Inc: 45, Azi: 45},
				},
				Components: []Component{
					casing("11-surface", 0, 500, 20, "Surface Casing"),
					casing("11-intermediate", 0, 2500, 13.375, "Intermediate"),
					casing("11-production", 0, 3500, 9.625, "Production"),
				},
			},
			{
				ID: "55", Name: "Satellite_55", Kind: Subsea,
				SurfaceX: 600, SurfaceY: -600,
				DatumElevation: 25, WaterDepth: 450,
				Structure: Template,
				Survey: []survey.Station{
					{MD: 0, Inc: 0, Azi: 180},
					{MD: 1000, Inc: 20, Azi: 180},
					{MD: 2500, Inc: 60, Azi: 180},
					{MD: 4000, Inc: 90, Azi: 180},
				},
				Components: []Component{
					casing("55-surface", 475, 1200, 20, "Surface"),
					casing("55-intermediate", 475, 4000, 13.375, "Intermediate"),
				},
			},
		},
	}
}

func vertical() *Field {
	return &Field{
		Name: "vertical",
		Wells: []*Well{{
			ID: "v1", Name: "Vertical_1", Kind: Platform,
			DatumElevation: 30,
			Survey: []survey.Station{
				{MD: 0, Inc: 0, Azi: 0},
				{MD: 1000, Inc: 0, Azi: 0},
				{MD: 2000, Inc: 0, Azi: 0},
			},
			Components: []Component{
				casing("v1-surface", 0, 600, 13.375, "Surface"),
				casing("v1-production", 0, 2000, 7, "Production"),
				{ID: "v1-tubing", Kind: Tubing, Top: 0, Bottom: 1700, Size: 2.875, Weight: 6.5},
				{ID: "v1-packer", Kind: Packer, Top: 1650, PackerType: "Permanent"},
				{ID: "v1-perfs", Kind: Perforation, Top: 1800, Bottom: 1900, ShotsPerFoot: 4},
			},
		}},
	}
}

func cluster() *Field {
	f := &Field{Name: "cluster"}
	structures := []StructureKind{Template, Manifold, PLET}
	azimuths := []float64{0, 120, 240}
	for i, s := range structures {
		id := fmt.Sprintf("c%d", i+1)
		x := 400 * float64(i)
		f.Wells = append(f.Wells, &Well{
			ID: id, Name: fmt.Sprintf("Cluster_%d", i+1), Kind: Subsea,
			SurfaceX: x, SurfaceY: 0,
			DatumElevation: 25, WaterDepth: 300,
			Structure: s,
			Survey: []survey.Station{
				{MD: 0, Inc: 0, Azi: azimuths[i]},
				{MD: 800, Inc: 10, Azi: azimuths[i]},
				{MD: 2000, Inc: 35, Azi: azimuths[i]},
				{MD: 3000, Inc: 50, Azi: azimuths[i]},
			},
			Components: []Component{
				casing(id+"-conductor", 325, 900, 20, "Conductor"),
				casing(id+"-production", 325, 3000, 9.625, "Production"),
			},
		})
	}
	return f
}

package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/wellview/internal/survey"
)

// ComponentKind names the hardware a component represents.
type ComponentKind string

const (
	Casing      ComponentKind = "casing"
	Tubing      ComponentKind = "tubing"
	Packer      ComponentKind = "packer"
	Perforation ComponentKind = "perforation"
)

// Kinds lists every component kind in display order.
var Kinds = []ComponentKind{Casing, Tubing, Packer, Perforation}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (ComponentKind, error) {
	k := ComponentKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: component %q", ErrInvalidKind, s)
}

// Component is a piece of downhole hardware positioned by measured depth.
// Packers use Top only; every other kind spans [Top, Bottom].
type Component struct {
	ID     string        `yaml:"id" json:"id"`
	Kind   ComponentKind `yaml:"kind" json:"kind"`
	Top    float64       `yaml:"top" json:"top"`
	Bottom float64       `yaml:"bottom,omitempty" json:"bottom,omitempty"`

	// Casing and tubing.
	Size   float64 `yaml:"size,omitempty" json:"size,omitempty"`
	Weight float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
	Notes  string  `yaml:"notes,omitempty" json:"notes,omitempty"`
	Tally  string  `yaml:"tally,omitempty" json:"tally,omitempty"`

	PackerType   string  `yaml:"packer_type,omitempty" json:"packer_type,omitempty"`
	ShotsPerFoot float64 `yaml:"shots_per_foot,omitempty" json:"shots_per_foot,omitempty"`
}

// Interval returns the measured-depth range the component occupies. A
// packer reports its setting depth for both ends.
func (c Component) Interval() (top, bottom float64) {
	if c.Kind == Packer {
		return c.Top, c.Top
	}
	return c.Top, c.Bottom
}

// Label is a short human description used in tooltips and listings.
func (c Component) Label() string {
	switch c.Kind {
	case Casing, Tubing:
		if c.Notes != "" {
			return fmt.Sprintf("%s %s\" %s", c.Kind, formatSize(c.Size), c.Notes)
		}
		return fmt.Sprintf("%s %s\"", c.Kind, formatSize(c.Size))
	case Packer:
		return fmt.Sprintf("packer (%s) @ %.0f", c.PackerType, c.Top)
	case Perforation:
		return fmt.Sprintf("perforation %.0f-%.0f, %g spf", c.Top, c.Bottom, c.ShotsPerFoot)
	}
	return string(c.Kind)
}

func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TallyLength sums the positive joint lengths in a tubing tally, one per
// line. Lines that do not parse are ignored.
func TallyLength(tally string) float64 {
	total := 0.0
	for _, line := range strings.Split(tally, "\n") {
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err == nil && v > 0 {
			total += v
		}
	}
	return total
}

// WellKind distinguishes platform wells from subsea wells.
type WellKind string

const (
	Platform WellKind = "platform"
	Subsea   WellKind = "subsea"
)

// StructureKind is the seabed structure drawn next to a subsea well.
type StructureKind string

const (
	NoStructure StructureKind = ""
	Template    StructureKind = "template"
	Manifold    StructureKind = "manifold"
	PLET        StructureKind = "plet"
)

// ParseStructure accepts a structure name in any case; "none" and the empty
// string both mean no structure.
func ParseStructure(s string) (StructureKind, error) {
	switch k := StructureKind(strings.ToLower(strings.TrimSpace(s))); k {
	case NoStructure, "none":
		return NoStructure, nil
	case Template, Manifold, PLET:
		return k, nil
	}
	return "", fmt.Errorf("%w: structure %q", ErrInvalidKind, s)
}

// Title is the display name of the structure.
func (s StructureKind) Title() string {
	switch s {
	case Template:
		return "Template"
	case Manifold:
		return "Manifold"
	case PLET:
		return "PLET"
	}
	return "None"
}

// Well is a single wellbore with its survey and completion hardware.
// Survey slices are replaced, never mutated in place, so the path cache can
// key on slice identity.
type Well struct {
	ID             string           `yaml:"id" json:"id"`
	Name           string           `yaml:"name" json:"name"`
	Kind           WellKind         `yaml:"kind" json:"kind"`
	SurfaceX       float64          `yaml:"surface_x" json:"surface_x"`
	SurfaceY       float64          `yaml:"surface_y" json:"surface_y"`
	DatumElevation float64          `yaml:"datum_elevation" json:"datum_elevation"`
	WaterDepth     float64          `yaml:"water_depth,omitempty" json:"water_depth,omitempty"`
	Structure      StructureKind    `yaml:"structure,omitempty" json:"structure,omitempty"`
	Components     []Component      `yaml:"components" json:"components"`
	Survey         []survey.Station `yaml:"survey" json:"survey"`
}

// Component returns the component with the given ID.
func (w *Well) Component(id string) (*Component, bool) {
	for i := range w.Components {
		if w.Components[i].ID == id {
			return &w.Components[i], true
		}
	}
	return nil, false
}

// MaxMD is the measured depth of the last survey station, or 0.
func (w *Well) MaxMD() float64 {
	if len(w.Survey) == 0 {
		return 0
	}
	return w.Survey[len(w.Survey)-1].MD
}

// WellheadDepth is the vertical position of the tree: zero for platform
// wells, datum elevation plus water depth for subsea wells.
func (w *Well) WellheadDepth() float64 {
	if w.Kind == Subsea {
		return w.DatumElevation + w.WaterDepth
	}
	return 0
}

// Field is the set of wells shown together in one viewport.
type Field struct {
	Name  string  `yaml:"name" json:"name"`
	Wells []*Well `yaml:"wells" json:"wells"`
}

// Well returns the well with the given ID.
func (f *Field) Well(id string) (*Well, bool) {
	for _, w := range f.Wells {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}

// Owner returns the well that holds the component with the given ID.
func (f *Field) Owner(componentID string) (*Well, bool) {
	for _, w := range f.Wells {
		if _, ok := w.Component(componentID); ok {
			return w, true
		}
	}
	return nil, false
}

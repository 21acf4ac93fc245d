package field

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/san-kum/wellview/internal/survey"
)

// AddWell appends w to the field. The ID must be unique.
func (f *Field) AddWell(w *Well) error {
	if w.ID == "" {
		w.ID = uuid.NewString()[:8]
	}
	if _, ok := f.Well(w.ID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateWell, w.ID)
	}
	f.Wells = append(f.Wells, w)
	return nil
}

// RemoveWell deletes the well with the given ID.
func (f *Field) RemoveWell(id string) error {
	i := slices.IndexFunc(f.Wells, func(w *Well) bool { return w.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrWellNotFound, id)
	}
	f.Wells = slices.Delete(f.Wells, i, i+1)
	return nil
}

// AddComponent creates a component of the given kind with defaults placed
// around the middle of the well's surveyed depth and returns its ID.
func (f *Field) AddComponent(wellID string, kind ComponentKind) (string, error) {
	w, ok := f.Well(wellID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrWellNotFound, wellID)
	}
	c, err := NewComponent(kind, w.MaxMD())
	if err != nil {
		return "", err
	}
	w.Components = append(w.Components, c)
	return c.ID, nil
}

// NewComponent builds a component of kind with default dimensions for a well
// surveyed to maxMD. A well without a survey is treated as 2000 deep.
func NewComponent(kind ComponentKind, maxMD float64) (Component, error) {
	if maxMD <= 0 {
		maxMD = 2000
	}
	mid := math.Floor(maxMD / 2)
	c := Component{ID: NewComponentID(kind), Kind: kind}
	switch kind {
	case Casing:
		c.Bottom, c.Size, c.Weight = mid, 7, 26
	case Tubing:
		c.Bottom, c.Size, c.Weight = mid-100, 2.875, 6.5
	case Packer:
		c.Top, c.PackerType = mid-200, "Permanent"
	case Perforation:
		c.Top, c.Bottom, c.ShotsPerFoot = mid+100, mid+200, 4
	default:
		return Component{}, fmt.Errorf("%w: component %q", ErrInvalidKind, kind)
	}
	return c, nil
}

// NewComponentID returns a fresh "<kind>-<uuid>" identifier.
func NewComponentID(kind ComponentKind) string {
	return string(kind) + "-" + uuid.NewString()
}

// ComponentUpdate carries the fields to change; nil pointers are left alone.
type ComponentUpdate struct {
	Top          *float64
	Bottom       *float64
	Size         *float64
	Weight       *float64
	Notes        *string
	Tally        *string
	PackerType   *string
	ShotsPerFoot *float64
}

// UpdateComponent applies u to a component. Setting a tubing tally moves the
// bottom to top plus the summed joint lengths.
func (f *Field) UpdateComponent(wellID, componentID string, u ComponentUpdate) error {
	w, ok := f.Well(wellID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWellNotFound, wellID)
	}
	c, ok := w.Component(componentID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, componentID)
	}
	set(&c.Top, u.Top)
	set(&c.Bottom, u.Bottom)
	set(&c.Size, u.Size)
	set(&c.Weight, u.Weight)
	set(&c.Notes, u.Notes)
	set(&c.PackerType, u.PackerType)
	set(&c.ShotsPerFoot, u.ShotsPerFoot)
	if u.Tally != nil && c.Kind == Tubing {
		c.Tally = *u.Tally
		if strings.TrimSpace(c.Tally) != "" {
			c.Bottom = c.Top + TallyLength(c.Tally)
		}
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// RemoveComponent deletes a component from a well.
func (f *Field) RemoveComponent(wellID, componentID string) error {
	w, ok := f.Well(wellID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWellNotFound, wellID)
	}
	i := slices.IndexFunc(w.Components, func(c Component) bool { return c.ID == componentID })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, componentID)
	}
	w.Components = slices.Delete(w.Components, i, i+1)
	return nil
}

// SetSurvey replaces the well's survey with a sorted copy of stations.
func (f *Field) SetSurvey(wellID string, stations []survey.Station) error {
	w, ok := f.Well(wellID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWellNotFound, wellID)
	}
	next := slices.Clone(stations)
	slices.SortStableFunc(next, byMD)
	w.Survey = next
	return nil
}

// AddStation inserts a station in MD order.
func (f *Field) AddStation(wellID string, st survey.Station) error {
	w, ok := f.Well(wellID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWellNotFound, wellID)
	}
	next := append(slices.Clone(w.Survey), st)
	slices.SortStableFunc(next, byMD)
	w.Survey = next
	return nil
}

// RemoveStation deletes the station at index i.
func (f *Field) RemoveStation(wellID string, i int) error {
	w, ok := f.Well(wellID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWellNotFound, wellID)
	}
	if i < 0 || i >= len(w.Survey) {
		return fmt.Errorf("%w: %d", ErrStationIndex, i)
	}
	w.Survey = slices.Delete(slices.Clone(w.Survey), i, i+1)
	return nil
}

func byMD(a, b survey.Station) int {
	switch {
	case a.MD < b.MD:
		return -1
	case a.MD > b.MD:
		return 1
	}
	return 0
}

// Replace swaps in the wells of next. A well whose survey is unchanged keeps
// its current survey slice so memoized paths stay valid across reloads.
func (f *Field) Replace(next *Field) {
	for _, nw := range next.Wells {
		if old, ok := f.Well(nw.ID); ok && slices.Equal(old.Survey, nw.Survey) {
			nw.Survey = old.Survey
		}
	}
	f.Name = next.Name
	f.Wells = next.Wells
}

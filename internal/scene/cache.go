package scene

import (
	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/survey"
)

// PathCache memoizes minimum-curvature paths per well. An entry is reused
// as long as the well's survey slice is the same backing array with the
// same length; editors replace the slice on every change.
type PathCache struct {
	entries map[string]cacheEntry
	hits    int
	misses  int
}

type cacheEntry struct {
	first *survey.Station
	n     int
	path  []survey.Point
}

func NewPathCache() *PathCache {
	return &PathCache{entries: make(map[string]cacheEntry)}
}

// Path returns the computed path for w, recomputing only when its survey
// identity changed.
func (c *PathCache) Path(w *field.Well) []survey.Point {
	first, n := identity(w.Survey)
	if e, ok := c.entries[w.ID]; ok && e.first == first && e.n == n {
		c.hits++
		return e.path
	}
	c.misses++
	path := survey.MinimumCurvature(w.Survey)
	c.entries[w.ID] = cacheEntry{first: first, n: n, path: path}
	return path
}

// Retain drops entries for wells not in keep.
func (c *PathCache) Retain(wells []*field.Well) {
	live := make(map[string]bool, len(wells))
	for _, w := range wells {
		live[w.ID] = true
	}
	for id := range c.entries {
		if !live[id] {
			delete(c.entries, id)
		}
	}
}

func (c *PathCache) Hits() int   { return c.hits }
func (c *PathCache) Misses() int { return c.misses }
func (c *PathCache) Len() int    { return len(c.entries) }

func identity(s []survey.Station) (*survey.Station, int) {
	if len(s) == 0 {
		return nil, 0
	}
	return &s[0], len(s)
}

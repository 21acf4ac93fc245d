package scene

import (
	"sync"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/survey"
)

const (
	warmWorkers  = 4
	warmMinChunk = 8
)

// Warm computes the paths of every well not already cached, spreading the
// work over a few goroutines for large fields. It returns once all paths
// are stored.
func (c *PathCache) Warm(wells []*field.Well) {
	var stale []*field.Well
	for _, w := range wells {
		first, n := identity(w.Survey)
		if e, ok := c.entries[w.ID]; ok && e.first == first && e.n == n {
			continue
		}
		stale = append(stale, w)
	}

	paths := make([][]survey.Point, len(stale))
	parallelFor(len(stale), warmMinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			paths[i] = survey.MinimumCurvature(stale[i].Survey)
		}
	})

	for i, w := range stale {
		first, n := identity(w.Survey)
		c.entries[w.ID] = cacheEntry{first: first, n: n, path: paths[i]}
		c.misses++
	}
}

// parallelFor runs fn over [0, n) in contiguous chunks.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= minChunk {
		fn(0, n)
		return
	}

	workers := min(warmWorkers, n/minChunk)
	if workers < 1 {
		workers = 1
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

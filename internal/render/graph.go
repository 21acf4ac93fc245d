package render

// Node is a retained drawable. Handle stays fixed for as long as a
// drawable with the same ID keeps appearing in consecutive frames.
type Node struct {
	Handle   int
	Drawable Drawable
}

// Diff lists the drawable IDs touched by one Apply.
type Diff struct {
	Added   []string
	Updated []string
	Removed []string
}

// Empty reports whether the frame matched the retained graph exactly.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// Graph is the retained scene graph backends draw from.
type Graph struct {
	order    []string
	nodes    map[string]*Node
	next     int
	warnings []Warning
}

func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Apply replaces the retained drawables with those of fr and reports what
// changed. The draw order always follows fr.
func (g *Graph) Apply(fr Frame) Diff {
	var diff Diff
	seen := make(map[string]bool, len(fr.Drawables))
	order := make([]string, 0, len(fr.Drawables))

	for _, d := range fr.Drawables {
		if seen[d.ID] {
			// Later duplicates replace the earlier drawable in place.
			g.nodes[d.ID].Drawable = d
			continue
		}
		seen[d.ID] = true
		order = append(order, d.ID)

		n, ok := g.nodes[d.ID]
		switch {
		case !ok:
			g.next++
			g.nodes[d.ID] = &Node{Handle: g.next, Drawable: d}
			diff.Added = append(diff.Added, d.ID)
		case !n.Drawable.equal(&d):
			n.Drawable = d
			diff.Updated = append(diff.Updated, d.ID)
		}
	}
	for _, id := range g.order {
		if !seen[id] {
			delete(g.nodes, id)
			diff.Removed = append(diff.Removed, id)
		}
	}
	g.order = order
	g.warnings = fr.Warnings
	return diff
}

// Node returns the retained node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Drawables returns the retained drawables in draw order.
func (g *Graph) Drawables() []Drawable {
	out := make([]Drawable, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].Drawable)
	}
	return out
}

// Warnings returns the clamp reports of the last applied frame.
func (g *Graph) Warnings() []Warning { return g.warnings }

func (g *Graph) Len() int { return len(g.order) }

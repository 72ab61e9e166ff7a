package mobility

import "mobility-urdf/internal/failure"

// RootParent is the parent id of the root link.
const RootParent = -1

// Graph is an arena of links addressed by dense index. Parent and child
// relations are stored as indices, never as pointers.
type Graph struct {
	Links    []Link  // record order
	Parents  []int   // arena index of each link's parent, -1 for roots
	Children [][]int // arena indices, in record order
	Roots    []int   // links whose parent id is -1

	index map[int]int // link id -> arena index
}

// Build indexes the links and derives parent/child relations.
func Build(links []Link) (*Graph, error) {
	g := &Graph{
		Links:    links,
		Parents:  make([]int, len(links)),
		Children: make([][]int, len(links)),
		index:    make(map[int]int, len(links)),
	}

	for i, l := range links {
		if _, dup := g.index[l.ID]; dup {
			return nil, failure.New(failure.MalformedGraph, l.ID, "duplicate link id")
		}
		g.index[l.ID] = i
	}

	for i, l := range links {
		if l.Parent == RootParent {
			g.Parents[i] = -1
			g.Roots = append(g.Roots, i)
			continue
		}
		p, ok := g.index[l.Parent]
		if !ok {
			return nil, failure.New(failure.MalformedGraph, l.ID, "parent %d does not exist", l.Parent)
		}
		g.Parents[i] = p
		g.Children[p] = append(g.Children[p], i)
	}

	return g, nil
}

// Len returns the number of links.
func (g *Graph) Len() int {
	return len(g.Links)
}

// Index returns the arena index of a link id.
func (g *Graph) Index(id int) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Link returns the link at an arena index.
func (g *Graph) Link(i int) Link {
	return g.Links[i]
}

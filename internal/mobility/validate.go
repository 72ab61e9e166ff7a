package mobility

import "mobility-urdf/internal/failure"

// Validate checks that the graph is a single rooted tree with consistent joint
// roles and returns the root's arena index. Checks run in a fixed order and the
// first violation is returned. Links with an unrecognized joint spelling pass
// the role checks; their UnknownJointKind failure surfaces at classification.
func Validate(g *Graph) (int, error) {
	if len(g.Roots) != 1 {
		return -1, failure.Graph(failure.MultipleRoots, "there must be exactly 1 root, found %d", len(g.Roots))
	}
	root := g.Roots[0]

	if err := checkAcyclic(g, root); err != nil {
		return -1, err
	}

	if r := g.Links[root]; r.Joint.Kind.Movable() {
		return -1, failure.New(failure.InvalidRootJoint, r.ID, "root joint is %s", r.Joint.Kind)
	}
	for i, l := range g.Links {
		if i != root && l.Joint.Kind == JointFixed {
			return -1, failure.New(failure.InvalidChildJoint, l.ID, "non-root joint is %s, want hinge or slider", l.Joint.Kind)
		}
	}

	return root, nil
}

// checkAcyclic walks breadth-first from the root. Revisiting a link, or leaving
// one unreached, means the parent relation contains a cycle.
func checkAcyclic(g *Graph, root int) error {
	visited := make([]bool, g.Len())
	visited[root] = true
	queue := []int{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, c := range g.Children[n] {
			if visited[c] {
				return failure.New(failure.CyclicGraph, g.Links[c].ID, "mobility tree has a loop")
			}
			visited[c] = true
			queue = append(queue, c)
		}
	}
	for i, seen := range visited {
		if !seen {
			return failure.New(failure.CyclicGraph, g.Links[i].ID, "link is not reachable from root %d", g.Links[root].ID)
		}
	}
	return nil
}

// Order returns arena indices parent-before-child, breadth-first from root.
// The graph must have passed Validate.
func Order(g *Graph, root int) []int {
	order := make([]int, 0, g.Len())
	order = append(order, root)
	for i := 0; i < len(order); i++ {
		order = append(order, g.Children[order[i]]...)
	}
	return order
}

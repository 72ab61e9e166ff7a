package hierarchy

// Table is the flat id -> part lookup built once from the hierarchy input.
// Read-only after construction.
type Table struct {
	parts []PartNode
	index map[int]int
	dups  []int
}

func newTable(capacity int) *Table {
	return &Table{
		parts: make([]PartNode, 0, capacity),
		index: make(map[int]int, capacity),
	}
}

func (t *Table) add(p PartNode) {
	if _, exists := t.index[p.ID]; exists {
		// First occurrence wins; collisions are reported, not resolved.
		t.dups = append(t.dups, p.ID)
		return
	}
	t.index[p.ID] = len(t.parts)
	t.parts = append(t.parts, p)
}

// Flatten walks the nested hierarchy depth-first, parents before children.
func Flatten(roots []Node) *Table {
	t := newTable(countNodes(roots))
	var walk func(nodes []Node, parent int)
	walk = func(nodes []Node, parent int) {
		for _, n := range nodes {
			p := PartNode{
				ID:       n.ID,
				Name:     n.Name,
				Parent:   parent,
				Children: make([]int, 0, len(n.Children)),
				Objs:     append([]string{}, n.Objs...),
			}
			for _, c := range n.Children {
				p.Children = append(p.Children, c.ID)
			}
			t.add(p)
			walk(n.Children, n.ID)
		}
	}
	walk(roots, -1)
	return t
}

// FromFlat indexes an already-flattened part list.
func FromFlat(parts []PartNode) *Table {
	t := newTable(len(parts))
	for _, p := range parts {
		t.add(p)
	}
	return t
}

func countNodes(nodes []Node) int {
	n := len(nodes)
	for _, c := range nodes {
		n += countNodes(c.Children)
	}
	return n
}

// Len returns the number of distinct part ids.
func (t *Table) Len() int {
	return len(t.parts)
}

// Parts returns the parts in traversal order.
func (t *Table) Parts() []PartNode {
	return t.parts
}

// Lookup returns the part with the given id.
func (t *Table) Lookup(id int) (PartNode, bool) {
	i, ok := t.index[id]
	if !ok {
		return PartNode{}, false
	}
	return t.parts[i], true
}

// QualifiedName returns "{id}-{name}" for a part id.
func (t *Table) QualifiedName(id int) (string, bool) {
	p, ok := t.Lookup(id)
	if !ok {
		return "", false
	}
	return p.QualifiedName(), true
}

// ObjOwners maps every raw mesh-part reference to the id of the part that owns it.
func (t *Table) ObjOwners() map[string]int {
	owners := make(map[string]int)
	for _, p := range t.parts {
		for _, obj := range p.Objs {
			owners[obj] = p.ID
		}
	}
	return owners
}

// Duplicates lists ids that appeared more than once in the input.
func (t *Table) Duplicates() []int {
	return t.dups
}

package hierarchy

import "strconv"

// Node is one entry of the nested part hierarchy (PartNet result.json).
type Node struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Objs     []string `json:"objs,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// PartNode is a flattened hierarchy entry, the form stored under "partnet"
// in mobility_v3.json.
type PartNode struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Parent   int      `json:"parent"`   // -1 at the top level
	Children []int    `json:"children"` // ids, in source order
	Objs     []string `json:"objs"`     // raw mesh-part references owned directly
}

// QualifiedName is "{id}-{name}", the stem of the part's mesh file.
func (p PartNode) QualifiedName() string {
	return strconv.Itoa(p.ID) + "-" + p.Name
}

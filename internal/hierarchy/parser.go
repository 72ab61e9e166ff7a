package hierarchy

import (
	"encoding/json"

	"mobility-urdf/internal/failure"
)

// ParseNested decodes the nested hierarchy document (a list of top-level nodes).
func ParseNested(data []byte) ([]Node, error) {
	var roots []Node
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, failure.Wrap(failure.InputFormat, err, "hierarchy")
	}
	return roots, nil
}

// ParseFlat decodes a flattened part list.
func ParseFlat(data []byte) ([]PartNode, error) {
	var parts []PartNode
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, failure.Wrap(failure.InputFormat, err, "partnet")
	}
	return parts, nil
}

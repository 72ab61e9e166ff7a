package mobility

import (
	"bytes"
	"encoding/json"

	"mobility-urdf/internal/failure"
)

// Clean rewrites a v2 mobility document so that null list members become 0,
// keeping every other field as authored. Object key order is not preserved.
func Clean(data []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, failure.Wrap(failure.InputFormat, err, "mobility")
	}
	cleanNulls(doc)
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, failure.Wrap(failure.InputFormat, err, "mobility")
	}
	return out, nil
}

func cleanNulls(node any) {
	switch n := node.(type) {
	case []any:
		for i := range n {
			if n[i] == nil {
				n[i] = json.Number("0")
			}
			cleanNulls(n[i])
		}
	case map[string]any:
		for _, v := range n {
			cleanNulls(v)
		}
	}
}

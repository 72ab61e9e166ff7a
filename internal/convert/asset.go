package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/hierarchy"
	"mobility-urdf/internal/mobility"
)

// File names inside an asset directory.
const (
	V3File         = "mobility_v3.json"
	HierarchyFile  = "result.json"
	MobilityV2File = "mobility_v2.json"
	DefaultOutput  = "mobility_v3.urdf"
)

// v3Document is mobility_v3.json: flattened hierarchy plus cleaned mobility.
type v3Document struct {
	Partnet  json.RawMessage `json:"partnet"`
	Mobility json.RawMessage `json:"mobility"`
}

// LoadAsset reads an asset directory. mobility_v3.json is preferred; without
// it the v2 pair result.json + mobility_v2.json is used. The robot is named
// after the directory.
func LoadAsset(dir string) (Input, error) {
	name := filepath.Base(filepath.Clean(dir))

	path := filepath.Join(dir, V3File)
	data, err := os.ReadFile(path)
	if err == nil {
		return decodeV3(name, path, data)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Input{}, fmt.Errorf("convert: read %s: %w", path, err)
	}

	parts, mob, err := loadV2(dir)
	if err != nil {
		return Input{}, err
	}
	return Input{Name: name, Hierarchy: parts, Mobility: mob}, nil
}

func decodeV3(name, path string, data []byte) (Input, error) {
	var doc v3Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Input{}, failure.Wrap(failure.InputFormat, err, "%s", path)
	}
	if len(doc.Mobility) == 0 || string(doc.Mobility) == "null" {
		return Input{}, failure.Graph(failure.InputFormat, "%s has no mobility list", path)
	}
	parts, err := hierarchy.ParseFlat(doc.Partnet)
	if err != nil {
		return Input{}, fmt.Errorf("convert: %s: %w", path, err)
	}
	return Input{
		Name:      name,
		Hierarchy: hierarchy.FromFlat(parts),
		Mobility:  doc.Mobility,
	}, nil
}

func loadV2(dir string) (*hierarchy.Table, []byte, error) {
	hpath := filepath.Join(dir, HierarchyFile)
	hdata, err := os.ReadFile(hpath)
	if err != nil {
		return nil, nil, fmt.Errorf("convert: read %s: %w", hpath, err)
	}
	roots, err := hierarchy.ParseNested(hdata)
	if err != nil {
		return nil, nil, fmt.Errorf("convert: %s: %w", hpath, err)
	}

	mpath := filepath.Join(dir, MobilityV2File)
	mdata, err := os.ReadFile(mpath)
	if err != nil {
		return nil, nil, fmt.Errorf("convert: read %s: %w", mpath, err)
	}
	cleaned, err := mobility.Clean(mdata)
	if err != nil {
		return nil, nil, fmt.Errorf("convert: %s: %w", mpath, err)
	}
	return hierarchy.Flatten(roots), cleaned, nil
}

// WriteAsset stores the document in the asset directory and returns its path.
// An empty fileName means DefaultOutput.
func WriteAsset(dir string, res *Result, fileName string) (string, error) {
	if fileName == "" {
		fileName = DefaultOutput
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, res.Document, 0644); err != nil {
		return "", fmt.Errorf("convert: write %s: %w", path, err)
	}
	return path, nil
}

// Upgrade writes mobility_v3.json from the v2 pair and returns its path.
// Mesh export is not part of this step.
func Upgrade(dir string) (string, error) {
	parts, mob, err := loadV2(dir)
	if err != nil {
		return "", err
	}
	partnet, err := json.Marshal(parts.Parts())
	if err != nil {
		return "", fmt.Errorf("convert: encode %s: %w", V3File, err)
	}
	data, err := json.Marshal(v3Document{Partnet: partnet, Mobility: mob})
	if err != nil {
		return "", fmt.Errorf("convert: encode %s: %w", V3File, err)
	}
	path := filepath.Join(dir, V3File)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("convert: write %s: %w", path, err)
	}
	return path, nil
}

package convert

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/hierarchy"
)

const doorHierarchy = `[
  {"id": 0, "name": "cabinet", "children": [
    {"id": 1, "name": "body", "objs": ["original-1"]},
    {"id": 2, "name": "door", "objs": ["original-2", "original-3"]}
  ]}
]`

const doorMobilityV2 = `[
  {"id": 0, "parent": -1, "name": "frame", "joint": "", "jointData": {},
   "parts": [{"id": 1, "name": "body"}]},
  {"id": 1, "parent": 0, "name": "door", "joint": "hinge",
   "jointData": {"axis": {"origin": [1, null, 0], "direction": [0, 0, 1]},
                 "limit": {"a": 0, "b": 90, "noLimit": false}},
   "parts": [{"id": 2, "name": "door"}]}
]`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func v2Asset(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "7128")
	require.NoError(t, os.Mkdir(dir, 0755))
	writeFile(t, dir, HierarchyFile, doorHierarchy)
	writeFile(t, dir, MobilityV2File, doorMobilityV2)
	return dir
}

func TestLoadAssetV2Fallback(t *testing.T) {
	in, err := LoadAsset(v2Asset(t))
	require.NoError(t, err)

	assert.Equal(t, "7128", in.Name)
	assert.Equal(t, 3, in.Hierarchy.Len())
	name, ok := in.Hierarchy.QualifiedName(2)
	require.True(t, ok)
	assert.Equal(t, "2-door", name)
	assert.NotContains(t, string(in.Mobility), "null")

	res, err := Convert(context.Background(), in, Options{Validate: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Links())
}

func TestLoadAssetPrefersV3(t *testing.T) {
	dir := v2Asset(t)
	writeFile(t, dir, V3File, `{"partnet": [{"id": 5, "name": "lid", "parent": -1, "children": [], "objs": []}],
	  "mobility": [{"id": 0, "parent": -1, "parts": [{"id": 5, "name": "lid"}]}]}`)

	in, err := LoadAsset(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, in.Hierarchy.Len())

	res, err := Convert(context.Background(), in, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"gltf/5-lid.gltf"}, res.MeshPaths)
}

func TestLoadAssetErrors(t *testing.T) {
	t.Run("empty dir", func(t *testing.T) {
		_, err := LoadAsset(t.TempDir())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad v3", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, V3File, `{"partnet": 3}`)
		_, err := LoadAsset(dir)
		assert.True(t, failure.Is(err, failure.InputFormat), "got %v", err)
	})
	t.Run("v3 without mobility", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, V3File, `{"partnet": []}`)
		_, err := LoadAsset(dir)
		assert.True(t, failure.Is(err, failure.InputFormat), "got %v", err)
	})
	t.Run("bad hierarchy", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, HierarchyFile, `{"id": 0}`)
		writeFile(t, dir, MobilityV2File, `[]`)
		_, err := LoadAsset(dir)
		assert.True(t, failure.Is(err, failure.InputFormat), "got %v", err)
	})
}

func TestWriteAsset(t *testing.T) {
	dir := v2Asset(t)
	in, err := LoadAsset(dir)
	require.NoError(t, err)
	res, err := Convert(context.Background(), in, Options{})
	require.NoError(t, err)

	path, err := WriteAsset(dir, res, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultOutput), path)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res.Document, got)

	path, err = WriteAsset(dir, res, "robot.urdf")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestUpgrade(t *testing.T) {
	dir := v2Asset(t)
	path, err := Upgrade(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, V3File), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Partnet  []hierarchy.PartNode `json:"partnet"`
		Mobility []map[string]any     `json:"mobility"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Len(t, doc.Partnet, 3)
	assert.Equal(t, hierarchy.PartNode{ID: 0, Name: "cabinet", Parent: -1, Children: []int{1, 2}, Objs: []string{}}, doc.Partnet[0])
	assert.Equal(t, []string{"original-2", "original-3"}, doc.Partnet[2].Objs)
	assert.Equal(t, 0, doc.Partnet[2].Parent)
	require.Len(t, doc.Mobility, 2)
	assert.Equal(t, "door", doc.Mobility[1]["name"])

	// The upgraded file now wins over the v2 pair and converts identically.
	fromV3, err := LoadAsset(dir)
	require.NoError(t, err)
	a, err := Convert(context.Background(), fromV3, Options{})
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	fromV2, err := LoadAsset(dir)
	require.NoError(t, err)
	b, err := Convert(context.Background(), fromV2, Options{})
	require.NoError(t, err)
	assert.Equal(t, string(b.Document), string(a.Document))
}

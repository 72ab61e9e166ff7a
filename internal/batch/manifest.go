package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Manifest summarizes a run.
type Manifest struct {
	RunID     string          `json:"run_id"`
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	ElapsedMS int64           `json:"elapsed_ms"`
	Assets    []ManifestEntry `json:"assets"`
}

// ManifestEntry represents one asset in the output manifest.
type ManifestEntry struct {
	Asset      string   `json:"asset"`
	Status     string   `json:"status"`
	URDF       string   `json:"urdf,omitempty"`
	Preview    string   `json:"preview,omitempty"`
	Links      int      `json:"links,omitempty"`
	Joints     int      `json:"joints,omitempty"`
	Connectors int      `json:"connectors,omitempty"`
	Meshes     []string `json:"meshes,omitempty"`
	Error      string   `json:"error,omitempty"`
	ErrorKind  string   `json:"error_kind,omitempty"`
	LinkID     *int     `json:"link_id,omitempty"`
}

// BuildManifest converts a report. Output paths are made relative to base
// when possible.
func BuildManifest(r *Report, base string) Manifest {
	ok, failed := r.Counts()
	m := Manifest{
		RunID:     r.RunID,
		Total:     len(r.Results),
		Succeeded: ok,
		Failed:    failed,
		ElapsedMS: r.Elapsed.Milliseconds(),
		Assets:    make([]ManifestEntry, len(r.Results)),
	}
	for i, res := range r.Results {
		e := ManifestEntry{
			Asset:      res.Name,
			Status:     "ok",
			URDF:       relTo(base, res.URDF),
			Preview:    relTo(base, res.Preview),
			Links:      res.Links,
			Joints:     res.Joints,
			Connectors: res.Connectors,
			Meshes:     res.Meshes,
		}
		if !res.Success {
			e.Status = "failed"
			e.Error = res.Error
			e.ErrorKind = res.ErrorKind
			e.LinkID = res.LinkID
		}
		m.Assets[i] = e
	}
	return m
}

func relTo(base, path string) string {
	if path == "" || base == "" {
		return path
	}
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// WriteManifest writes the run manifest as indented JSON.
func WriteManifest(path string, r *Report) error {
	m := BuildManifest(r, filepath.Dir(path))
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}

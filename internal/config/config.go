package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"mobility-urdf/internal/logging"
)

// Config holds all configurable paths and conversion settings.
type Config struct {
	// Paths
	DataDir      string   `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	Assets       []string `json:"assets" yaml:"assets" toml:"assets"` // asset dir names; empty means all
	OutputName   string   `json:"output_name" yaml:"output_name" toml:"output_name"`
	ManifestPath string   `json:"manifest" yaml:"manifest" toml:"manifest"`
	MetricsFile  string   `json:"metrics_file" yaml:"metrics_file" toml:"metrics_file"`

	// Mesh references in the emitted document
	MeshDir string `json:"mesh_dir" yaml:"mesh_dir" toml:"mesh_dir"`
	MeshExt string `json:"mesh_ext" yaml:"mesh_ext" toml:"mesh_ext"`

	Validate bool `json:"validate" yaml:"validate" toml:"validate"`
	Workers  int  `json:"workers" yaml:"workers" toml:"workers"`

	Preview Preview        `json:"preview" yaml:"preview" toml:"preview"`
	Logging logging.Config `json:"logging" yaml:"logging" toml:"logging"`
}

// Preview holds schematic preview settings.
type Preview struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Format      string `json:"format" yaml:"format" toml:"format"` // "webp" or "tga"
	FileName    string `json:"file_name" yaml:"file_name" toml:"file_name"`
	Size        int    `json:"size" yaml:"size" toml:"size"`
	Supersample int    `json:"supersample" yaml:"supersample" toml:"supersample"`
}

// Load reads a config file; the format follows the extension (.json, .yaml,
// .yml, .toml). Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: expand %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir  string
	Asset    string
	Workers  int
	Validate bool
	Preview  bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.DataDir != "" {
		c.DataDir = flags.DataDir
	}
	if flags.Asset != "" {
		c.Assets = []string{flags.Asset}
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Validate {
		c.Validate = true
	}
	if flags.Preview {
		c.Preview.Enabled = true
	}

	if c.DataDir == "" {
		c.DataDir = detectDataDir()
	}

	var err error
	if c.DataDir, err = expand(c.DataDir); err != nil {
		return err
	}
	if c.MetricsFile, err = expand(c.MetricsFile); err != nil {
		return err
	}
	if c.Logging.OutputPath, err = expand(c.Logging.OutputPath); err != nil {
		return err
	}
	if c.ManifestPath, err = expand(c.ManifestPath); err != nil {
		return err
	}

	// Resolve relative paths against the data dir
	if c.ManifestPath == "" {
		c.ManifestPath = filepath.Join(c.DataDir, "manifest.json")
	} else if !filepath.IsAbs(c.ManifestPath) {
		c.ManifestPath = filepath.Join(c.DataDir, c.ManifestPath)
	}
	if c.MetricsFile != "" && !filepath.IsAbs(c.MetricsFile) {
		c.MetricsFile = filepath.Join(c.DataDir, c.MetricsFile)
	}

	if c.OutputName == "" {
		c.OutputName = "mobility_v3.urdf"
	}
	if c.MeshDir == "" {
		c.MeshDir = "gltf"
	}
	if c.MeshExt == "" {
		c.MeshExt = "gltf"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	// Defaults for preview settings
	p := &c.Preview
	p.Format = strings.ToLower(p.Format)
	switch p.Format {
	case "":
		p.Format = "webp"
	case "webp", "tga":
	default:
		return fmt.Errorf("config: preview format %q, want webp or tga", p.Format)
	}
	if p.FileName == "" {
		p.FileName = "preview." + p.Format
	}
	if p.Size <= 0 {
		p.Size = 256
	}
	if p.Supersample <= 0 {
		p.Supersample = 2
	}
	return nil
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	out, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config: expand %s: %w", path, err)
	}
	return out, nil
}

// detectDataDir looks for a dataset directory next to the executable or the
// working directory, falling back to the working directory itself.
func detectDataDir() string {
	var bases []string
	if exe, _ := os.Executable(); exe != "" {
		dir := filepath.Dir(exe)
		bases = append(bases, dir, filepath.Dir(dir))
	}
	cwd, _ := os.Getwd()
	bases = append(bases, cwd)

	for _, base := range bases {
		for _, name := range []string{"dataset", "data"} {
			candidate := filepath.Join(base, name)
			if st, err := os.Stat(candidate); err == nil && st.IsDir() {
				return candidate
			}
		}
	}
	return cwd
}

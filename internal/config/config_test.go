package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-urdf/internal/logging"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := map[string]string{
		"c.json": `{"data_dir": "/srv/partnet", "workers": 3, "mesh_ext": "glb",
		            "preview": {"enabled": true, "format": "tga"}, "logging": {"level": "debug"}}`,
		"c.yaml": "data_dir: /srv/partnet\nworkers: 3\nmesh_ext: glb\npreview:\n  enabled: true\n  format: tga\nlogging:\n  level: debug\n",
		"c.toml": "data_dir = \"/srv/partnet\"\nworkers = 3\nmesh_ext = \"glb\"\n[preview]\nenabled = true\nformat = \"tga\"\n[logging]\nlevel = \"debug\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, "/srv/partnet", cfg.DataDir)
			assert.Equal(t, 3, cfg.Workers)
			assert.Equal(t, "glb", cfg.MeshExt)
			assert.True(t, cfg.Preview.Enabled)
			assert.Equal(t, "tga", cfg.Preview.Format)
			assert.Equal(t, "debug", cfg.Logging.Level)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "c.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported format")

	_, err = Load(writeConfig(t, "c.json", "{"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{DataDir: dir}
	require.NoError(t, cfg.Resolve(Flags{}))

	assert.Equal(t, filepath.Join(dir, "manifest.json"), cfg.ManifestPath)
	assert.Equal(t, "mobility_v3.urdf", cfg.OutputName)
	assert.Equal(t, "gltf", cfg.MeshDir)
	assert.Equal(t, "gltf", cfg.MeshExt)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.False(t, cfg.Validate)
	assert.Equal(t, Preview{Format: "webp", FileName: "preview.webp", Size: 256, Supersample: 2}, cfg.Preview)
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{DataDir: "/from/file", Workers: 8, Assets: []string{"1", "2"}, MetricsFile: "run.prom"}
	require.NoError(t, cfg.Resolve(Flags{DataDir: "/from/flag", Asset: "7128", Workers: 2, Validate: true, Preview: true}))

	assert.Equal(t, "/from/flag", cfg.DataDir)
	assert.Equal(t, []string{"7128"}, cfg.Assets)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Validate)
	assert.True(t, cfg.Preview.Enabled)
	assert.Equal(t, filepath.Join("/from/flag", "run.prom"), cfg.MetricsFile)
}

func TestResolveExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg := Config{DataDir: "~/partnet", Logging: logging.Config{OutputPath: "~/logs/run.log"}}
	require.NoError(t, cfg.Resolve(Flags{}))
	assert.Equal(t, filepath.Join(home, "partnet"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "logs", "run.log"), cfg.Logging.OutputPath)
}

func TestResolveRejectsPreviewFormat(t *testing.T) {
	cfg := Config{DataDir: t.TempDir(), Preview: Preview{Format: "png"}}
	assert.ErrorContains(t, cfg.Resolve(Flags{}), "preview format")
}

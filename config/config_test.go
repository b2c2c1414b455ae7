package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
log:
  level: debug
  format: console
grid:
  spacing: 0.5
analysis:
  workers: 3
  pose_timeout: 30s
  work_dir: /scratch
active_site:
  cutoff: 4.5
tools:
  plip: /opt/plip/bin/plip
metrics:
  textfile: /var/lib/node_exporter/dock.prom
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 0.5, cfg.Grid.Spacing)
	assert.Equal(t, 3, cfg.Analysis.Workers)
	assert.Equal(t, 30*time.Second, cfg.Analysis.PoseTimeout)
	assert.Equal(t, "/scratch", cfg.Analysis.WorkDir)
	assert.Equal(t, 4.5, cfg.ActiveSite.Cutoff)
	assert.Equal(t, "/opt/plip/bin/plip", cfg.Tools.PLIP)
	assert.Equal(t, DefaultObprop, cfg.Tools.Obprop)
	assert.Equal(t, "/var/lib/node_exporter/dock.prom", cfg.Metrics.Textfile)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DOCK_ANALYSIS_WORKERS", "7")
	t.Setenv("DOCK_TOOLS_FPOCKET", "/usr/local/bin/fpocket")

	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Analysis.Workers)
	assert.Equal(t, "/usr/local/bin/fpocket", cfg.Tools.Fpocket)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DOCK_GRID_SPACING", "1.0")
	t.Setenv("DOCK_ANALYSIS_POSE_TIMEOUT", "45s")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Grid.Spacing)
	assert.Equal(t, 45*time.Second, cfg.Analysis.PoseTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.375, cfg.Grid.Spacing)
	assert.Equal(t, runtime.NumCPU(), cfg.Analysis.Workers)
	assert.Equal(t, DefaultPoseTimeout, cfg.Analysis.PoseTimeout)
	assert.Equal(t, os.TempDir(), cfg.Analysis.WorkDir)
	assert.Equal(t, DefaultActiveSiteCutoff, cfg.ActiveSite.Cutoff)
	assert.Equal(t, "plip", cfg.Tools.PLIP)
	assert.Empty(t, cfg.Metrics.Textfile)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative spacing", func(c *Config) { c.Grid.Spacing = -1 }},
		{"negative workers", func(c *Config) { c.Analysis.Workers = -2 }},
		{"negative timeout", func(c *Config) { c.Analysis.PoseTimeout = -time.Second }},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"negative cutoff", func(c *Config) { c.ActiveSite.Cutoff = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

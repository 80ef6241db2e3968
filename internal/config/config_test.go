package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tiaki/internal/region"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiaki.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, region.Hamilton, cfg.CouncilValue())
	assert.True(t, cfg.Checkpoint())
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, "docx", cfg.Export.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
project:
  name: Horotiu Bridge Renewal
  location: Horotiu
council: wdc
species_checkpoint: false
figures:
  selected: [waterways, monitoring]
export:
  dir: out
  format: xlsx
findings:
  path: kb/findings.cue
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Horotiu Bridge Renewal", cfg.Project.Name)
	assert.Equal(t, "Horotiu", cfg.Project.Location)
	assert.Equal(t, region.Waikato, cfg.CouncilValue())
	assert.False(t, cfg.Checkpoint())
	assert.Equal(t, []string{"waterways", "monitoring"}, cfg.Figures.Selected)
	assert.Equal(t, "out", cfg.Export.Dir)
	assert.Equal(t, "xlsx", cfg.Export.Format)
	assert.Equal(t, "kb/findings.cue", cfg.Findings.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadPartialFileAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "project:\n  name: Peacocke\n"))
	require.NoError(t, err)
	assert.Equal(t, "Peacocke", cfg.Project.Name)
	assert.Equal(t, "hamilton", cfg.Council)
	assert.True(t, cfg.Checkpoint())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"council", "council: auckland\n", "council"},
		{"format", "export:\n  format: pdf\n", "export.format"},
		{"level", "logging:\n  level: loud\n", "logging.level"},
		{"figure", "figures:\n  selected: [aerial]\n", "figures.selected"},
		{"yaml", "council: [\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Council = "x"
	cfg.Export.Format = "y"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "council")
	assert.Contains(t, err.Error(), "export.format")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for raw, want := range tests {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

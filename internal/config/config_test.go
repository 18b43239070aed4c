package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validConfigJSON = `{
    "batches": 3,
    "trials": 500,
    "workers": 4,
    "seed": 1234,
    "debug_logging": true,
    "export_dir": "out",
    "export_format": "json"
}`

var validConfigYAML = `
batches: 2
trials: 100
`

func setupTestConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Batches)
	assert.Equal(t, 10_000, cfg.TrialsPerBatch)
	assert.Equal(t, 1, cfg.Workers)
	assert.Zero(t, cfg.Seed)
	assert.False(t, cfg.DebugLogging)
	assert.Empty(t, cfg.ExportDir)
	assert.Equal(t, "csv", cfg.ExportFormat)
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "json",
			file:    "config.json",
			content: validConfigJSON,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3, cfg.Batches)
				assert.Equal(t, 500, cfg.TrialsPerBatch)
				assert.Equal(t, 4, cfg.Workers)
				assert.Equal(t, uint64(1234), cfg.Seed)
				assert.True(t, cfg.DebugLogging)
				assert.Equal(t, "out", cfg.ExportDir)
				assert.Equal(t, "json", cfg.ExportFormat)
			},
		},
		{
			name:    "yaml keeps defaults for missing keys",
			file:    "config.yaml",
			content: validConfigYAML,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Batches)
				assert.Equal(t, 100, cfg.TrialsPerBatch)
				assert.Equal(t, 1, cfg.Workers)
			},
		},
		{
			name:    "invalid json syntax",
			file:    "config.json",
			content: "{invalid json",
			wantErr: true,
		},
		{
			name:    "zero batches",
			file:    "config.json",
			content: `{"batches": 0}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setupTestConfig(t, tt.file, tt.content)
			cfg, err := LoadConfig(path, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := setupTestConfig(t, "config.json", validConfigJSON)
	t.Setenv("BETSIM_WORKERS", "8")
	t.Setenv("BETSIM_SEED", "77")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, uint64(77), cfg.Seed)
	assert.Equal(t, 3, cfg.Batches)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	t.Setenv("BETSIM_TRIALS", "300")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--trials=50", "--debug", "--export-format=JSON"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.TrialsPerBatch)
	assert.True(t, cfg.DebugLogging)
	assert.Equal(t, "json", cfg.ExportFormat)
	assert.Equal(t, 10, cfg.Batches, "unset flags fall back to defaults")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		check   func(*testing.T, Config)
	}{
		{
			name: "valid",
			cfg:  Config{Batches: 1, TrialsPerBatch: 1, Workers: 2, ExportFormat: "csv"},
		},
		{
			name:    "no batches",
			cfg:     Config{Batches: 0, TrialsPerBatch: 1},
			wantErr: ErrInvalidBatches,
		},
		{
			name:    "no trials",
			cfg:     Config{Batches: 1, TrialsPerBatch: 0},
			wantErr: ErrInvalidTrials,
		},
		{
			name: "workers default to one",
			cfg:  Config{Batches: 1, TrialsPerBatch: 1, Workers: -3},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 1, c.Workers)
				assert.Equal(t, "csv", c.ExportFormat)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}

	bad := Config{Batches: 1, TrialsPerBatch: 1, ExportFormat: "xml"}
	assert.Error(t, bad.validate())
}

func TestSimOptions(t *testing.T) {
	cfg := Config{Batches: 2, TrialsPerBatch: 30, Workers: 3, Seed: 5}
	opts := cfg.SimOptions()
	assert.Equal(t, 2, opts.Batches)
	assert.Equal(t, 30, opts.TrialsPerBatch)
	assert.Equal(t, 3, opts.Workers)
	assert.Equal(t, uint64(5), opts.Seed)
}

// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/betsim/internal/sim"
)

// Config holds run settings. Game odds are fixed and deliberately absent.
type Config struct {
	Batches        int    `mapstructure:"batches"`
	TrialsPerBatch int    `mapstructure:"trials"`
	Workers        int    `mapstructure:"workers"`
	Seed           uint64 `mapstructure:"seed"`
	DebugLogging   bool   `mapstructure:"debug_logging"`
	ExportDir      string `mapstructure:"export_dir"`
	ExportFormat   string `mapstructure:"export_format"`
}

const (
	DefaultBatches        = sim.DefaultBatches
	DefaultTrialsPerBatch = sim.DefaultTrialsPerBatch
	DefaultWorkers        = sim.DefaultWorkers
	DefaultExportFormat   = "csv"

	EnvPrefix = "BETSIM"
)

var (
	ErrInvalidBatches = errors.New("batches must be positive")
	ErrInvalidTrials  = errors.New("trials must be positive")
)

// flag name -> config key
var flagKeys = map[string]string{
	"batches":       "batches",
	"trials":        "trials",
	"workers":       "workers",
	"seed":          "seed",
	"debug":         "debug_logging",
	"export-dir":    "export_dir",
	"export-format": "export_format",
}

// RegisterFlags adds the run flags to fs. Pass fs to LoadConfig afterwards.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (json, yaml or toml)")
	fs.Int("batches", DefaultBatches, "number of batches to report")
	fs.Int("trials", DefaultTrialsPerBatch, "trials per batch")
	fs.Int("workers", DefaultWorkers, "goroutines sharing the trials of a batch")
	fs.Uint64("seed", 0, "master seed, 0 draws one from the OS")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("export-dir", "", "write results to this directory")
	fs.String("export-format", DefaultExportFormat, "export format: csv or json")
}

// LoadConfig resolves settings from defaults, the optional file at path,
// BETSIM_* environment variables and fs, in increasing precedence.
// Both path and fs may be empty.
func LoadConfig(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"batches":       DefaultBatches,
		"trials":        DefaultTrialsPerBatch,
		"workers":       DefaultWorkers,
		"seed":          0,
		"debug_logging": false,
		"export_dir":    "",
		"export_format": DefaultExportFormat,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks required fields and applies defaults if necessary.
func (c *Config) validate() error {
	if c.Batches <= 0 {
		return ErrInvalidBatches
	}
	if c.TrialsPerBatch <= 0 {
		return ErrInvalidTrials
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	c.ExportFormat = strings.ToLower(strings.TrimSpace(c.ExportFormat))
	if c.ExportFormat == "" {
		c.ExportFormat = DefaultExportFormat
	}
	if c.ExportFormat != "csv" && c.ExportFormat != "json" {
		return fmt.Errorf("invalid export_format %q", c.ExportFormat)
	}
	return nil
}

// SimOptions converts the run settings into driver options.
func (c *Config) SimOptions() sim.Options {
	return sim.Options{
		Batches:        c.Batches,
		TrialsPerBatch: c.TrialsPerBatch,
		Workers:        c.Workers,
		Seed:           c.Seed,
	}
}

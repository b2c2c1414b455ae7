// Package config loads the engine settings from an optional YAML file and
// DOCK_* environment variables.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tikz/dock/gridbox"
	"github.com/tikz/dock/logging"
)

const envPrefix = "DOCK"

const (
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultPoseTimeout      = 2 * time.Minute
	DefaultActiveSiteCutoff = 5.0
	DefaultPLIP             = "plip"
	DefaultObprop           = "obprop"
	DefaultFpocket          = "fpocket"
)

type Config struct {
	Log        logging.Config   `mapstructure:"log"`
	Grid       GridConfig       `mapstructure:"grid"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	ActiveSite ActiveSiteConfig `mapstructure:"active_site"`
	Tools      ToolsConfig      `mapstructure:"tools"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type GridConfig struct {
	Spacing float64 `mapstructure:"spacing"` // Å per grid point
}

type AnalysisConfig struct {
	Workers     int           `mapstructure:"workers"`
	PoseTimeout time.Duration `mapstructure:"pose_timeout"`
	WorkDir     string        `mapstructure:"work_dir"`
}

type ActiveSiteConfig struct {
	Cutoff float64 `mapstructure:"cutoff"` // Å
}

// ToolsConfig holds the external executables.
type ToolsConfig struct {
	PLIP    string `mapstructure:"plip"`
	Obprop  string `mapstructure:"obprop"`
	Fpocket string `mapstructure:"fpocket"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"` // empty disables the export
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// bound keys reach Unmarshal without a config file
	for _, k := range []string{
		"log.level", "log.format",
		"grid.spacing",
		"analysis.workers", "analysis.pose_timeout", "analysis.work_dir",
		"active_site.cutoff",
		"tools.plip", "tools.obprop", "tools.fpocket",
		"metrics.textfile",
	} {
		_ = v.BindEnv(k)
	}
	return v
}

// Load reads the YAML file at path, merges DOCK_* environment overrides,
// applies defaults and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from DOCK_* environment variables only,
// e.g. DOCK_ANALYSIS_WORKERS or DOCK_TOOLS_PLIP.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-value fields of cfg. Explicit values are kept.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Grid.Spacing == 0 {
		cfg.Grid.Spacing = gridbox.DefaultSpacing
	}

	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = runtime.NumCPU()
	}
	if cfg.Analysis.PoseTimeout == 0 {
		cfg.Analysis.PoseTimeout = DefaultPoseTimeout
	}
	if cfg.Analysis.WorkDir == "" {
		cfg.Analysis.WorkDir = os.TempDir()
	}

	if cfg.ActiveSite.Cutoff == 0 {
		cfg.ActiveSite.Cutoff = DefaultActiveSiteCutoff
	}

	if cfg.Tools.PLIP == "" {
		cfg.Tools.PLIP = DefaultPLIP
	}
	if cfg.Tools.Obprop == "" {
		cfg.Tools.Obprop = DefaultObprop
	}
	if cfg.Tools.Fpocket == "" {
		cfg.Tools.Fpocket = DefaultFpocket
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Grid.Spacing <= 0 {
		return fmt.Errorf("grid.spacing must be > 0, got %g", c.Grid.Spacing)
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be >= 1, got %d", c.Analysis.Workers)
	}
	if c.Analysis.PoseTimeout <= 0 {
		return fmt.Errorf("analysis.pose_timeout must be > 0, got %s", c.Analysis.PoseTimeout)
	}
	if c.ActiveSite.Cutoff <= 0 {
		return fmt.Errorf("active_site.cutoff must be > 0, got %g", c.ActiveSite.Cutoff)
	}
	return nil
}

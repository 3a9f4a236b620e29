package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// Config is the top-level scorecard configuration. It is built once per run
// and passed into each pipeline component; nothing mutates it afterwards.
type Config struct {
	Concurrency int            `mapstructure:"concurrency"`
	IgnoreDirs  []string       `mapstructure:"ignore_dirs"`
	Weights     Weights        `mapstructure:"weights"`
	Gates       GateThresholds `mapstructure:"gates"`
	Output      Output         `mapstructure:"output"`
}

// Weights defines the maximum points per category. With the defaults they
// sum to 100; overriding them shifts how much each category counts.
type Weights struct {
	Structure    float64 `mapstructure:"structure"`
	Quality      float64 `mapstructure:"quality"`
	Performance  float64 `mapstructure:"performance"`
	Testing      float64 `mapstructure:"testing"`
	Security     float64 `mapstructure:"security"`
	DevExp       float64 `mapstructure:"devexp"`
	Completeness float64 `mapstructure:"completeness"`
}

// GateThresholds defines the default quality-gate thresholds. Per-category
// gate thresholds are derived from the category weight via the scale factors.
type GateThresholds struct {
	OverallMin  float64 `mapstructure:"overall_min"`
	OverallWarn float64 `mapstructure:"overall_warn"`
	MinScale    float64 `mapstructure:"min_scale"`
	WarnScale   float64 `mapstructure:"warn_scale"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("ignore_dirs", project.DefaultIgnoreDirs)
	v.SetDefault("weights.structure", DefaultWeights.Structure)
	v.SetDefault("weights.quality", DefaultWeights.Quality)
	v.SetDefault("weights.performance", DefaultWeights.Performance)
	v.SetDefault("weights.testing", DefaultWeights.Testing)
	v.SetDefault("weights.security", DefaultWeights.Security)
	v.SetDefault("weights.devexp", DefaultWeights.DevExp)
	v.SetDefault("weights.completeness", DefaultWeights.Completeness)
	v.SetDefault("gates.overall_min", DefaultGateThresholds.OverallMin)
	v.SetDefault("gates.overall_warn", DefaultGateThresholds.OverallWarn)
	v.SetDefault("gates.min_scale", DefaultGateThresholds.MinScale)
	v.SetDefault("gates.warn_scale", DefaultGateThresholds.WarnScale)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Definitions returns the active category definitions with the configured
// weights applied, in registration order.
func (c *Config) Definitions() []category.Definition {
	weights := map[category.Key]float64{
		category.Structure:    c.Weights.Structure,
		category.Quality:      c.Weights.Quality,
		category.Performance:  c.Weights.Performance,
		category.Testing:      c.Weights.Testing,
		category.Security:     c.Weights.Security,
		category.DevExp:       c.Weights.DevExp,
		category.Completeness: c.Weights.Completeness,
	}

	defs := category.DefaultDefinitions()
	for i := range defs {
		if w, ok := weights[defs[i].Key]; ok && w > 0 {
			defs[i].MaxScore = w
		}
	}
	return defs
}

// DBPath returns the full path to the SQLite history database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}

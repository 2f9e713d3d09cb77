package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// ChartsDir is where plot/overview write PNG artifacts.
	ChartsDir string `mapstructure:"charts_dir" yaml:"charts_dir"`
	// GroupColumn is the default partition column for group/plot/summarize.
	GroupColumn string `mapstructure:"group_column" yaml:"group_column"`
	// ExportFormat is the default output format (text or yaml).
	ExportFormat string `mapstructure:"export_format" yaml:"export_format"`

	// Chart size in inches; zero falls back to per-chart defaults.
	ChartWidthIn  float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`

	// Summary report defaults
	SampleRows   int  `mapstructure:"sample_rows" yaml:"sample_rows"`
	Correlations bool `mapstructure:"correlations" yaml:"correlations"`
	Outliers     bool `mapstructure:"outliers" yaml:"outliers"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.ecoflux/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".ecoflux")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("ECOFLUX")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("charts_dir", "charts")
	v.SetDefault("group_column", "Ecosystem")
	v.SetDefault("export_format", "text")
	v.SetDefault("chart_width_in", 0.0)
	v.SetDefault("chart_height_in", 0.0)
	v.SetDefault("sample_rows", 5)
	v.SetDefault("correlations", false)
	v.SetDefault("outliers", false)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".ecoflux")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

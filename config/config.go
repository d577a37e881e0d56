// Package config loads the analysis settings shared by the phicp tools.
//
// Values come, in increasing priority, from built-in defaults, an optional
// YAML file and PHICP_* environment variables (PHICP_ANALYSIS_WORKERS,
// PHICP_PLOT_FORMATS=png,svg, ...). Command-line flags are applied on top by
// each tool.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/decibelcooper/phicp/observable"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "PHICP"

// Config is the full tool configuration.
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
	Plot     PlotConfig     `mapstructure:"plot"`
}

// InputConfig selects the truth particles in proio files.
type InputConfig struct {
	Tag string `mapstructure:"tag"`
}

// AnalysisConfig controls the event loop.
type AnalysisConfig struct {
	Workers    int    `mapstructure:"workers"`
	Projection string `mapstructure:"projection"`
	Verbose    bool   `mapstructure:"verbose"`
}

// OutputConfig names the ROOT file written by phicp_truth.
type OutputConfig struct {
	File string `mapstructure:"file"`
}

// PlotConfig controls histogram binning and saved plots.
type PlotConfig struct {
	Bins    int      `mapstructure:"bins"`
	Formats []string `mapstructure:"formats"`
	Width   float64  `mapstructure:"width"`  // cm
	Height  float64  `mapstructure:"height"` // cm
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{Tag: "Particle"},
		Analysis: AnalysisConfig{
			Workers:    runtime.NumCPU(),
			Projection: observable.ProjectAfterBoost.String(),
		},
		Output: OutputConfig{File: "phicp.root"},
		Plot: PlotConfig{
			Bins:    50,
			Formats: []string{"png", "pdf"},
			Width:   10,
			Height:  7.5,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input.tag", d.Input.Tag)
	v.SetDefault("analysis.workers", d.Analysis.Workers)
	v.SetDefault("analysis.projection", d.Analysis.Projection)
	v.SetDefault("analysis.verbose", d.Analysis.Verbose)
	v.SetDefault("output.file", d.Output.File)
	v.SetDefault("plot.bins", d.Plot.Bins)
	v.SetDefault("plot.formats", d.Plot.Formats)
	v.SetDefault("plot.width", d.Plot.Width)
	v.SetDefault("plot.height", d.Plot.Height)
}

// Load reads path, if not empty, and the environment over the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var plotFormats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "pdf": true,
	"svg": true, "eps": true, "tex": true, "tif": true, "tiff": true,
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Analysis.Workers < 1 {
		errs = append(errs, fmt.Errorf("analysis.workers must be positive, got %d", c.Analysis.Workers))
	}
	if _, err := observable.ParseProjection(c.Analysis.Projection); err != nil {
		errs = append(errs, fmt.Errorf("analysis.projection: %w", err))
	}
	if c.Plot.Bins < 1 {
		errs = append(errs, fmt.Errorf("plot.bins must be positive, got %d", c.Plot.Bins))
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		errs = append(errs, fmt.Errorf("plot size must be positive, got %vx%v", c.Plot.Width, c.Plot.Height))
	}
	for _, f := range c.Plot.Formats {
		if !plotFormats[strings.ToLower(f)] {
			errs = append(errs, fmt.Errorf("plot.formats: unsupported format %q", f))
		}
	}
	if c.Output.File == "" {
		errs = append(errs, errors.New("output.file must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Library returns the observable library selected by the configuration.
func (c *Config) Library() observable.Library {
	p, err := observable.ParseProjection(c.Analysis.Projection)
	if err != nil {
		return observable.Default
	}
	return observable.Library{Projection: p}
}

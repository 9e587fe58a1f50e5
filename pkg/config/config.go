// Package config holds the run configuration, loaded from YAML and
// overridden by command-line flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/sweep"
)

type Config struct {
	Dataset      string  `yaml:"dataset"`
	FeatureCount int     `yaml:"feature_count"`
	LabelColumn  int     `yaml:"label_column"`
	TestFraction float64 `yaml:"test_fraction"`
	KValues      []int   `yaml:"k_values"`
	// Seed fixes the shuffle; 0 draws a fresh seed every run.
	Seed    int64  `yaml:"seed"`
	Workers int    `yaml:"workers"`
	Scaling string `yaml:"scaling"`
	// Plot, when set, is the PNG path of the accuracy-by-k chart.
	Plot string `yaml:"plot"`
	// History, when set, is the SQLite file that records every sweep.
	History  string `yaml:"history"`
	LogLevel string `yaml:"log_level"`
	// Strict fails on the first malformed record instead of skipping it.
	Strict bool `yaml:"strict"`
}

// Default returns the configuration for the UCI iris dataset.
func Default() Config {
	iris := data.IrisOptions()
	return Config{
		Dataset:      "./iris/iris.data",
		FeatureCount: iris.FeatureCount,
		LabelColumn:  iris.LabelCol,
		TestFraction: 0.3,
		KValues:      append([]int(nil), sweep.DefaultKs...),
		Workers:      1,
		Scaling:      "none",
		LogLevel:     "info",
	}
}

// Load reads path over the defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that can be checked before the dataset is read.
func (c Config) Validate() error {
	if c.FeatureCount < 1 {
		return fmt.Errorf("%w: feature_count must be positive", data.ErrInvalidArgument)
	}
	if c.LabelColumn < 0 {
		return fmt.Errorf("%w: label_column must be non-negative", data.ErrInvalidArgument)
	}
	if !(c.TestFraction > 0 && c.TestFraction < 1) {
		return fmt.Errorf("%w: test_fraction %v outside (0, 1)", data.ErrInvalidArgument, c.TestFraction)
	}
	if len(c.KValues) == 0 {
		return fmt.Errorf("%w: k_values is empty", data.ErrInvalidArgument)
	}
	for _, k := range c.KValues {
		if k < 1 {
			return fmt.Errorf("%w: k=%d must be at least 1", data.ErrInvalidArgument, k)
		}
	}
	switch c.Scaling {
	case "", "none", "standard", "minmax", "robust":
	default:
		return fmt.Errorf("%w: unknown scaling %q", data.ErrInvalidArgument, c.Scaling)
	}
	return nil
}

// DataOptions returns the CSV layout described by c.
func (c Config) DataOptions() data.Options {
	return data.Options{FeatureCount: c.FeatureCount, LabelCol: c.LabelColumn}
}

// Marshal renders c as YAML, for dumping the effective configuration.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Package config loads run settings for the medial command from a YAML
// file. Flags override file values; file values override the defaults.
package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/chazu/medial/pkg/containment"
	"github.com/chazu/medial/pkg/delaunay"
	"github.com/chazu/medial/pkg/engine"
	"github.com/chazu/medial/pkg/kernel"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a run.
type Config struct {
	Workers    int           `yaml:"workers"`
	Weld       float64       `yaml:"weld"`
	Axis       string        `yaml:"axis"`
	SuperScale float64       `yaml:"super_scale"`
	Strict     bool          `yaml:"strict"`
	Cells      int           `yaml:"cells"`
	Timeout    time.Duration `yaml:"timeout"`
	LogLevel   string        `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Workers:    1,
		Axis:       containment.Skewed.String(),
		SuperScale: delaunay.DefaultSuperScale,
		Cells:      kernel.DefaultCells,
		Timeout:    engine.EvalTimeout,
		LogLevel:   "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: open %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Decode parses YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	switch {
	case c.Workers < 0:
		return errors.Errorf("workers must be >= 0, got %d", c.Workers)
	case c.Weld < 0:
		return errors.Errorf("weld must be >= 0, got %g", c.Weld)
	case c.SuperScale <= 1:
		return errors.Errorf("super_scale must be > 1, got %g", c.SuperScale)
	case c.Cells <= 0:
		return errors.Errorf("cells must be positive, got %d", c.Cells)
	case c.Timeout <= 0:
		return errors.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch strings.ToLower(c.Axis) {
	case "skewed", "x", "y", "z":
	default:
		return errors.Errorf("unknown axis %q", c.Axis)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// RayAxis returns the parsed ray axis.
func (c Config) RayAxis() containment.Axis {
	return containment.ParseAxis(strings.ToLower(c.Axis))
}

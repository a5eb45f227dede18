// Package config defines the lvroot job file and how it is loaded.
//
// A job file lists root-finding jobs plus the global convergence policy and
// output settings. YAML (.yaml, .yml) and TOML (.toml) are both accepted:
//
//	tolerance: 1e-8
//	max_iterations: 200
//	jobs:
//	  - name: sqrt2
//	    method: newton
//	    f: "x**2 - 2"
//	    x0: 1
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvroot/rootfind"
)

const (
	// DefaultF is the target function used when none is given.
	DefaultF = "exp(x) - 5*x**2"

	// DefaultG is the fixed-point iteration function used when none is given.
	DefaultG = "(x + 2)**(1/3)"

	FormatCSV    = "csv"
	FormatJSONL  = "jsonl"
	FormatSQLite = "sqlite"
)

// SearchPaths are tried in order by Load when no explicit path is given.
var SearchPaths = []string{"lvroot.yaml", "lvroot.yml", "lvroot.toml"}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full lvroot configuration.
type Config struct {
	Tolerance     float64   `yaml:"tolerance" toml:"tolerance"`
	MaxIterations int       `yaml:"max_iterations" toml:"max_iterations"`
	Workers       int       `yaml:"workers" toml:"workers"`
	OutputDir     string    `yaml:"output_dir" toml:"output_dir"`
	Formats       []string  `yaml:"formats" toml:"formats"`
	Log           LogConfig `yaml:"log" toml:"log"`
	Jobs          []Job     `yaml:"jobs" toml:"jobs"`
}

// LogConfig selects the logger level and handler.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Job is one root-finding run. Unset tolerance and iteration cap inherit the
// global values; unset seeds fall back to the method defaults.
type Job struct {
	Name          string   `yaml:"name" toml:"name" json:"name"`
	Method        string   `yaml:"method" toml:"method" json:"method"`
	F             string   `yaml:"f,omitempty" toml:"f,omitempty" json:"f,omitempty"`
	G             string   `yaml:"g,omitempty" toml:"g,omitempty" json:"g,omitempty"`
	DF            string   `yaml:"df,omitempty" toml:"df,omitempty" json:"df,omitempty"`
	A             *float64 `yaml:"a,omitempty" toml:"a,omitempty" json:"a,omitempty"`
	B             *float64 `yaml:"b,omitempty" toml:"b,omitempty" json:"b,omitempty"`
	X0            *float64 `yaml:"x0,omitempty" toml:"x0,omitempty" json:"x0,omitempty"`
	X1            *float64 `yaml:"x1,omitempty" toml:"x1,omitempty" json:"x1,omitempty"`
	Tolerance     float64  `yaml:"tolerance,omitempty" toml:"tolerance,omitempty" json:"tolerance,omitempty"`
	MaxIterations int      `yaml:"max_iterations,omitempty" toml:"max_iterations,omitempty" json:"max_iterations,omitempty"`
}

// Seeds holds the starting inputs of a job.
type Seeds struct {
	A, B, X0, X1 float64
}

// DefaultSeeds returns the starting inputs used when a job leaves them unset.
func DefaultSeeds(m rootfind.Method) Seeds {
	switch m {
	case rootfind.MethodBisection, rootfind.MethodRegulaFalsi:
		return Seeds{A: 0, B: 1}
	case rootfind.MethodFixedPoint:
		return Seeds{X0: 1.5}
	case rootfind.MethodNewton:
		return Seeds{X0: 0.5}
	case rootfind.MethodSecant:
		return Seeds{X0: 0.5, X1: 1}
	default:
		return Seeds{}
	}
}

// Float returns a pointer to v, for building jobs in code.
func Float(v float64) *float64 { return &v }

// DefaultConfig returns the built-in configuration: one job per method on
// f(x) = exp(x) - 5x², each with its default seeds.
func DefaultConfig() *Config {
	cfg := &Config{
		Tolerance:     rootfind.DefaultTolerance,
		MaxIterations: rootfind.DefaultMaxIterations,
		Workers:       runtime.NumCPU(),
		OutputDir:     ".",
		Formats:       []string{FormatCSV, FormatJSONL},
		Log:           LogConfig{Level: "info", Format: "text"},
	}
	for _, m := range rootfind.Methods() {
		s := DefaultSeeds(m)
		j := Job{Name: m.String(), Method: m.String(), F: DefaultF}
		switch m {
		case rootfind.MethodBisection, rootfind.MethodRegulaFalsi:
			j.A, j.B = Float(s.A), Float(s.B)
		case rootfind.MethodFixedPoint:
			j.F, j.G, j.X0 = "", DefaultG, Float(s.X0)
		case rootfind.MethodNewton:
			j.X0 = Float(s.X0)
		case rootfind.MethodSecant:
			j.X0, j.X1 = Float(s.X0), Float(s.X1)
		}
		cfg.Jobs = append(cfg.Jobs, j)
	}

	return cfg
}

// Load reads configuration from path. With an empty path it tries
// SearchPaths in order and returns DefaultConfig when none exists.
// Keys missing from the file keep their default values; a file that lists
// jobs replaces the default jobs entirely.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		found := false
		for _, name := range SearchPaths {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// decode unmarshals data into cfg by file extension. Slices are cleared
// first so decoders never merge file entries into the default ones.
func decode(path string, data []byte, cfg *Config) error {
	jobs, formats := cfg.Jobs, cfg.Formats
	cfg.Jobs, cfg.Formats = nil, nil

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return err
	}

	if len(cfg.Jobs) == 0 {
		cfg.Jobs = jobs
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = formats
	}

	return nil
}

// Resolved returns a copy of j with the global policy and method defaults
// filled in. Expressions are never defaulted. An unknown method leaves the
// seeds untouched; Validate reports it.
func (j Job) Resolved(c *Config) Job {
	if j.Tolerance == 0 {
		j.Tolerance = c.Tolerance
	}
	if j.MaxIterations == 0 {
		j.MaxIterations = c.MaxIterations
	}
	m, err := rootfind.ParseMethod(j.Method)
	if err != nil {
		return j
	}
	if j.Name == "" {
		j.Name = m.String()
	}
	s := DefaultSeeds(m)
	if j.A == nil {
		j.A = Float(s.A)
	}
	if j.B == nil {
		j.B = Float(s.B)
	}
	if j.X0 == nil {
		j.X0 = Float(s.X0)
	}
	if j.X1 == nil {
		j.X1 = Float(s.X1)
	}

	return j
}

// Seeds returns the job's starting inputs; unset values read as zero.
func (j Job) Seeds() Seeds {
	return Seeds{A: deref(j.A), B: deref(j.B), X0: deref(j.X0), X1: deref(j.X1)}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}

	return *p
}

// Validate checks the global policy and every job, reporting all problems
// at once.
func (c *Config) Validate() error {
	var errs []error
	if !positive(c.Tolerance) {
		errs = append(errs, fmt.Errorf("tolerance must be a positive finite number, got %g", c.Tolerance))
	}
	if c.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	for _, f := range c.Formats {
		if f != FormatCSV && f != FormatJSONL && f != FormatSQLite {
			errs = append(errs, fmt.Errorf("unknown output format %q", f))
		}
	}
	for i, j := range c.Jobs {
		if err := j.Resolved(c).validate(); err != nil {
			errs = append(errs, fmt.Errorf("job %d (%s): %w", i, j.Name, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (j Job) validate() error {
	m, err := rootfind.ParseMethod(j.Method)
	if err != nil {
		return err
	}
	if m == rootfind.MethodFixedPoint {
		if strings.TrimSpace(j.G) == "" {
			return errors.New("fixed-point needs g")
		}
	} else if strings.TrimSpace(j.F) == "" {
		return fmt.Errorf("%s needs f", m)
	}
	if !positive(j.Tolerance) {
		return fmt.Errorf("tolerance must be a positive finite number, got %g", j.Tolerance)
	}
	if j.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", j.MaxIterations)
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

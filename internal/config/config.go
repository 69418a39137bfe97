// Package config loads the benchmark configuration from HCL files.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Config drives a gridbench run.
type Config struct {
	// Maps lists the .map files to benchmark.
	Maps []string `hcl:"maps,optional"`
	// Runs is the number of random searches per map.
	Runs int `hcl:"runs,optional"`
	// Seed initializes the coordinate RNG; runs with equal seeds draw
	// identical start/target sequences.
	Seed int64 `hcl:"seed,optional"`
	// BufferSize caps returned path lengths.
	BufferSize int `hcl:"buffer_size,optional"`
	// MetricsAddr, when set, exposes prometheus metrics on that address
	// for the duration of the run.
	MetricsAddr string `hcl:"metrics_addr,optional"`
	// Single switches to one fixed search instead of random sampling.
	Single *Single `hcl:"single,block"`
}

// Single pins one search to fixed coordinates on one map.
type Single struct {
	Map     string `hcl:"map"`
	StartX  int    `hcl:"start_x"`
	StartY  int    `hcl:"start_y"`
	TargetX int    `hcl:"target_x"`
	TargetY int    `hcl:"target_y"`
}

// Default returns the built-in configuration. The seed matches the
// historical benchmark seed so published numbers stay reproducible.
func Default() *Config {
	return &Config{
		Runs:       100,
		Seed:       19840827,
		BufferSize: 10000,
	}
}

// Load parses an HCL config file. Absent attributes keep their defaults,
// and the file may refer to them through the "defaults" object, e.g.
// runs = defaults.runs * 2.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config %s: %s", path, diags.Error())
	}

	cfg := Default()
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"runs":        cty.NumberIntVal(int64(cfg.Runs)),
				"seed":        cty.NumberIntVal(cfg.Seed),
				"buffer_size": cty.NumberIntVal(int64(cfg.BufferSize)),
			}),
		},
	}
	if diags := gohcl.DecodeBody(file.Body, evalCtx, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode config %s: %s", path, diags.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations no run mode can use.
func (c *Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer_size must not be negative, got %d", c.BufferSize)
	}
	if c.Single == nil && len(c.Maps) == 0 {
		return fmt.Errorf("no maps configured and no single block given")
	}
	return nil
}

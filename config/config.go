// Package config groups the simulator's run-time options and tolerances,
// loaded from YAML the way the teacher's defaults.yaml configuration is
// (strict field checking so a typo'd key fails loudly instead of silently
// being ignored).
package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/strskel/strskel/geom"
)

// Options groups the three recognized run-time options (spec.md §6
// "Configuration options").
type Options struct {
	InternalOnly bool `yaml:"internal_only"`
	Shrink       bool `yaml:"shrink"`
	Pause        bool `yaml:"pause"`
}

// TolerancesConfig is the YAML-facing mirror of geom.Tolerances; a single
// process-wide epsilon is the spec's stated model, but the three axes
// (time/distance/angle) are still configurable independently since the
// teacher's own config structs group related-but-distinct numeric knobs
// rather than collapsing them into one constant.
type TolerancesConfig struct {
	Time  float64 `yaml:"time"`
	Dist  float64 `yaml:"dist"`
	Angle float64 `yaml:"angle"`
}

func (c TolerancesConfig) ToTolerances() geom.Tolerances {
	t := geom.DefaultTolerances()
	if c.Time != 0 {
		t.Time = c.Time
	}
	if c.Dist != 0 {
		t.Dist = c.Dist
	}
	if c.Angle != 0 {
		t.Angle = c.Angle
	}
	return t
}

// RunConfig is the full YAML document the CLI loads (spec.md §6).
type RunConfig struct {
	Options     Options          `yaml:"options"`
	Tolerances  TolerancesConfig `yaml:"tolerances"`
	RayHorizon  float64          `yaml:"ray_horizon"`
}

// DefaultRunConfig returns a RunConfig with the spec's documented defaults:
// shrink enabled, internal_only and pause disabled, default tolerances.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Options:    Options{Shrink: true},
		Tolerances: TolerancesConfig{Time: 1e-8, Dist: 1e-8, Angle: 1e-8},
		RayHorizon: 1000.0,
	}
}

// Load parses a RunConfig from path with strict field checking: an unknown
// YAML key is a load error, not a silently-ignored typo.
func Load(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

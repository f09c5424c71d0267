// Package config loads and saves simulation scenarios as YAML and ships a
// preset table of reference outbreaks per variant.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPopulation = 1000.0
	DefaultHorizon    = 160.0
	DefaultStep       = 1.0
	DefaultBeta       = 0.3
	DefaultGamma      = 0.1
	DefaultTolerance  = 1e-6
)

type Config struct {
	Variant    string             `yaml:"variant"`
	Population float64            `yaml:"population"`
	Horizon    float64            `yaml:"horizon"`
	Step       float64            `yaml:"step"`
	Integrator string             `yaml:"integrator"`
	Tolerance  float64            `yaml:"tolerance"`
	Params     map[string]float64 `yaml:"params"`
	Initial    map[string]float64 `yaml:"initial"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:    "sir",
		Population: DefaultPopulation,
		Horizon:    DefaultHorizon,
		Step:       DefaultStep,
		Integrator: "dopri45",
		Tolerance:  DefaultTolerance,
		Params:     map[string]float64{"beta": DefaultBeta, "gamma": DefaultGamma},
		Initial:    map[string]float64{"I": 1},
	}
}

// Clone deep-copies the config, including the parameter and initial-count
// maps, so callers can modify the copy freely.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = make(map[string]float64, len(c.Params))
	for k, v := range c.Params {
		out.Params[k] = v
	}
	out.Initial = make(map[string]float64, len(c.Initial))
	for k, v := range c.Initial {
		out.Initial[k] = v
	}
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps           = 100
	DefaultControlDuration = 0.1
)

// Config drives a manifoldctl run: which scenario to build and how to
// exercise it.
type Config struct {
	Scenario        string  `yaml:"scenario"`
	Steps           int     `yaml:"steps"`
	ControlDuration float64 `yaml:"control_duration"`
	Seed            int64   `yaml:"seed"`
	Export          string  `yaml:"export"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:        "pendulum",
		Steps:           DefaultSteps,
		ControlDuration: DefaultControlDuration,
	}
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

func (c *Config) Validate() error {
	if c.Scenario == "" {
		return fmt.Errorf("config: scenario must be set")
	}
	if c.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Steps)
	}
	if c.ControlDuration <= 0 {
		return fmt.Errorf("config: control_duration must be positive, got %f", c.ControlDuration)
	}
	return nil
}

// Package config loads the YAML configuration for the taskpool CLI
// demonstrator, in the style of ChuLiYu-raft-recovery's configuration
// layer: a plain struct with yaml tags, defaults normalized after load.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level CLI configuration.
type Config struct {
	// Workers is the fixed worker count passed to pool.NewPool.
	Workers int `yaml:"workers"`

	// JobsFile is the path to a YAML file listing the demo jobs to run.
	JobsFile string `yaml:"jobs_file"`

	// Metrics configures the optional Prometheus HTTP endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig configures the /metrics HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		Workers:  4,
		JobsFile: "",
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Load reads and parses a YAML configuration file at path, applying
// Default for any zero-valued field left unset by the file.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Workers < 1 {
		cfg.Workers = Default().Workers
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = Default().Metrics.Addr
	}

	return cfg, nil
}

// Job is a single demonstration unit of work loaded from a jobs file:
// sleep for DelayMS milliseconds, then either succeed (producing Payload)
// or fail if FailWith is non-empty.
type Job struct {
	Name     string `yaml:"name"`
	DelayMS  int    `yaml:"delay_ms"`
	Payload  string `yaml:"payload"`
	FailWith string `yaml:"fail_with"`
}

// LoadJobs reads a YAML file containing a top-level list of Job entries.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read jobs file %s: %w", path, err)
	}

	var jobs []Job
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("config: parse jobs file %s: %w", path, err)
	}

	return jobs, nil
}

// Package config loads the runtime's configuration surface: circuit
// breaker thresholds, the router's minimum routing confidence, and the
// set of enabled workflow names (spec §6). Grounded on the teacher's
// core/config.go Validate-then-default-fill constructor idiom, scaled
// down to the much smaller surface this runtime actually exposes.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/khushparag/agentic-learning-coach/orchestration"
)

// BreakerConfig holds the circuit breaker defaults applied alike to every
// agent's breaker; there is no per-agent override (spec §4.2).
type BreakerConfig struct {
	FailureThreshold    int `yaml:"failure_threshold"`
	RecoveryTimeoutSecs int `yaml:"recovery_timeout_seconds"`
	SuccessThreshold    int `yaml:"success_threshold"`
	DefaultTimeoutSecs  int `yaml:"default_timeout_seconds"`
}

// RouterConfig holds the intent router's configuration (spec §4.3).
type RouterConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
}

// WorkflowsConfig names which catalog workflows the orchestrator will
// accept (spec §4.5.1, §6). An empty Enabled list means "all of them".
type WorkflowsConfig struct {
	Enabled []string `yaml:"enabled"`
}

// Config is the full, validated configuration surface.
type Config struct {
	Breaker   BreakerConfig   `yaml:"breaker"`
	Router    RouterConfig    `yaml:"router"`
	Workflows WorkflowsConfig `yaml:"workflows"`
}

// RecoveryTimeout returns the breaker recovery timeout as a Duration.
func (c BreakerConfig) RecoveryTimeout() time.Duration {
	return time.Duration(c.RecoveryTimeoutSecs) * time.Second
}

// DefaultTimeout returns the breaker default call timeout as a Duration.
func (c BreakerConfig) DefaultTimeout() time.Duration {
	return time.Duration(c.DefaultTimeoutSecs) * time.Second
}

// Default returns the spec-mandated defaults (spec §6):
// failure_threshold=5, recovery_timeout=60s, success_threshold=3,
// default_timeout=30s, router.min_confidence=0.3, all three catalog
// workflows enabled.
func Default() *Config {
	return &Config{
		Breaker: BreakerConfig{
			FailureThreshold:    5,
			RecoveryTimeoutSecs: 60,
			SuccessThreshold:    3,
			DefaultTimeoutSecs:  30,
		},
		Router: RouterConfig{
			MinConfidence: 0.3,
		},
		Workflows: WorkflowsConfig{
			Enabled: []string{
				orchestration.WorkflowNewLearnerOnboarding,
				orchestration.WorkflowExerciseSubmission,
				orchestration.WorkflowResourceDiscovery,
			},
		},
	}
}

// Load reads a YAML file at path and returns a validated Config, with
// any field left unset (zero-valued) in the file filled from Default().
// A missing file is not an error: Load returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.applyOverrides(loaded)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides copies every non-zero field from loaded onto c, leaving
// c's defaults in place for anything the file didn't specify.
func (c *Config) applyOverrides(loaded *Config) {
	if loaded.Breaker.FailureThreshold != 0 {
		c.Breaker.FailureThreshold = loaded.Breaker.FailureThreshold
	}
	if loaded.Breaker.RecoveryTimeoutSecs != 0 {
		c.Breaker.RecoveryTimeoutSecs = loaded.Breaker.RecoveryTimeoutSecs
	}
	if loaded.Breaker.SuccessThreshold != 0 {
		c.Breaker.SuccessThreshold = loaded.Breaker.SuccessThreshold
	}
	if loaded.Breaker.DefaultTimeoutSecs != 0 {
		c.Breaker.DefaultTimeoutSecs = loaded.Breaker.DefaultTimeoutSecs
	}
	if loaded.Router.MinConfidence != 0 {
		c.Router.MinConfidence = loaded.Router.MinConfidence
	}
	if len(loaded.Workflows.Enabled) > 0 {
		c.Workflows.Enabled = loaded.Workflows.Enabled
	}
}

// applyDefaults fills any field left invalid (negative/out-of-range)
// after overrides with the spec default, mirroring the teacher's
// Validate-then-default-fill constructor pattern rather than rejecting
// partially-specified config outright.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Breaker.FailureThreshold <= 0 {
		c.Breaker.FailureThreshold = def.Breaker.FailureThreshold
	}
	if c.Breaker.RecoveryTimeoutSecs <= 0 {
		c.Breaker.RecoveryTimeoutSecs = def.Breaker.RecoveryTimeoutSecs
	}
	if c.Breaker.SuccessThreshold <= 0 {
		c.Breaker.SuccessThreshold = def.Breaker.SuccessThreshold
	}
	if c.Breaker.DefaultTimeoutSecs <= 0 {
		c.Breaker.DefaultTimeoutSecs = def.Breaker.DefaultTimeoutSecs
	}
	if c.Router.MinConfidence <= 0 || c.Router.MinConfidence > 1 {
		c.Router.MinConfidence = def.Router.MinConfidence
	}
	if len(c.Workflows.Enabled) == 0 {
		c.Workflows.Enabled = def.Workflows.Enabled
	}
}

// Validate checks that every field is within the bounds spec §6 mandates.
func (c *Config) Validate() error {
	if c.Breaker.FailureThreshold <= 0 {
		return fmt.Errorf("breaker.failure_threshold must be positive, got %d", c.Breaker.FailureThreshold)
	}
	if c.Breaker.RecoveryTimeoutSecs <= 0 {
		return fmt.Errorf("breaker.recovery_timeout_seconds must be positive, got %d", c.Breaker.RecoveryTimeoutSecs)
	}
	if c.Breaker.SuccessThreshold <= 0 {
		return fmt.Errorf("breaker.success_threshold must be positive, got %d", c.Breaker.SuccessThreshold)
	}
	if c.Breaker.DefaultTimeoutSecs <= 0 {
		return fmt.Errorf("breaker.default_timeout_seconds must be positive, got %d", c.Breaker.DefaultTimeoutSecs)
	}
	if c.Router.MinConfidence < 0 || c.Router.MinConfidence > 1 {
		return fmt.Errorf("router.min_confidence must be in [0,1], got %f", c.Router.MinConfidence)
	}
	if len(c.Workflows.Enabled) == 0 {
		return fmt.Errorf("workflows.enabled must not be empty")
	}
	for _, name := range c.Workflows.Enabled {
		if _, ok := orchestration.Builders[name]; !ok {
			return fmt.Errorf("workflows.enabled names unknown workflow %q", name)
		}
	}
	return nil
}

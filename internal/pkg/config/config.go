package config

import (
	"fmt"
	"os"
	"time"

	"golang-ethmonitor/internal/pkg/logging"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// MonitorConfig holds the supervisor and coordinator timings
type MonitorConfig struct {
	InitialPollInterval time.Duration `yaml:"initial_poll_interval"`
	PollInterval        time.Duration `yaml:"poll_interval"`
	RetryInterval       time.Duration `yaml:"retry_interval"`
	AttemptTimeout      time.Duration `yaml:"attempt_timeout"`
	RequestTimeout      time.Duration `yaml:"request_timeout"`
	MaxRenewFailures    int           `yaml:"max_renew_failures"`
	FatalSleep          time.Duration `yaml:"fatal_sleep"`
	DownOnExit          bool          `yaml:"down_on_exit"`
}

// GateConfig locates the radio state file consulted once at startup,
// e.g. /sys/class/gpio/gpio94/value. An empty path always monitors.
type GateConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig locates the status store; an empty path keeps it in memory
type StoreConfig struct {
	Path string `yaml:"path"`
}

// DNSConfig controls resolv.conf generation
type DNSConfig struct {
	ResolvConf string `yaml:"resolv_conf"`
}

// MetricsConfig controls the Prometheus endpoint; an empty listen address disables it
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Config represents the main configuration structure
type Config struct {
	Logging logging.LogConfig `yaml:"logging"`
	Monitor MonitorConfig     `yaml:"monitor"`
	Gate    GateConfig        `yaml:"gate"`
	Store   StoreConfig       `yaml:"store"`
	DNS     DNSConfig         `yaml:"dns"`
	Metrics MetricsConfig     `yaml:"metrics"`
}

// Default returns the configuration used when no file is given.
// The 11s retry interval avoids beating against round-numbered periodic broadcasts.
func Default() Config {
	return Config{
		Logging: logging.LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Monitor: MonitorConfig{
			InitialPollInterval: 5 * time.Second,
			PollInterval:        30 * time.Second,
			RetryInterval:       11 * time.Second,
			AttemptTimeout:      60 * time.Second,
			RequestTimeout:      15 * time.Second,
			MaxRenewFailures:    3,
			FatalSleep:          600 * time.Second,
		},
	}
}

// Load loads configuration from a YAML file and fills unset fields from Default.
// An empty path returns Default.
func Load(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err := mergo.Merge(&config, Default()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	intervals := map[string]time.Duration{
		"monitor.initial_poll_interval": c.Monitor.InitialPollInterval,
		"monitor.poll_interval":         c.Monitor.PollInterval,
		"monitor.retry_interval":        c.Monitor.RetryInterval,
		"monitor.attempt_timeout":       c.Monitor.AttemptTimeout,
		"monitor.request_timeout":       c.Monitor.RequestTimeout,
	}
	for name, d := range intervals {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if c.Monitor.RequestTimeout > c.Monitor.AttemptTimeout {
		return fmt.Errorf("monitor.request_timeout (%s) must not exceed monitor.attempt_timeout (%s)",
			c.Monitor.RequestTimeout, c.Monitor.AttemptTimeout)
	}

	if c.Monitor.MaxRenewFailures < 1 {
		return fmt.Errorf("monitor.max_renew_failures must be at least 1, got %d", c.Monitor.MaxRenewFailures)
	}

	if c.Monitor.FatalSleep < 0 {
		return fmt.Errorf("monitor.fatal_sleep must not be negative, got %s", c.Monitor.FatalSleep)
	}

	return nil
}

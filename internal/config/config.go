package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Probe backends
const (
	ProberExec = "exec"
	ProberICMP = "icmp"
)

// Config holds all configuration for the latency monitor. It is built once
// at startup and passed by value afterwards.
type Config struct {
	Target       string        `yaml:"target"`
	Count        int           `yaml:"count"`
	Interval     time.Duration `yaml:"interval"`
	LogPath      string        `yaml:"log"`
	Prober       string        `yaml:"prober"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	Privileged   bool          `yaml:"privileged"`
	MetricsAddr  string        `yaml:"metrics_addr"`
	LogLevel     string        `yaml:"log_level"`
	Mail         Mail          `yaml:"mail"`
}

// Mail holds the alert transport settings
type Mail struct {
	Host      string        `yaml:"host"`
	Port      int           `yaml:"port"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	Sender    string        `yaml:"sender"`
	Recipient string        `yaml:"recipient"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Target:   "8.8.8.8",
		Count:    100,
		Interval: time.Hour,
		LogPath:  "latency_monitor.log",
		Prober:   ProberExec,
		LogLevel: "info",
		Mail: Mail{
			Host: "smtp.gmail.com",
			Port: 465,
		},
	}
}

// LoadFile merges the YAML file at path over cfg. Keys missing from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("target must be specified")
	}
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.LogPath == "" {
		return fmt.Errorf("log path cannot be empty")
	}
	if c.Prober != ProberExec && c.Prober != ProberICMP {
		return fmt.Errorf("prober must be %q or %q, got %q", ProberExec, ProberICMP, c.Prober)
	}
	if c.ProbeTimeout < 0 {
		return fmt.Errorf("probe timeout cannot be negative")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Mail.Host == "" {
		return fmt.Errorf("mail host cannot be empty")
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail port must be between 1 and 65535")
	}
	if c.Mail.Timeout < 0 {
		return fmt.Errorf("mail timeout cannot be negative")
	}
	return nil
}

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds the command-line values before they are merged into a Config
type Flags struct {
	ConfigPath string
	EnvFile    string

	Target          string
	IntervalSeconds int
	Count           int
	LogPath         string
	Prober          string
	ProbeTimeout    time.Duration
	Privileged      bool
	MetricsAddr     string
	LogLevel        string
}

// Register binds the flags to fs with defaults taken from Default
func (f *Flags) Register(fs *pflag.FlagSet) {
	def := Default()

	fs.StringVar(&f.ConfigPath, "config", "", "Optional YAML configuration file")
	fs.StringVar(&f.EnvFile, "env-file", ".env", "Environment file holding mail credentials")

	fs.StringVarP(&f.Target, "target", "t", def.Target, "Target IP address or hostname to ping")
	fs.IntVarP(&f.IntervalSeconds, "interval", "i", int(def.Interval/time.Second), "Sleep interval between ping tests in seconds")
	fs.IntVarP(&f.Count, "count", "c", def.Count, "Number of ICMP packets to send per test")
	fs.StringVarP(&f.LogPath, "log", "l", def.LogPath, "Path to the log file")
	fs.StringVar(&f.Prober, "prober", def.Prober, "Probe backend: exec (system ping) or icmp (native)")
	fs.DurationVar(&f.ProbeTimeout, "probe-timeout", def.ProbeTimeout, "Upper bound for one probe batch, 0 disables")
	fs.BoolVar(&f.Privileged, "privileged", def.Privileged, "Use raw sockets for the icmp prober")
	fs.StringVar(&f.MetricsAddr, "metrics-addr", def.MetricsAddr, "Address for the Prometheus endpoint, empty disables it")
	fs.StringVar(&f.LogLevel, "log-level", def.LogLevel, "Diagnostic log level")
}

// Apply copies the flags the user set explicitly over cfg, so values from a
// configuration file survive unless overridden on the command line
func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("target") {
		cfg.Target = f.Target
	}
	if fs.Changed("interval") {
		cfg.Interval = time.Duration(f.IntervalSeconds) * time.Second
	}
	if fs.Changed("count") {
		cfg.Count = f.Count
	}
	if fs.Changed("log") {
		cfg.LogPath = f.LogPath
	}
	if fs.Changed("prober") {
		cfg.Prober = f.Prober
	}
	if fs.Changed("probe-timeout") {
		cfg.ProbeTimeout = f.ProbeTimeout
	}
	if fs.Changed("privileged") {
		cfg.Privileged = f.Privileged
	}
	if fs.Changed("metrics-addr") {
		cfg.MetricsAddr = f.MetricsAddr
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
}

// Build assembles the final configuration: defaults, then the optional
// configuration file, then explicit flags, then mail credentials from the
// environment
func (f *Flags) Build(fs *pflag.FlagSet) (Config, error) {
	cfg := Default()

	if f.ConfigPath != "" {
		if err := LoadFile(f.ConfigPath, &cfg); err != nil {
			return cfg, err
		}
	}

	f.Apply(fs, &cfg)

	if err := ApplyEnv(&cfg, f.EnvFile); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

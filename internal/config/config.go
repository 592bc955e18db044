// Package config loads the helper and daemon configuration.
//
// Precedence, lowest to highest: built-in defaults, the YAML config file,
// environment variables (DEVPLUG_*). A .env / .env.local file can supply
// environment variables for development setups; existing process environment
// always wins. The loaded Config is an immutable snapshot handed to the
// commands; nothing re-reads configuration mid-invocation.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/devplug/internal/errors"
)

// Config is the full helper/daemon configuration.
type Config struct {
	// GlobalDir is the process-wide metadata store (features/, index.db).
	GlobalDir string `yaml:"global_dir"`

	// MetadataRoot is where per-device metadata directories live when the
	// dispatcher does not hand the helper an explicit directory.
	MetadataRoot string `yaml:"metadata_root"`

	// ProbeTool is the path of the external probe binary.
	ProbeTool string `yaml:"probe_tool"`

	// Verbosity: "error", "warn", "info" or "debug".
	Verbosity string `yaml:"verbosity"`

	Daemon   DaemonConfig   `yaml:"daemon"`
	Announce AnnounceConfig `yaml:"announce"`
}

// DaemonConfig configures the maintenance daemon.
type DaemonConfig struct {
	// SweepInterval is the pause between stale-links sweep passes.
	SweepInterval time.Duration `yaml:"sweep_interval"`

	// MetricsAddr is the listen address for the Prometheus endpoint;
	// empty disables it.
	MetricsAddr string `yaml:"metrics_addr"`

	// Watch enables the fsnotify watch of the global store.
	Watch bool `yaml:"watch"`
}

// AnnounceConfig configures the optional NATS event broadcast.
type AnnounceConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		GlobalDir:    "/run/devplug",
		MetadataRoot: "/run/devplug/data",
		ProbeTool:    "/sbin/probefs",
		Verbosity:    "warn",
		Daemon: DaemonConfig{
			SweepInterval: 5 * time.Minute,
			MetricsAddr:   "",
			Watch:         false,
		},
		Announce: AnnounceConfig{
			Enabled: false,
			URL:     "nats://127.0.0.1:4222",
			Subject: "devplug.events",
		},
	}
}

// Load reads the configuration file at path (missing file is fine: defaults
// apply) and overlays environment variables.
func Load(path string) (*Config, error) {
	loadEnvFile()

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrap(err, errors.KindConfig, "parse configuration file").
					WithContext("path", path)
			}
		case os.IsNotExist(err):
			// No file; defaults plus environment.
		default:
			return nil, errors.IO("read configuration file", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Verbosity {
	case "error", "warn", "info", "debug":
	default:
		return errors.ConfigInvalid("verbosity",
			fmt.Sprintf("unknown level %q", c.Verbosity))
	}
	if c.GlobalDir == "" {
		return errors.ConfigInvalid("global_dir", "must not be empty")
	}
	if c.Daemon.SweepInterval <= 0 {
		return errors.ConfigInvalid("daemon.sweep_interval", "must be positive")
	}
	return nil
}

package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by applyEnv.
const (
	EnvGlobalDir     = "DEVPLUG_GLOBAL_DIR"
	EnvMetadataRoot  = "DEVPLUG_METADATA_ROOT"
	EnvProbeTool     = "DEVPLUG_PROBE_TOOL"
	EnvVerbosity     = "DEVPLUG_VERBOSITY"
	EnvSweepInterval = "DEVPLUG_SWEEP_INTERVAL"
	EnvMetricsAddr   = "DEVPLUG_METRICS_ADDR"
	EnvAnnounceURL   = "DEVPLUG_ANNOUNCE_URL"
)

// loadEnvFile loads environment variables from .env/.env.local files. It
// stops at the first successfully parsed file; existing process environment
// variables are never overwritten.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			slog.Debug("loaded environment file", "path", envPath)
			return
		}
	}
}

// applyEnv overlays DEVPLUG_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvGlobalDir); v != "" {
		cfg.GlobalDir = v
	}
	if v := os.Getenv(EnvMetadataRoot); v != "" {
		cfg.MetadataRoot = v
	}
	if v := os.Getenv(EnvProbeTool); v != "" {
		cfg.ProbeTool = v
	}
	if v := os.Getenv(EnvVerbosity); v != "" {
		cfg.Verbosity = v
	}
	if v := os.Getenv(EnvSweepInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Daemon.SweepInterval = d
		}
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		cfg.Daemon.MetricsAddr = v
	}
	if v := os.Getenv(EnvAnnounceURL); v != "" {
		cfg.Announce.Enabled = true
		cfg.Announce.URL = v
	}
}

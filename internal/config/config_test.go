package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/devplug/internal/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Defaults().GlobalDir, cfg.GlobalDir)
	require.Equal(t, 5*time.Minute, cfg.Daemon.SweepInterval)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
global_dir: /run/devplug-test
metadata_root: /run/devplug-test/data
verbosity: info
daemon:
  sweep_interval: 30s
  metrics_addr: "127.0.0.1:9310"
announce:
  enabled: true
  url: nats://localhost:4222
  subject: devplug.test
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/run/devplug-test", cfg.GlobalDir)
	require.Equal(t, "info", cfg.Verbosity)
	require.Equal(t, 30*time.Second, cfg.Daemon.SweepInterval)
	require.Equal(t, "127.0.0.1:9310", cfg.Daemon.MetricsAddr)
	require.True(t, cfg.Announce.Enabled)
	require.Equal(t, "devplug.test", cfg.Announce.Subject)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global_dir: /from-file\n"), 0o644))
	t.Setenv(EnvGlobalDir, "/from-env")
	t.Setenv(EnvVerbosity, "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/from-env", cfg.GlobalDir)
	require.Equal(t, "debug", cfg.Verbosity)
}

func TestLoad_AnnounceURLEnablesAnnounce(t *testing.T) {
	t.Setenv(EnvAnnounceURL, "nats://broker:4222")
	cfg, err := Load("")
	require.NoError(t, err)
	require.True(t, cfg.Announce.Enabled)
	require.Equal(t, "nats://broker:4222", cfg.Announce.URL)
}

func TestLoad_InvalidVerbosity(t *testing.T) {
	t.Setenv(EnvVerbosity, "chatty")
	_, err := Load("")
	require.Error(t, err)
	require.Equal(t, errors.KindConfig, errors.KindOf(err))
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global_dir: [broken\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	require.Equal(t, errors.KindConfig, errors.KindOf(err))
}

func TestLogLevel(t *testing.T) {
	for verbosity, want := range map[string]string{
		"debug": "DEBUG",
		"info":  "INFO",
		"warn":  "WARN",
		"error": "ERROR",
	} {
		cfg := Defaults()
		cfg.Verbosity = verbosity
		require.Equal(t, want, cfg.LogLevel().String(), "verbosity %s", verbosity)
	}
}

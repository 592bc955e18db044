package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/devplug/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.Defaults()
	cfg.GlobalDir = filepath.Join(tmp, "global")
	cfg.MetadataRoot = filepath.Join(tmp, "data")
	cfg.Announce.Enabled = false
	return &cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func resetAddFlags() {
	CLI.Add.Link = nil
	CLI.Add.Tag = nil
	CLI.Add.Import = nil
	CLI.Add.Probe = false
}

func TestRunAdd_ImportOnlyCreatesMetadataDir(t *testing.T) {
	cfg := testConfig(t)
	t.Setenv("SUBSYSTEM", "block")
	t.Setenv("MAJOR", "8")
	t.Setenv("MINOR", "1")
	t.Setenv("ID_FS_TYPE", "ext4")

	resetAddFlags()
	CLI.Add.Import = []string{"ID_FS_TYPE"}

	require.NoError(t, runAdd(context.Background(), cfg, discardLogger()))

	// No --link was given, yet the directory exists and the property is
	// recorded.
	data, err := os.ReadFile(filepath.Join(cfg.MetadataRoot, "b8:1", "properties"))
	require.NoError(t, err)
	require.Equal(t, "ID_FS_TYPE=ext4\n", string(data))
}

func TestRunAdd_TagOnly(t *testing.T) {
	cfg := testConfig(t)
	t.Setenv("SUBSYSTEM", "net")
	t.Setenv("IFINDEX", "3")

	resetAddFlags()
	CLI.Add.Tag = []string{"seat"}

	require.NoError(t, runAdd(context.Background(), cfg, discardLogger()))

	_, err := os.Stat(filepath.Join(cfg.MetadataRoot, "n3", "tags", "seat"))
	require.NoError(t, err)
}

func TestRunAdd_ExplicitMetadataDir(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(t.TempDir(), "meta")
	t.Setenv("SUBSYSTEM", "block")
	t.Setenv("MAJOR", "8")
	t.Setenv("MINOR", "2")
	t.Setenv(EnvMetadataDir, dir)
	t.Setenv("ID_FS_UUID", "abc-123")

	resetAddFlags()
	CLI.Add.Import = []string{"ID_FS_UUID"}

	require.NoError(t, runAdd(context.Background(), cfg, discardLogger()))

	data, err := os.ReadFile(filepath.Join(dir, "properties"))
	require.NoError(t, err)
	require.Equal(t, "ID_FS_UUID=abc-123\n", string(data))
}

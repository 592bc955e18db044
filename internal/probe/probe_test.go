package probe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/devplug/internal/errors"
)

// writeTool writes an executable fake probe tool and returns its path.
func writeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestFlavor_RegularIsSimple(t *testing.T) {
	tool := writeTool(t, t.TempDir(), "probefs", "exit 0")
	require.Equal(t, FlavorSimple, New(tool).Flavor())
}

func TestFlavor_SymlinkIsExport(t *testing.T) {
	dir := t.TempDir()
	real := writeTool(t, dir, "probefs2", "exit 0")
	link := filepath.Join(dir, "probefs")
	require.NoError(t, os.Symlink(real, link))
	require.Equal(t, FlavorExport, New(link).Flavor())
}

func TestFlavor_MissingToolDefaultsSimple(t *testing.T) {
	require.Equal(t, FlavorSimple, New(filepath.Join(t.TempDir(), "nope")).Flavor())
}

func TestProbe_SimpleFlavor(t *testing.T) {
	tool := writeTool(t, t.TempDir(), "probefs",
		`echo "$1: TYPE=\"ext4\" UUID=\"abc-123\" "`)

	lines, err := New(tool).Probe(context.Background(), "/dev/sda1")
	require.NoError(t, err)
	require.Equal(t, []string{`TYPE="ext4"`, `UUID="abc-123"`}, lines)
}

func TestProbe_ExportFlavorPassthrough(t *testing.T) {
	dir := t.TempDir()
	real := writeTool(t, dir, "probefs2",
		`test "$1" = "--export" || exit 2
printf 'TYPE="ext4"\nUUID="abc-123"\n'`)
	link := filepath.Join(dir, "probefs")
	require.NoError(t, os.Symlink(real, link))

	lines, err := New(link).Probe(context.Background(), "/dev/sda1")
	require.NoError(t, err)
	require.Equal(t, []string{`TYPE="ext4"`, `UUID="abc-123"`}, lines)
}

func TestProbe_ExitCodeForwarded(t *testing.T) {
	tool := writeTool(t, t.TempDir(), "probefs", "exit 4")

	_, err := New(tool).Probe(context.Background(), "/dev/sda1")
	require.Error(t, err)
	require.Equal(t, errors.KindProbe, errors.KindOf(err))

	var he *errors.HelperError
	require.ErrorAs(t, err, &he)
	require.Equal(t, 4, he.ExitCode)
}

func TestProbe_ToolMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope")).Probe(context.Background(), "/dev/sda1")
	require.Error(t, err)
	require.Equal(t, errors.KindProbe, errors.KindOf(err))
}

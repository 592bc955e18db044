package metastore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddProperty_DuplicatesKept(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "meta")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	s := New(filepath.Join(tmp, "global"))

	require.NoError(t, s.AddProperty("KEY", "1", dir))
	require.NoError(t, s.AddProperty("KEY", "2", dir))

	lines := readLines(t, filepath.Join(dir, "properties"))
	require.Equal(t, []string{"KEY=1", "KEY=2"}, lines)

	// Last occurrence wins for a conforming consumer.
	resolved := map[string]string{}
	for _, line := range lines {
		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok)
		resolved[k] = v
	}
	require.Equal(t, "2", resolved["KEY"])
}

func TestAddProperties(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "meta")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	s := New(filepath.Join(tmp, "global"))

	values := map[string]string{
		"ID_FS_TYPE": "ext4",
		"ID_FS_UUID": "abc-123",
		"ID_EMPTY":   "",
	}
	lookup := func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}

	err := s.AddProperties(dir, []string{"ID_FS_TYPE", "ID_EMPTY", "ID_MISSING", "ID_FS_UUID"}, lookup)
	require.NoError(t, err)

	// Empty and absent names are skipped, order of the rest preserved.
	require.Equal(t,
		[]string{"ID_FS_TYPE=ext4", "ID_FS_UUID=abc-123"},
		readLines(t, filepath.Join(dir, "properties")))
}

func TestAddProperties_StopsOnFirstFailure(t *testing.T) {
	tmp := t.TempDir()
	// dir is a regular file: every append must fail.
	dir := filepath.Join(tmp, "meta")
	require.NoError(t, os.WriteFile(dir, nil, 0o644))
	s := New(filepath.Join(tmp, "global"))

	lookup := func(name string) (string, bool) { return "v", true }
	err := s.AddProperties(dir, []string{"A", "B"}, lookup)
	require.Error(t, err)
	require.Contains(t, err.Error(), "record property")
}

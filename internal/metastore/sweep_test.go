package metastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSweepLinks_AllDead(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "meta")
	s := New(filepath.Join(tmp, "global"))

	require.NoError(t, s.RecordLink("/dev/sda1", filepath.Join(tmp, "a"), dir))
	require.NoError(t, s.RecordLink("/dev/sda1", filepath.Join(tmp, "b"), dir))
	require.NoError(t, s.RemoveLinks(dir))

	rewritten, err := s.SweepLinks(dir)
	require.NoError(t, err)
	require.True(t, rewritten)

	data, err := os.ReadFile(filepath.Join(dir, "links"))
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestSweepLinks_LiveTargetKeepsEverything(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "meta")
	s := New(filepath.Join(tmp, "global"))

	require.NoError(t, s.RecordLink("/dev/sda1", filepath.Join(tmp, "dead"), dir))
	require.NoError(t, s.RemoveLinks(dir))
	require.NoError(t, s.RecordLink("/dev/sda1", filepath.Join(tmp, "live"), dir))

	before, err := os.ReadFile(filepath.Join(dir, "links"))
	require.NoError(t, err)

	rewritten, err := s.SweepLinks(dir)
	require.NoError(t, err)
	require.False(t, rewritten)

	after, err := os.ReadFile(filepath.Join(dir, "links"))
	require.NoError(t, err)
	require.Equal(t, before, after, "file must stay byte-for-byte untouched")
}

func TestSweepLinks_NoFile(t *testing.T) {
	s := New(t.TempDir())
	rewritten, err := s.SweepLinks(filepath.Join(t.TempDir(), "meta"))
	require.NoError(t, err)
	require.False(t, rewritten)
}

func TestSweepLinks_EmptyFile(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "meta")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "links"), nil, 0o644))
	s := New(filepath.Join(tmp, "global"))

	rewritten, err := s.SweepLinks(dir)
	require.NoError(t, err)
	require.False(t, rewritten)
}

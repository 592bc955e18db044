package metastore

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/logfields"
)

// SetFeature unconditionally creates the feature marker in the global
// store, creating features/ (and the global directory) if needed. Setting
// an already-set feature succeeds and leaves it set.
func (s *Store) SetFeature(name string) error {
	fd := filepath.Join(s.global, featuresDir)
	if err := os.MkdirAll(fd, 0o755); err != nil {
		return errors.IO("create features directory", fd, err)
	}

	marker := filepath.Join(fd, name)
	f, err := os.OpenFile(marker, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.IO("create feature marker", marker, err)
	}
	if err := f.Close(); err != nil {
		return errors.IO("close feature marker", marker, err)
	}

	s.rec.IncFeatureSet()
	s.logger.Debug("set feature", logfields.Feature(name))
	return nil
}

// TestFeature reports whether the feature marker exists. Marker content is
// ignored; presence is the record.
func (s *Store) TestFeature(name string) bool {
	_, err := os.Lstat(filepath.Join(s.global, featuresDir, name))
	return err == nil
}

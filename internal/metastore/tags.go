package metastore

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/logfields"
)

// AddTag creates dir/tags/tagName as an empty marker, a no-op success when
// the marker already exists. Marker content is never written or read;
// presence is the whole record. When deviceID is non-empty and the store has
// a reverse index attached, the (tag, device) pair is additionally indexed;
// the marker file stays authoritative either way.
func (s *Store) AddTag(ctx context.Context, tagName, dir, deviceID string) error {
	td := filepath.Join(dir, tagsDir)
	if err := os.MkdirAll(td, 0o755); err != nil {
		return errors.IO("create tags directory", td, err)
	}

	marker := filepath.Join(td, tagName)
	f, err := os.OpenFile(marker, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	switch {
	case err == nil:
		if cerr := f.Close(); cerr != nil {
			return errors.IO("close tag marker", marker, cerr)
		}
		s.rec.IncTagAdded()
	case os.IsExist(err):
		// Already tagged; idempotent success.
	default:
		return errors.IO("create tag marker", marker, err)
	}

	if deviceID != "" && s.index != nil {
		if err := s.index.Add(ctx, tagName, deviceID); err != nil {
			// The index is derived data; losing an entry degrades the
			// reverse lookup, not the store.
			s.logger.Warn("tag index update failed",
				logfields.Tag(tagName), logfields.DeviceID(deviceID), logfields.Error(err))
		}
	}

	s.logger.Debug("added tag", logfields.Tag(tagName), logfields.DeviceID(deviceID))
	return nil
}

// HasTag reports whether the tag marker exists in dir.
func (s *Store) HasTag(tagName, dir string) bool {
	_, err := os.Lstat(filepath.Join(dir, tagsDir, tagName))
	return err == nil
}

// DropDevice removes deviceID from the reverse index, typically on a remove
// event. Marker files under per-device directories are untouched; they go
// away with the directory itself.
func (s *Store) DropDevice(ctx context.Context, deviceID string) error {
	if s.index == nil || deviceID == "" {
		return nil
	}
	return s.index.RemoveDevice(ctx, deviceID)
}

// DevicesForTag queries the reverse index for all devices carrying tagName.
func (s *Store) DevicesForTag(ctx context.Context, tagName string) ([]string, error) {
	if s.index == nil {
		return nil, errors.New(errors.KindConfig, "no tag index attached")
	}
	return s.index.DevicesForTag(ctx, tagName)
}

package metastore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/logfields"
	"git.home.luguber.info/inful/devplug/internal/metrics"
)

// RecordLink creates the symlink target -> source and, on success only,
// appends target as a new line to dir/links. Missing parent directories of
// target are created first; an existing entry at target is replaced. A
// failed link creation appends nothing, so the log never names a link that
// was not made. This is the one operation that creates the metadata
// directory on demand.
func (s *Store) RecordLink(source, target, dir string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		s.rec.IncLinkRecorded(metrics.ResultFailure)
		return errors.IO("create link parent directories", target, err)
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		s.rec.IncLinkRecorded(metrics.ResultFailure)
		return errors.IO("replace existing entry", target, err)
	}
	if err := os.Symlink(source, target); err != nil {
		s.rec.IncLinkRecorded(metrics.ResultFailure)
		return errors.IO("create symlink", target, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.rec.IncLinkRecorded(metrics.ResultFailure)
		return errors.IO("create metadata directory", dir, err)
	}
	if err := appendLine(filepath.Join(dir, linksFile), target); err != nil {
		s.rec.IncLinkRecorded(metrics.ResultFailure)
		return err
	}

	s.rec.IncLinkRecorded(metrics.ResultSuccess)
	s.logger.Debug("recorded link",
		logfields.Source(source), logfields.Target(target), logfields.MetadataDir(dir))
	return nil
}

// RemoveLinks reads dir/links line by line and unlinks each named path.
// Targets already absent count as removed. The links file itself is never
// modified or truncated here: the log is strictly additive across the
// directory's lifetime (see SweepLinks for the out-of-band compaction).
func (s *Store) RemoveLinks(dir string) error {
	f, err := os.Open(filepath.Join(dir, linksFile))
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing was ever recorded; a valid terminal state.
			s.logger.Debug("no links recorded", logfields.MetadataDir(dir))
			return nil
		}
		return errors.IO("open links file", filepath.Join(dir, linksFile), err)
	}
	defer f.Close()

	removed := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		target := strings.TrimSpace(scanner.Text())
		if target == "" {
			continue
		}
		if err := os.Remove(target); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			s.rec.IncLinksRemoved(removed)
			return errors.IO("unlink", target, err)
		}
		removed++
	}
	if err := scanner.Err(); err != nil {
		s.rec.IncLinksRemoved(removed)
		return errors.IO("read links file", filepath.Join(dir, linksFile), err)
	}

	s.rec.IncLinksRemoved(removed)
	s.logger.Debug("removed links", logfields.MetadataDir(dir), logfields.Count(removed))
	return nil
}

// Cleanup logically clears the per-device record: links are unlinked from
// the filesystem, the directory itself stays. Deleting the directory is the
// caller's responsibility, outside this core.
func (s *Store) Cleanup(dir string) error {
	return s.RemoveLinks(dir)
}

// appendLine writes line plus newline to path with a single append-mode
// write, relying on the filesystem's append atomicity so concurrent readers
// never see a partial line.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.IO("open for append", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return errors.IO("append line", path, err)
	}
	return nil
}

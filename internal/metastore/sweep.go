package metastore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/logfields"
)

// SweepLinks compacts the append-only links log of one metadata directory.
// RemoveLinks deliberately never truncates the log, so repeated add/remove
// cycles on a reused directory accumulate stale entries; the maintenance
// daemon calls this between events to rewrite the file empty once every
// listed target is gone from the filesystem. While any target still exists
// the file is left byte-for-byte untouched, so a crash before or during the
// rewrite can never lose a not-yet-removed entry.
//
// Safe only under the dispatcher's single-writer-per-directory guarantee.
// Returns true when the file was rewritten.
func (s *Store) SweepLinks(dir string) (bool, error) {
	path := filepath.Join(dir, linksFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.IO("open links file", path, err)
	}
	defer f.Close()

	stale := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		target := strings.TrimSpace(scanner.Text())
		if target == "" {
			continue
		}
		if _, err := os.Lstat(target); err == nil {
			// A live link is still covered by this log; keep everything.
			return false, nil
		}
		stale++
	}
	if err := scanner.Err(); err != nil {
		return false, errors.IO("read links file", path, err)
	}
	if stale == 0 {
		return false, nil
	}

	if err := os.Truncate(path, 0); err != nil {
		return false, errors.IO("truncate links file", path, err)
	}
	s.rec.IncSweptLinksFiles(1)
	s.logger.Info("compacted links log",
		logfields.MetadataDir(dir), logfields.Count(stale))
	return true, nil
}

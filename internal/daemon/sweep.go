package daemon

import (
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/devplug/internal/logfields"
)

// sweep walks every per-device metadata directory under the metadata root
// and compacts links logs whose entries are all dead. Directories that
// disappear mid-walk belong to a concurrent remove-event cleanup and are
// skipped without complaint.
func (d *Daemon) sweep() error {
	start := time.Now()
	entries, err := os.ReadDir(d.cfg.MetadataRoot)
	if err != nil {
		if os.IsNotExist(err) {
			// No helper has run yet.
			return nil
		}
		return err
	}

	swept := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(d.cfg.MetadataRoot, entry.Name())
		rewritten, err := d.store.SweepLinks(dir)
		if err != nil {
			d.logger.Warn("sweep of directory failed",
				logfields.MetadataDir(dir), logfields.Error(err))
			continue
		}
		if rewritten {
			swept++
		}
	}

	elapsed := time.Since(start)
	d.rec.ObserveSweepDuration(elapsed)
	d.logger.Debug("sweep pass complete",
		logfields.Count(swept), logfields.DurationMS(float64(elapsed.Milliseconds())))
	return nil
}

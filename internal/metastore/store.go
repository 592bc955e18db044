// Package metastore is the on-disk record of everything a helper created for
// a device, enabling exact reversal on the remove event even after the
// device node itself is gone.
//
// Per-device metadata directory layout:
//
//	<dir>/
//	  links       (UTF-8 text, one absolute symlink target per line, append-only)
//	  tags/
//	    <name>    (zero-byte marker per tag)
//	  properties  (UTF-8 text, KEY=VALUE lines, append-only, duplicates allowed)
//
// Global metadata directory layout:
//
//	<globalDir>/
//	  features/
//	    <name>    (zero-byte marker per enabled feature)
//	  index.db    (derived device-to-tag reverse index, see tagindex)
//
// The formats are bit-compatible with other implementations sharing the same
// store, so nothing here may reformat or reorder them. The dispatcher
// guarantees a single writer per metadata directory; each line is written
// with one append-mode write so concurrent readers never observe a partial
// line.
package metastore

import (
	"log/slog"

	"git.home.luguber.info/inful/devplug/internal/metrics"
	"git.home.luguber.info/inful/devplug/internal/tagindex"
)

const (
	linksFile      = "links"
	propertiesFile = "properties"
	tagsDir        = "tags"
	featuresDir    = "features"
)

// Store performs idempotent record/query/cleanup operations against a global
// metadata directory and caller-supplied per-device directories.
type Store struct {
	global string
	index  *tagindex.Index
	rec    metrics.Recorder
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTagIndex attaches the device-to-tag reverse index. Without it, AddTag
// still writes marker files but the device id goes unindexed.
func WithTagIndex(idx *tagindex.Index) Option {
	return func(s *Store) { s.index = idx }
}

// WithRecorder injects a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(s *Store) { s.rec = rec }
}

// WithLogger injects a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a Store rooted at the global metadata directory. The directory
// itself is created lazily by the first feature write.
func New(globalDir string, opts ...Option) *Store {
	s := &Store{
		global: globalDir,
		rec:    metrics.NoopRecorder{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GlobalDir returns the global metadata directory the store is rooted at.
func (s *Store) GlobalDir() string {
	return s.global
}

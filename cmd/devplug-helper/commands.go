package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/devplug/internal/announce"
	"git.home.luguber.info/inful/devplug/internal/config"
	"git.home.luguber.info/inful/devplug/internal/daemon"
	"git.home.luguber.info/inful/devplug/internal/devid"
	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/event"
	"git.home.luguber.info/inful/devplug/internal/logfields"
	"git.home.luguber.info/inful/devplug/internal/metastore"
	"git.home.luguber.info/inful/devplug/internal/probe"
	"git.home.luguber.info/inful/devplug/internal/sysfs"
	"git.home.luguber.info/inful/devplug/internal/tagindex"
)

// EnvMetadataDir lets the dispatcher hand the helper an explicit per-device
// metadata directory; otherwise it is derived from the metadata root and the
// device id.
const EnvMetadataDir = "DEVPLUG_META_DIR"

// openStore builds the store with the reverse index attached. The returned
// close function is safe to defer even on partial failure.
func openStore(cfg *config.Config, logger *slog.Logger) (*metastore.Store, func(), error) {
	if err := os.MkdirAll(cfg.GlobalDir, 0o755); err != nil {
		return nil, nil, errors.IO("create global directory", cfg.GlobalDir, err)
	}
	idx, err := tagindex.Open(filepath.Join(cfg.GlobalDir, "index.db"))
	if err != nil {
		// The index is derived data; run without it rather than failing
		// the event.
		logger.Warn("tag index unavailable", logfields.Error(err))
		store := metastore.New(cfg.GlobalDir, metastore.WithLogger(logger))
		return store, func() {}, nil
	}
	store := metastore.New(cfg.GlobalDir,
		metastore.WithTagIndex(idx),
		metastore.WithLogger(logger))
	return store, func() { _ = idx.Close() }, nil
}

// metadataDir resolves the per-device metadata directory for an event.
func metadataDir(cfg *config.Config, ev event.Event, deviceID string) string {
	if dir, ok := ev.Lookup(EnvMetadataDir); ok && dir != "" {
		return dir
	}
	return filepath.Join(cfg.MetadataRoot, deviceID)
}

// announceEvent broadcasts the processed event when configured. Best-effort:
// a failed publish is logged, never fatal.
func announceEvent(ctx context.Context, cfg *config.Config, logger *slog.Logger, ev event.Event, deviceID string) {
	if !cfg.Announce.Enabled {
		return
	}
	pub, err := announce.NewPublisher(cfg.Announce.URL, cfg.Announce.Subject)
	if err != nil {
		logger.Warn("announce unavailable", logfields.Error(err))
		return
	}
	defer pub.Close()
	if err := pub.Announce(ctx, ev, deviceID); err != nil {
		logger.Warn("announce failed", logfields.Error(err))
	}
}

func runAdd(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ev := event.FromOS()
	logger = logger.With(logfields.Invocation(ev.InvocationID), logfields.Action("add"))

	id, err := devid.Compute(ev)
	if err != nil {
		return err
	}
	dir := metadataDir(cfg, ev, id)
	logger.Debug("handling add event",
		logfields.DeviceID(id), logfields.DevPath(ev.DevPath), logfields.MetadataDir(dir))

	// The add chain owns metadata directory creation; the non-link record
	// operations assume it exists.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IO("create metadata directory", dir, err)
	}

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	for _, pair := range CLI.Add.Link {
		target, source, ok := strings.Cut(pair, "=")
		if !ok || target == "" || source == "" {
			return errors.ConfigInvalid("--link", "expected TARGET=SOURCE, got "+pair)
		}
		if err := store.RecordLink(source, target, dir); err != nil {
			return err
		}
	}

	for _, tag := range CLI.Add.Tag {
		if err := store.AddTag(ctx, tag, dir, id); err != nil {
			return err
		}
	}

	if len(CLI.Add.Import) > 0 {
		if err := store.AddProperties(dir, CLI.Add.Import, ev.Lookup); err != nil {
			return err
		}
	}

	if CLI.Add.Probe {
		if err := probeIntoProperties(ctx, cfg, logger, store, ev, dir); err != nil {
			return err
		}
	}

	announceEvent(ctx, cfg, logger, ev, id)
	return nil
}

// probeIntoProperties runs the probe adapter against the event's device
// node and records every reported attribute as a device property.
func probeIntoProperties(ctx context.Context, cfg *config.Config, logger *slog.Logger, store *metastore.Store, ev event.Event, dir string) error {
	if ev.DevName == "" {
		return errors.NotFound("device node", ev.DevPath)
	}
	adapter := probe.New(cfg.ProbeTool, probe.WithLogger(logger))
	lines, err := adapter.Probe(ctx, ev.DevName)
	if err != nil {
		return err
	}
	for _, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		if err := store.AddProperty(key, value, dir); err != nil {
			return err
		}
	}
	return nil
}

func runRemove(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ev := event.FromOS()
	logger = logger.With(logfields.Invocation(ev.InvocationID), logfields.Action("remove"))

	id, err := devid.Compute(ev)
	if err != nil {
		return err
	}
	dir := metadataDir(cfg, ev, id)
	logger.Debug("handling remove event",
		logfields.DeviceID(id), logfields.MetadataDir(dir))

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Cleanup(dir); err != nil {
		return err
	}
	if err := store.DropDevice(ctx, id); err != nil {
		logger.Warn("tag index cleanup failed", logfields.Error(err))
	}

	announceEvent(ctx, cfg, logger, ev, id)
	return nil
}

func runID() error {
	id, err := devid.Compute(event.FromOS())
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func runWalk() error {
	path := CLI.Walk.Path
	printed := false

	if CLI.Walk.Parent {
		parent, err := sysfs.ParentDevice(path)
		if err != nil {
			return err
		}
		fmt.Println(parent)
		printed = true
	}
	if CLI.Walk.Driver {
		driver, err := sysfs.Driver(path)
		if err != nil {
			return err
		}
		fmt.Println(driver)
		printed = true
	}
	if CLI.Walk.Subsystem {
		subsystem, err := sysfs.Subsystem(path)
		if err != nil {
			return err
		}
		fmt.Println(subsystem)
		printed = true
	}
	if CLI.Walk.Attr != "" {
		value, err := sysfs.Attr(CLI.Walk.Attr, path)
		if err != nil {
			return err
		}
		fmt.Println(value)
		printed = true
	}
	if CLI.Walk.Attrs != "" {
		values, err := sysfs.Attrs(CLI.Walk.Attrs, path)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Println(v)
		}
		printed = true
	}

	if !printed {
		return errors.ConfigInvalid("walk",
			"one of --parent, --driver, --subsystem, --attr or --attrs is required")
	}
	return nil
}

func runProbe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	adapter := probe.New(cfg.ProbeTool, probe.WithLogger(logger))
	lines, err := adapter.Probe(ctx, CLI.Probe.Path)
	if err != nil {
		return err
	}
	if CLI.Probe.Escape {
		lines = metastore.EscapeVars(lines)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

func runTag(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	switch {
	case CLI.Tag.Add != "":
		ev := event.FromOS()
		id, err := devid.Compute(ev)
		if err != nil {
			return err
		}
		return store.AddTag(ctx, CLI.Tag.Add, metadataDir(cfg, ev, id), id)

	case CLI.Tag.Test != "":
		ev := event.FromOS()
		id, err := devid.Compute(ev)
		if err != nil {
			return err
		}
		if !store.HasTag(CLI.Tag.Test, metadataDir(cfg, ev, id)) {
			return errors.NotFound("tag "+CLI.Tag.Test, metadataDir(cfg, ev, id))
		}
		return nil

	case CLI.Tag.List != "":
		devices, err := store.DevicesForTag(ctx, CLI.Tag.List)
		if err != nil {
			return err
		}
		for _, d := range devices {
			fmt.Println(d)
		}
		return nil
	}
	return errors.ConfigInvalid("tag", "one of --add, --test or --list is required")
}

func runFeature(cfg *config.Config, logger *slog.Logger) error {
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	switch {
	case CLI.Feature.Set != "":
		return store.SetFeature(CLI.Feature.Set)
	case CLI.Feature.Test != "":
		if !store.TestFeature(CLI.Feature.Test) {
			return errors.NotFound("feature "+CLI.Feature.Test, store.GlobalDir())
		}
		return nil
	}
	return errors.ConfigInvalid("feature", "one of --set or --test is required")
}

func runDaemon(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	d := daemon.New(cfg, logger)

	if err := os.MkdirAll(cfg.GlobalDir, 0o755); err != nil {
		return errors.IO("create global directory", cfg.GlobalDir, err)
	}
	idx, err := tagindex.Open(filepath.Join(cfg.GlobalDir, "index.db"))
	if err != nil {
		return errors.Wrap(err, errors.KindIO, "open tag index")
	}
	defer idx.Close()

	store := metastore.New(cfg.GlobalDir,
		metastore.WithTagIndex(idx),
		metastore.WithRecorder(d.Recorder()),
		metastore.WithLogger(logger))
	d.AttachStore(store)

	return d.Run(ctx)
}

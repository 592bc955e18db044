// Package daemon implements the maintenance daemon: a scheduled sweep that
// compacts stale links logs, an optional watch of the global store, and the
// Prometheus metrics endpoint. The daemon never handles device events
// itself; per-event helpers remain independent short-lived processes, and
// the sweep honors the same single-writer contract the dispatcher enforces
// for them.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/devplug/internal/config"
	"git.home.luguber.info/inful/devplug/internal/metastore"
	"git.home.luguber.info/inful/devplug/internal/metrics"
)

// Daemon is the long-running maintenance service.
type Daemon struct {
	cfg      *config.Config
	store    *metastore.Store
	rec      *metrics.PrometheusRecorder
	registry *prom.Registry
	logger   *slog.Logger
}

// New creates a Daemon. The store is attached separately because it is
// constructed with the daemon's own recorder.
func New(cfg *config.Config, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prom.NewRegistry()
	registry.MustRegister(
		promcollect.NewGoCollector(),
		promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}),
	)
	return &Daemon{
		cfg:      cfg,
		rec:      metrics.NewPrometheusRecorder(registry),
		registry: registry,
		logger:   logger,
	}
}

// Recorder exposes the daemon's Prometheus recorder so the store can be
// constructed with it.
func (d *Daemon) Recorder() *metrics.PrometheusRecorder {
	return d.rec
}

// AttachStore hands the daemon the store it sweeps through.
func (d *Daemon) AttachStore(store *metastore.Store) {
	d.store = store
}

// Run blocks until ctx is canceled, driving the sweep scheduler, the
// optional store watcher and the metrics endpoint.
func (d *Daemon) Run(ctx context.Context) error {
	if d.store == nil {
		return fmt.Errorf("no store attached")
	}
	sched, err := d.startScheduler()
	if err != nil {
		return err
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			d.logger.Warn("scheduler shutdown failed", "error", err)
		}
	}()

	if d.cfg.Daemon.Watch {
		watcher, err := newStoreWatcher(d.cfg.GlobalDir, d.logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
		go watcher.run(ctx)
	}

	var srv *http.Server
	if addr := d.cfg.Daemon.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler(d.registry))
		srv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			d.logger.Info("metrics endpoint listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				d.logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	d.logger.Info("maintenance daemon started",
		"global_dir", d.cfg.GlobalDir,
		"metadata_root", d.cfg.MetadataRoot,
		"sweep_interval", d.cfg.Daemon.SweepInterval.String())

	<-ctx.Done()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics endpoint: %w", err)
		}
	}
	d.logger.Info("maintenance daemon stopped")
	return nil
}

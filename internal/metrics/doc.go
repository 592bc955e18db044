// Package metrics provides observability hooks for store and helper
// operations.
//
// It implements the Null Object pattern so metrics can be collected without
// nil checks throughout the codebase: components receive a Recorder through
// dependency injection and default to NoopRecorder, which does nothing. The
// per-event helper is short-lived and runs with the noop recorder; the
// maintenance daemon injects PrometheusRecorder and serves the registry over
// HTTP via HTTPHandler.
package metrics

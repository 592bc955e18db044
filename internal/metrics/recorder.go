package metrics

import "time"

// ResultLabel enumerates operation result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailure ResultLabel = "failure"
)

// Recorder defines observability hooks for store and helper operations.
// Implementations may forward to Prometheus, OpenTelemetry, etc. The
// NoopRecorder allows optional injection: the short-lived helper runs with
// it by default, the maintenance daemon injects the Prometheus recorder.
type Recorder interface {
	IncLinkRecorded(result ResultLabel)
	IncLinksRemoved(n int)
	IncTagAdded()
	IncPropertyAdded()
	IncFeatureSet()
	IncProbeRun(flavor string, result ResultLabel)
	ObserveSweepDuration(d time.Duration)
	IncSweptLinksFiles(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) IncLinkRecorded(ResultLabel)        {}
func (NoopRecorder) IncLinksRemoved(int)                {}
func (NoopRecorder) IncTagAdded()                       {}
func (NoopRecorder) IncPropertyAdded()                  {}
func (NoopRecorder) IncFeatureSet()                     {}
func (NoopRecorder) IncProbeRun(string, ResultLabel)    {}
func (NoopRecorder) ObserveSweepDuration(time.Duration) {}
func (NoopRecorder) IncSweptLinksFiles(int)             {}

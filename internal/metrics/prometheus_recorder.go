package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	linksRecorded   *prom.CounterVec
	linksRemoved    prom.Counter
	tagsAdded       prom.Counter
	propertiesAdded prom.Counter
	featuresSet     prom.Counter
	probeRuns       *prom.CounterVec
	sweepDuration   prom.Histogram
	sweptFiles      prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.linksRecorded = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "devplug",
			Name:      "links_recorded_total",
			Help:      "Symlink record operations by result",
		}, []string{"result"})
		pr.linksRemoved = prom.NewCounter(prom.CounterOpts{
			Namespace: "devplug",
			Name:      "links_removed_total",
			Help:      "Symlinks unlinked during cleanup",
		})
		pr.tagsAdded = prom.NewCounter(prom.CounterOpts{
			Namespace: "devplug",
			Name:      "tags_added_total",
			Help:      "Tag markers created",
		})
		pr.propertiesAdded = prom.NewCounter(prom.CounterOpts{
			Namespace: "devplug",
			Name:      "properties_added_total",
			Help:      "Property lines appended",
		})
		pr.featuresSet = prom.NewCounter(prom.CounterOpts{
			Namespace: "devplug",
			Name:      "features_set_total",
			Help:      "Feature markers written",
		})
		pr.probeRuns = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "devplug",
			Name:      "probe_runs_total",
			Help:      "Probe tool invocations by flavor and result",
		}, []string{"flavor", "result"})
		pr.sweepDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "devplug",
			Name:      "sweep_duration_seconds",
			Help:      "Duration of metadata sweep passes",
			Buckets:   prom.DefBuckets,
		})
		pr.sweptFiles = prom.NewCounter(prom.CounterOpts{
			Namespace: "devplug",
			Name:      "swept_links_files_total",
			Help:      "links files rewritten by the sweep",
		})
		reg.MustRegister(pr.linksRecorded, pr.linksRemoved, pr.tagsAdded,
			pr.propertiesAdded, pr.featuresSet, pr.probeRuns,
			pr.sweepDuration, pr.sweptFiles)
	})
	return pr
}

func (p *PrometheusRecorder) IncLinkRecorded(result ResultLabel) {
	p.linksRecorded.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncLinksRemoved(n int) {
	p.linksRemoved.Add(float64(n))
}

func (p *PrometheusRecorder) IncTagAdded() { p.tagsAdded.Inc() }

func (p *PrometheusRecorder) IncPropertyAdded() { p.propertiesAdded.Inc() }

func (p *PrometheusRecorder) IncFeatureSet() { p.featuresSet.Inc() }

func (p *PrometheusRecorder) IncProbeRun(flavor string, result ResultLabel) {
	p.probeRuns.WithLabelValues(flavor, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveSweepDuration(d time.Duration) {
	p.sweepDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSweptLinksFiles(n int) {
	p.sweptFiles.Add(float64(n))
}

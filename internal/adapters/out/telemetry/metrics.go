// Package telemetry publishes prune run metrics in the Prometheus text format
// for the node_exporter textfile collector.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bnema/zprune/internal/domain"
)

const namespace = "zprune"

// Metrics holds zprune metric instruments on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Per dataset
	SnapshotsListed     *prometheus.GaugeVec
	SnapshotsUnparsed   *prometheus.GaugeVec
	SnapshotsKept       *prometheus.GaugeVec
	SnapshotsPurged     *prometheus.GaugeVec
	SnapshotsWouldPurge *prometheus.GaugeVec
	SnapshotsSkipped    *prometheus.GaugeVec
	SnapshotsDeferred   *prometheus.GaugeVec
	DatasetSuccess      *prometheus.GaugeVec

	// Per run
	LastRunTimestamp prometheus.Gauge
	LastRunDuration  prometheus.Gauge
	LastRunSuccess   prometheus.Gauge
	LastRunDryRun    prometheus.Gauge
}

// NewMetrics creates and registers all zprune instruments.
func NewMetrics() (*Metrics, error) {
	datasetGauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, []string{"dataset"})
	}
	runGauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	m := &Metrics{
		registry:            prometheus.NewRegistry(),
		SnapshotsListed:     datasetGauge("snapshots_listed", "Snapshots reported by the snapshot source in the last run."),
		SnapshotsUnparsed:   datasetGauge("snapshots_unparsed", "Snapshots ignored because their name has no timestamp."),
		SnapshotsKept:       datasetGauge("snapshots_kept", "Snapshots kept by the retention policy."),
		SnapshotsPurged:     datasetGauge("snapshots_purged", "Snapshots destroyed in the last run."),
		SnapshotsWouldPurge: datasetGauge("snapshots_would_purge", "Snapshots a dry run would have destroyed."),
		SnapshotsSkipped:    datasetGauge("snapshots_skipped", "Destroys that failed with an ignorable exit code."),
		SnapshotsDeferred:   datasetGauge("snapshots_deferred", "Purge candidates left for a later run by the max purge cap."),
		DatasetSuccess:      datasetGauge("dataset_success", "1 if the dataset was processed without error."),
		LastRunTimestamp:    runGauge("last_run_timestamp_seconds", "Unix time the last run started."),
		LastRunDuration:     runGauge("last_run_duration_seconds", "Duration of the last run."),
		LastRunSuccess:      runGauge("last_run_success", "1 if every dataset of the last run succeeded."),
		LastRunDryRun:       runGauge("last_run_dry_run", "1 if the last run was a dry run."),
	}

	collectors := []prometheus.Collector{
		m.SnapshotsListed, m.SnapshotsUnparsed, m.SnapshotsKept, m.SnapshotsPurged,
		m.SnapshotsWouldPurge, m.SnapshotsSkipped, m.SnapshotsDeferred, m.DatasetSuccess,
		m.LastRunTimestamp, m.LastRunDuration, m.LastRunSuccess, m.LastRunDryRun,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Registry returns the registry holding the instruments.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe replaces the recorded values with the outcome of report.
func (m *Metrics) Observe(report *domain.RunReport) {
	for _, vec := range []*prometheus.GaugeVec{
		m.SnapshotsListed, m.SnapshotsUnparsed, m.SnapshotsKept, m.SnapshotsPurged,
		m.SnapshotsWouldPurge, m.SnapshotsSkipped, m.SnapshotsDeferred, m.DatasetSuccess,
	} {
		vec.Reset()
	}

	for _, ds := range report.Datasets {
		m.SnapshotsListed.WithLabelValues(ds.Dataset).Set(float64(ds.Listed))
		m.SnapshotsUnparsed.WithLabelValues(ds.Dataset).Set(float64(ds.Unparsed))
		m.SnapshotsKept.WithLabelValues(ds.Dataset).Set(float64(ds.Kept))
		m.SnapshotsPurged.WithLabelValues(ds.Dataset).Set(float64(ds.Purged))
		m.SnapshotsWouldPurge.WithLabelValues(ds.Dataset).Set(float64(ds.WouldPurge))
		m.SnapshotsSkipped.WithLabelValues(ds.Dataset).Set(float64(ds.Skipped))
		m.SnapshotsDeferred.WithLabelValues(ds.Dataset).Set(float64(ds.Deferred))
		m.DatasetSuccess.WithLabelValues(ds.Dataset).Set(boolToFloat(!ds.Failed()))
	}

	m.LastRunTimestamp.Set(float64(report.StartedAt.Unix()))
	m.LastRunDuration.Set(report.Duration.Seconds())
	m.LastRunSuccess.Set(boolToFloat(report.Succeeded()))
	m.LastRunDryRun.Set(boolToFloat(report.DryRun))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Package metrics exposes sync runs as Prometheus metrics.
//
// stocksync is a short lived process, so metrics are not served but written
// to a node_exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/etnz/watchlist"
)

// Recorder accumulates the metrics of sync runs.
type Recorder struct {
	registry *prometheus.Registry

	Stocks      *prometheus.CounterVec
	Commits     prometheus.Counter
	Recoveries  prometheus.Counter
	Changed     prometheus.Gauge
	LastRun     prometheus.Gauge
	LastSuccess prometheus.Gauge
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Stocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocksync_stocks_total",
			Help: "Watchlist records processed by outcome",
		}, []string{"status"}),
		Commits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocksync_commits_total",
			Help: "Commits created by the sync",
		}),
		Recoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocksync_recovered_commits_total",
			Help: "Commits of a watchlist left uncommitted by a previous run",
		}),
		Changed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stocksync_last_run_changed",
			Help: "1 if the last run changed the watchlist",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stocksync_last_run_timestamp_seconds",
			Help: "Time of the last run",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stocksync_last_success_timestamp_seconds",
			Help: "Time of the last run without a fatal error",
		}),
	}
	r.registry.MustRegister(r.Stocks, r.Commits, r.Recoveries, r.Changed, r.LastRun, r.LastSuccess)
	for _, s := range []watchlist.Status{watchlist.Updated, watchlist.Skipped, watchlist.Errored} {
		r.Stocks.WithLabelValues(string(s))
	}
	return r
}

// Record adds a sync result. err is the fatal error of the run, if any.
func (r *Recorder) Record(res watchlist.Result, err error) {
	r.Stocks.WithLabelValues(string(watchlist.Updated)).Add(float64(res.Updated))
	r.Stocks.WithLabelValues(string(watchlist.Skipped)).Add(float64(res.Skipped))
	r.Stocks.WithLabelValues(string(watchlist.Errored)).Add(float64(res.Errored))
	if res.Committed {
		r.Commits.Inc()
	}
	if res.Recovered {
		r.Recoveries.Inc()
	}
	if res.HasChanges {
		r.Changed.Set(1)
	} else {
		r.Changed.Set(0)
	}

	ts := float64(res.Timestamp.Unix())
	r.LastRun.Set(ts)
	if err == nil {
		r.LastSuccess.Set(ts)
	}
}

// WriteTextfile writes all metrics to path, in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// ============================================================================
// Cellpool Metrics - Prometheus Monitoring
// ============================================================================
//
// Package: internal/metrics
// File: metrics.go
// Purpose: Collect and expose pool coordinator metrics for Prometheus.
//
// Metric Categories:
//
//   1. Job Counters - cumulative, monotonically increasing:
//      - cellpool_jobs_dispatched_total: jobs handed to an idle worker
//      - cellpool_jobs_panicked_total: jobs whose worker reported Panicked
//      - cellpool_workers_respawned_total: worker slots replaced under Respawn
//
//   2. Status Metrics (Gauge) - instantaneous values:
//      - cellpool_workers_live: workers currently alive in the pool
//
// Use Cases:
//   Alerting:
//   - cellpool_jobs_panicked_total rate increase -> job logic regression
//   - cellpool_workers_respawned_total rate increase under Respawn -> churn
//     (a respawn replaces its slot at once, so cellpool_workers_live stays
//     at the configured size until shutdown)
//
// HTTP Endpoint:
//   Exposed via /metrics, scraped by Prometheus. Default port: 9090.
//
// ============================================================================

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects coordinator lifecycle events into Prometheus metrics.
// It satisfies internal/pool.Recorder structurally: the pool package never
// imports this one.
type Recorder struct {
	jobsDispatched   prometheus.Counter
	jobsPanicked     prometheus.Counter
	workersRespawned prometheus.Counter
	workersLive      prometheus.Gauge
}

// NewRecorder creates a Recorder and registers its metrics against reg. If
// reg is nil, prometheus.DefaultRegisterer is used, matching the teacher's
// NewCollector convention of registering eagerly at construction time.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		jobsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cellpool_jobs_dispatched_total",
			Help: "Total number of jobs handed to an idle worker.",
		}),
		jobsPanicked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cellpool_jobs_panicked_total",
			Help: "Total number of jobs whose worker reported Panicked.",
		}),
		workersRespawned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cellpool_workers_respawned_total",
			Help: "Total number of worker slots replaced under the Respawn policy.",
		}),
		workersLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cellpool_workers_live",
			Help: "Current number of live workers in the pool.",
		}),
	}

	reg.MustRegister(r.jobsDispatched, r.jobsPanicked, r.workersRespawned, r.workersLive)
	return r
}

// Dispatched records one job handed to an idle worker.
func (r *Recorder) Dispatched() { r.jobsDispatched.Inc() }

// Panicked records one worker reporting Panicked.
func (r *Recorder) Panicked() { r.jobsPanicked.Inc() }

// Respawned records one worker slot being replaced under Respawn.
func (r *Recorder) Respawned() { r.workersRespawned.Inc() }

// LiveWorkers sets the current live worker count.
func (r *Recorder) LiveWorkers(n int) { r.workersLive.Set(float64(n)) }

// Handler returns the HTTP handler that serves the Prometheus exposition
// format for reg, the same way the teacher wires promhttp in its server.
func Handler(reg prometheus.Gatherer) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

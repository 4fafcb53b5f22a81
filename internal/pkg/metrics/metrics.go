// Package metrics exposes supervisor and attempt counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang-ethmonitor/internal/pkg/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for attempt counters.
const (
	ResultSuccess = "success"
	ResultFail    = "fail"
	ResultStale   = "stale"
	ResultBusy    = "busy"
)

type Metrics struct {
	AcquireTotal *prometheus.CounterVec // result=success|fail|stale|busy
	RenewTotal   *prometheus.CounterVec // result=success|fail|stale

	AttemptLatency *prometheus.HistogramVec // op=acquire|renew

	LinkUp       prometheus.Gauge
	Transitions  *prometheus.CounterVec // to=up|down
	ProbeErrors  prometheus.Counter
	LeaseSeconds prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the metrics set on its own registry.
func New() *Metrics {
	m := &Metrics{
		AcquireTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ethmonitor_acquire_total",
				Help: "Acquisition attempts by result",
			},
			[]string{"result"},
		),
		RenewTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ethmonitor_renew_total",
				Help: "Renewal attempts by result",
			},
			[]string{"result"},
		),
		AttemptLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ethmonitor_attempt_duration_seconds",
				Help:    "Duration of acquisition and renewal attempts",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms .. ~100s
			},
			[]string{"op"},
		),
		LinkUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ethmonitor_link_up",
			Help: "1 when the supervised interface has carrier",
		}),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ethmonitor_link_transitions_total",
				Help: "Detected link state edges",
			},
			[]string{"to"},
		),
		ProbeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ethmonitor_probe_errors_total",
			Help: "Failed carrier queries",
		}),
		LeaseSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ethmonitor_lease_duration_seconds",
			Help: "Duration of the current lease, 0 when no lease is held",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.AcquireTotal,
		m.RenewTotal,
		m.AttemptLatency,
		m.LinkUp,
		m.Transitions,
		m.ProbeErrors,
		m.LeaseSeconds,
	)

	return m
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	logger := logging.WithComponent("metrics").WithField("listen", addr)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

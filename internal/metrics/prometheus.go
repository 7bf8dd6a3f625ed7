// Package metrics exposes fetch and alert counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name
const Namespace = "baggage_monitor"

// Fetch result label values
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultRetry   = "retry"
)

// Metrics holds all prometheus metrics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Fetches       *prometheus.CounterVec
	CacheHits     prometheus.Counter
	FetchDuration prometheus.Histogram
	UrgentRecords prometheus.Gauge
}

// NewMetrics registers the metrics on reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Backend fetch attempts by result",
		}, []string{"result"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Fetches answered from the window cache",
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time taken by a backend fetch attempt",
			Buckets:   prometheus.DefBuckets,
		}),
		UrgentRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "urgent_records",
			Help:      "Boarded passengers whose special baggage is not loaded, in the current view",
		}),
	}
}

// ObserveFetch records one backend attempt. retrying marks a failed attempt
// that will be resent.
func (m *Metrics) ObserveFetch(d time.Duration, err error, retrying bool) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
	switch {
	case err == nil:
		m.Fetches.WithLabelValues(ResultSuccess).Inc()
	case retrying:
		m.Fetches.WithLabelValues(ResultRetry).Inc()
	default:
		m.Fetches.WithLabelValues(ResultError).Inc()
	}
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

func (m *Metrics) SetUrgent(n int) {
	if m == nil {
		return
	}
	m.UrgentRecords.Set(float64(n))
}

// Serve exposes /metrics on addr until ctx is done
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	util.LogInfof("Serving metrics on %s/metrics", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(Namespace, reg)

	m.ObserveFetch(10*time.Millisecond, nil, false)
	m.ObserveFetch(20*time.Millisecond, errors.New("boom"), true)
	m.ObserveFetch(20*time.Millisecond, errors.New("boom"), false)
	m.ObserveFetch(5*time.Millisecond, nil, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Fetches.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues(ResultRetry)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues(ResultError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchDuration))
}

func TestMetrics_CacheAndUrgent(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(Namespace, reg)

	m.CacheHit()
	m.CacheHit()
	m.SetUrgent(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.UrgentRecords))

	expected := `
# HELP baggage_monitor_urgent_records Boarded passengers whose special baggage is not loaded, in the current view
# TYPE baggage_monitor_urgent_records gauge
baggage_monitor_urgent_records 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "baggage_monitor_urgent_records"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch(time.Second, nil, false)
		m.CacheHit()
		m.SetUrgent(1)
	})
}

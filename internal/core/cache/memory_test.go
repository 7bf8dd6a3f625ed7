package cache

import (
	"testing"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC)

func records(flights ...string) []model.LoadingRecord {
	out := make([]model.LoadingRecord, 0, len(flights))
	for _, f := range flights {
		out = append(out, model.LoadingRecord{FlightNumber: f, Seat: "1A", BaggageType: model.BaggagePet, Status: model.StatusLoaded})
	}
	return out
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	mc := NewMemoryCache(5 * time.Minute)

	_, ok := mc.Get("24:24", base)
	assert.False(t, ok)

	require.True(t, mc.Set("24:24", records("DL123"), base, mc.Generation()))
	got, ok := mc.Get("24:24", base.Add(4*time.Minute))
	require.True(t, ok)
	assert.Equal(t, records("DL123"), got)

	_, ok = mc.Get("48:24", base)
	assert.False(t, ok, "keys are exact")
}

func TestMemoryCache_Expiry(t *testing.T) {
	mc := NewMemoryCache(5 * time.Minute)
	mc.Set("24:24", records("DL123"), base, mc.Generation())

	_, ok := mc.Get("24:24", base.Add(5*time.Minute))
	assert.False(t, ok)
	assert.Equal(t, 0, mc.Len(), "expired entry is evicted on read")
}

func TestMemoryCache_ClearRejectsOlderGeneration(t *testing.T) {
	mc := NewMemoryCache(time.Minute)
	gen := mc.Generation()
	mc.Set("a", records("DL123"), base, gen)

	mc.Clear()
	assert.Equal(t, 0, mc.Len())

	assert.False(t, mc.Set("a", records("UA360"), base, gen))
	_, ok := mc.Get("a", base)
	assert.False(t, ok)

	assert.True(t, mc.Set("a", records("UA360"), base, mc.Generation()))
}

func TestMemoryCache_Prune(t *testing.T) {
	mc := NewMemoryCache(time.Minute)
	gen := mc.Generation()
	mc.Set("old", records("A"), base, gen)
	mc.Set("new", records("B"), base.Add(50*time.Second), gen)

	assert.Equal(t, 1, mc.Prune(base.Add(70*time.Second)))
	assert.Equal(t, 1, mc.Len())
}

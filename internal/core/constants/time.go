package constants

import (
	"math"
	"time"
)

const (
	// Default lookup window around now, in hours
	DefaultLookupPastHours   = 24
	DefaultLookupFutureHours = 24

	// Largest lookup hour count whose span still fits in a time.Duration
	MaxLookupHours = int(math.MaxInt64 / int64(time.Hour))

	// How long a fetched window stays fresh before it is requested again
	RecordCacheTTL = 5 * time.Minute

	// Extra attempts after a failed fetch
	FetchRetries = 1

	// Request timeout towards the baggage backend
	DefaultRequestTimeout = 30 * time.Second

	// Periodic re-fetch and redraw cadence of the live dashboard
	DefaultDataRefreshInterval = 60 * time.Second
	DefaultUIRefreshRate       = 1.0

	// Storage key of the persisted settings blob
	SettingsStorageKey = "baggage-dashboard-settings"
)

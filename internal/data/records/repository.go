package records

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/cache"
	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/util"
	"golang.org/x/sync/singleflight"
)

// Source fetches raw records for a departure range
type Source interface {
	FetchSpecialBaggage(ctx context.Context, from, to time.Time) ([]model.LoadingRecord, error)
}

// Recorder receives fetch telemetry. *metrics.Metrics implements it.
type Recorder interface {
	ObserveFetch(d time.Duration, err error, retrying bool)
	CacheHit()
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(time.Duration, error, bool) {}
func (nopRecorder) CacheHit()                               {}

// Repository answers Fetch from a per-window cache and otherwise asks the
// source, resending once on failure. Failures are never cached.
type Repository struct {
	source     Source
	cache      *cache.MemoryCache
	group      singleflight.Group
	recorder   Recorder
	retries    int
	retryDelay time.Duration
	now        func() time.Time
}

type Option func(*Repository)

// WithTTL sets how long a fetched window is served from cache
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) { r.cache = cache.NewMemoryCache(ttl) }
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithRecorder(rec Recorder) Option {
	return func(r *Repository) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithRetryDelay sets the pause before the resend
func WithRetryDelay(d time.Duration) Option {
	return func(r *Repository) { r.retryDelay = d }
}

func NewRepository(source Source, opts ...Option) *Repository {
	r := &Repository{
		source:     source,
		cache:      cache.NewMemoryCache(constants.RecordCacheTTL),
		recorder:   nopRecorder{},
		retries:    constants.FetchRetries,
		retryDelay: time.Second,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch returns the records departing within the window around now. The
// returned slice is owned by the caller.
//
// A shared fetch runs detached from any single caller, so one caller giving
// up does not fail the others; each caller still returns as soon as its own
// ctx is done.
func (r *Repository) Fetch(ctx context.Context, pastHours, futureHours int) ([]model.LoadingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := WindowKey(pastHours, futureHours)

	if records, ok := r.cache.Get(key, r.now()); ok {
		r.recorder.CacheHit()
		util.LogDebugf("Records for window %s served from cache (%d)", key, len(records))
		return slices.Clone(records), nil
	}

	// Fetches started before an Invalidate are not joined after it.
	generation := r.cache.Generation()
	flight := fmt.Sprintf("%s#%d", key, generation)
	ch := r.group.DoChan(flight, func() (interface{}, error) {
		return r.load(context.WithoutCancel(ctx), key, generation, pastHours, futureHours)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			util.LogDebugf("Joined in-flight fetch for window %s", key)
		}
		return slices.Clone(res.Val.([]model.LoadingRecord)), nil
	}
}

// Invalidate drops every cached window. Fetches already in flight finish
// but their results are not cached, and later calls start a new request
// instead of joining them.
func (r *Repository) Invalidate() {
	r.cache.Clear()
	util.LogDebug("Record cache invalidated")
}

func (r *Repository) load(ctx context.Context, key string, generation uint64, pastHours, futureHours int) ([]model.LoadingRecord, error) {
	window := NewWindow(r.now(), pastHours, futureHours)

	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			util.LogWarnf("Fetch for window %s failed, resending: %v", window, lastErr)
			if err := sleep(ctx, r.retryDelay); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		records, err := r.source.FetchSpecialBaggage(ctx, window.From, window.To)
		retrying := err != nil && attempt < r.retries && !isCancellation(err)
		r.recorder.ObserveFetch(time.Since(start), err, retrying)

		if err == nil {
			if n := r.cache.Prune(r.now()); n > 0 {
				util.LogDebugf("Pruned %d expired record windows", n)
			}
			r.cache.Set(key, records, r.now(), generation)
			util.LogInfof("Fetched %d records for window %s", len(records), window)
			return records, nil
		}
		lastErr = err
		if isCancellation(err) {
			break
		}
	}

	util.LogErrorf("Fetch for window %s failed: %v", window, lastErr)
	return nil, lastErr
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

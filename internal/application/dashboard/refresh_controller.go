package dashboard

import (
	"context"
	"sync/atomic"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/data/records"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

// FetchResult is posted back to the event loop when a fetch finishes
type FetchResult struct {
	Seq     uint64
	Key     string
	Records []model.LoadingRecord
	Err     error
}

// RefreshController runs fetches off the event loop. Every fetch gets an
// increasing sequence number so the loop can ignore results that were
// overtaken by a newer request.
type RefreshController struct {
	fetcher RecordFetcher
	results chan FetchResult
	seq     atomic.Uint64
}

// NewRefreshController creates a new RefreshController instance
func NewRefreshController(fetcher RecordFetcher) *RefreshController {
	return &RefreshController{
		fetcher: fetcher,
		results: make(chan FetchResult, 4),
	}
}

// Start launches a fetch for the window and returns its sequence number.
// The result is delivered on Results unless ctx ends first.
func (rc *RefreshController) Start(ctx context.Context, pastHours, futureHours int) (uint64, string) {
	seq := rc.seq.Add(1)
	key := records.WindowKey(pastHours, futureHours)

	go func() {
		recs, err := rc.fetcher.Fetch(ctx, pastHours, futureHours)
		if err != nil {
			util.LogDebugf("Fetch #%d for %s failed: %v", seq, key, err)
		}
		select {
		case rc.results <- FetchResult{Seq: seq, Key: key, Records: recs, Err: err}:
		case <-ctx.Done():
		}
	}()
	return seq, key
}

// Results delivers finished fetches
func (rc *RefreshController) Results() <-chan FetchResult {
	return rc.results
}

// Invalidate forces the next fetch to go to the backend
func (rc *RefreshController) Invalidate() {
	rc.fetcher.Invalidate()
}

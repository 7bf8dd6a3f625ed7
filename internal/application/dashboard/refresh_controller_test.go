package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/data/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu          sync.Mutex
	records     map[string][]model.LoadingRecord
	err         error
	gates       map[string]chan struct{}
	calls       []string
	invalidated int
}

func newFakeFetcher(recs []model.LoadingRecord) *fakeFetcher {
	return &fakeFetcher{
		records: map[string][]model.LoadingRecord{"": recs},
		gates:   make(map[string]chan struct{}),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, past, future int) ([]model.LoadingRecord, error) {
	key := records.WindowKey(past, future)

	f.mu.Lock()
	f.calls = append(f.calls, key)
	gate := f.gates[key]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.records[key]; ok {
		return r, nil
	}
	return f.records[""], nil
}

func (f *fakeFetcher) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

func (f *fakeFetcher) hold(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gates[key] = gate
	return gate
}

func (f *fakeFetcher) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeFetcher) setRecords(key string, recs []model.LoadingRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[key] = recs
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeFetcher) Invalidations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidated
}

func receive(t *testing.T, rc *RefreshController) FetchResult {
	t.Helper()
	select {
	case res := <-rc.Results():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch result")
		return FetchResult{}
	}
}

func TestRefreshController_SequencesFetches(t *testing.T) {
	fetcher := newFakeFetcher(scenarioRecords())
	rc := NewRefreshController(fetcher)
	ctx := context.Background()

	seq1, key1 := rc.Start(ctx, 24, 24)
	res := receive(t, rc)
	assert.Equal(t, seq1, res.Seq)
	assert.Equal(t, "24:24", key1)
	assert.Equal(t, key1, res.Key)
	assert.Len(t, res.Records, 2)

	seq2, _ := rc.Start(ctx, 48, 24)
	assert.Greater(t, seq2, seq1)
	assert.Equal(t, seq2, receive(t, rc).Seq)
}

func TestRefreshController_OutOfOrderResultsAreDroppedByState(t *testing.T) {
	fetcher := newFakeFetcher(scenarioRecords())
	fetcher.setRecords("48:24", scenarioRecords()[1:])
	gate := fetcher.hold("24:24")

	rc := NewRefreshController(fetcher)
	sm := NewStateManager(false)
	ctx := context.Background()

	seq, key := rc.Start(ctx, 24, 24)
	sm.BeginFetch(seq, key)
	seq, key = rc.Start(ctx, 48, 24)
	sm.BeginFetch(seq, key)

	newer := receive(t, rc)
	require.Equal(t, "48:24", newer.Key)
	assert.True(t, sm.ApplyFetch(newer, time.Now()))

	close(gate)
	older := receive(t, rc)
	require.Equal(t, "24:24", older.Key)
	assert.False(t, sm.ApplyFetch(older, time.Now()))

	in := sm.PipelineInput(windowSettings(48, 24), testYear)
	require.Len(t, in.Records, 1)
	assert.Equal(t, "UA360", in.Records[0].FlightNumber)
}

func TestRefreshController_ReportsErrors(t *testing.T) {
	fetcher := newFakeFetcher(nil)
	fetcher.setErr(errors.New("backend down"))
	rc := NewRefreshController(fetcher)

	rc.Start(context.Background(), 24, 24)
	res := receive(t, rc)
	assert.EqualError(t, res.Err, "backend down")
	assert.Nil(t, res.Records)

	rc.Invalidate()
	assert.Equal(t, 1, fetcher.Invalidations())
}

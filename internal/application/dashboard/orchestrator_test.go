package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/alert"
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
	"github.com/penwyp/go-baggage-monitor/internal/presentation/display"
	"github.com/penwyp/go-baggage-monitor/internal/presentation/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	mu     sync.Mutex
	frames []display.Frame
	clears int
	inAlt  bool
}

func (d *fakeDisplay) EnterAlternateScreen() { d.mu.Lock(); d.inAlt = true; d.mu.Unlock() }
func (d *fakeDisplay) ExitAlternateScreen()  { d.mu.Lock(); d.inAlt = false; d.mu.Unlock() }
func (d *fakeDisplay) ClearScreen()          { d.mu.Lock(); d.clears++; d.mu.Unlock() }

func (d *fakeDisplay) Render(f display.Frame) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, f)
}

func (d *fakeDisplay) Last() (display.Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return display.Frame{}, false
	}
	return d.frames[len(d.frames)-1], true
}

type fakeInput struct {
	events chan interaction.KeyEvent
	closed bool
	mu     sync.Mutex
}

func newFakeInput() *fakeInput {
	return &fakeInput{events: make(chan interaction.KeyEvent)}
}

func (in *fakeInput) Events() <-chan interaction.KeyEvent { return in.events }

func (in *fakeInput) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.closed = true
	return nil
}

type fakeMonitor struct {
	events chan struct{}
}

func (m *fakeMonitor) Events() <-chan struct{} { return m.events }
func (m *fakeMonitor) Close() error            { return nil }

type fakeGauge struct {
	mu sync.Mutex
	n  int
}

func (g *fakeGauge) SetUrgent(n int) { g.mu.Lock(); g.n = n; g.mu.Unlock() }

func (g *fakeGauge) Value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

type harness struct {
	t       *testing.T
	store   *settings.Store
	fetcher *fakeFetcher
	display *fakeDisplay
	input   *fakeInput
	monitor *fakeMonitor
	gauge   *fakeGauge
	persist *settings.DiskPersistence
	cancel  context.CancelFunc
	done    chan struct{}
	runErr  error
}

func startHarness(t *testing.T, fetcher *fakeFetcher, prepare ...func(*settings.Store)) *harness {
	t.Helper()

	h := &harness{
		t:       t,
		fetcher: fetcher,
		display: &fakeDisplay{},
		input:   newFakeInput(),
		monitor: &fakeMonitor{events: make(chan struct{}, 1)},
		gauge:   &fakeGauge{},
		persist: settings.NewDiskPersistence(t.TempDir()),
		done:    make(chan struct{}),
	}
	h.store = settings.NewStore(h.persist)
	for _, fn := range prepare {
		fn(h.store)
	}

	o, err := NewOrchestrator(&DashboardConfig{Timezone: "UTC"}, h.store, fetcher,
		WithDisplay(h.display),
		WithInput(h.input),
		WithSettingsMonitor(h.monitor),
		WithUrgentGauge(h.gauge),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		h.runErr = o.Run(ctx)
		close(h.done)
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case <-h.done:
		case <-time.After(2 * time.Second):
		}
	})
	return h
}

func (h *harness) press(keys ...rune) {
	for _, k := range keys {
		select {
		case h.input.events <- interaction.KeyEvent{Key: k, Type: interaction.KeyChar}:
		case <-time.After(2 * time.Second):
			h.t.Fatalf("dashboard did not accept key %q", k)
		}
	}
}

func (h *harness) waitFor(msg string, cond func(f display.Frame) bool) display.Frame {
	h.t.Helper()
	var last display.Frame
	require.Eventually(h.t, func() bool {
		f, ok := h.display.Last()
		last = f
		return ok && cond(f)
	}, 2*time.Second, 5*time.Millisecond, msg)
	return last
}

func (h *harness) waitReady() display.Frame {
	return h.waitFor("records loaded", func(f display.Frame) bool { return f.Status == display.StatusReady })
}

func TestOrchestrator_InitialLoadShowsUrgentAlert(t *testing.T) {
	h := startHarness(t, newFakeFetcher(scenarioRecords()))

	f := h.waitReady()
	assert.Len(t, f.Records, 2)
	assert.Equal(t, alert.BannerUrgent, f.Banner.Kind)
	assert.Equal(t, "Passenger 8A has boarded, but Pet is not loaded", f.Banner.Message)
	assert.Equal(t, 1, f.UrgentCount)
	assert.Equal(t, []string{"24:24"}, h.fetcher.Calls())
	assert.Eventually(t, func() bool { return h.gauge.Value() == 1 }, time.Second, 5*time.Millisecond)
}

func TestOrchestrator_FilterKeysRecomputeBanner(t *testing.T) {
	h := startHarness(t, newFakeFetcher(scenarioRecords()))
	h.waitReady()

	h.press('b') // Loaded
	f := h.waitFor("loaded filter applied", func(f display.Frame) bool {
		return f.Criteria.BaggageStatus == model.BaggageStatusLoaded
	})
	require.Len(t, f.Records, 1)
	assert.Equal(t, "UA360", f.Records[0].FlightNumber)
	assert.False(t, f.Banner.Visible())

	// filters never refetch
	assert.Len(t, h.fetcher.Calls(), 1)
}

func TestOrchestrator_WindowChangeRefetchesAndPersists(t *testing.T) {
	fetcher := newFakeFetcher(scenarioRecords())
	fetcher.setRecords("25:24", scenarioRecords()[1:])
	h := startHarness(t, fetcher)
	h.waitReady()

	h.press(']')
	f := h.waitFor("wider window loaded", func(f display.Frame) bool {
		return f.Status == display.StatusReady && f.Settings.LookupTimeRangePast == 25
	})
	require.Len(t, f.Records, 1)
	assert.Equal(t, alert.BannerWindow, f.Banner.Kind)
	assert.Equal(t, "Showing records from 25 hours ago to 24 hours in advance", f.Banner.Message)
	assert.Equal(t, []string{"24:24", "25:24"}, fetcher.Calls())

	// a fresh store over the same directory sees the change
	reloaded := settings.NewStore(h.persist)
	assert.Equal(t, 25, reloaded.LookupTimeRangePast())
}

func TestOrchestrator_HoursCannotDropBelowOne(t *testing.T) {
	h := startHarness(t, newFakeFetcher(scenarioRecords()), func(s *settings.Store) {
		require.NoError(t, s.SetLookupTimeRangeFuture(1))
	})
	h.waitReady()

	h.press('{')
	f := h.waitFor("status message shown", func(f display.Frame) bool { return f.StatusMessage != "" })
	assert.Equal(t, "Lookup window cannot be shorter than 1 hour", f.StatusMessage)
	assert.Equal(t, 1, h.store.LookupTimeRangeFuture())
}

func TestOrchestrator_FetchErrorShowsErrorState(t *testing.T) {
	fetcher := newFakeFetcher(nil)
	fetcher.setErr(errors.New("backend down"))
	h := startHarness(t, fetcher)

	f := h.waitFor("error shown", func(f display.Frame) bool { return f.Status == display.StatusError })
	assert.Empty(t, f.Records)
	assert.False(t, f.Banner.Visible())
}

func TestOrchestrator_ResetRequiresConfirmation(t *testing.T) {
	h := startHarness(t, newFakeFetcher(scenarioRecords()), func(s *settings.Store) {
		require.NoError(t, s.SetTheme(settings.ThemeLight))
	})
	h.waitReady()

	h.press('x')
	h.waitFor("dialog open", func(f display.Frame) bool { return f.ConfirmDialog != nil })

	// unrelated keys are ignored while the dialog is open
	h.press('t')
	h.press('n')
	h.waitFor("dialog closed", func(f display.Frame) bool { return f.ConfirmDialog == nil })
	assert.Equal(t, settings.ThemeLight, h.store.Theme())

	h.press('x')
	h.waitFor("dialog reopened", func(f display.Frame) bool { return f.ConfirmDialog != nil })
	h.press('y')
	f := h.waitFor("settings reset", func(f display.Frame) bool { return f.StatusMessage != "" })
	assert.Equal(t, "Settings reset to defaults", f.StatusMessage)
	assert.Equal(t, settings.Defaults(), h.store.Get())
}

func TestOrchestrator_ExpandedDefaultResetsCards(t *testing.T) {
	h := startHarness(t, newFakeFetcher(scenarioRecords()))
	h.waitReady()
	records := scenarioRecords()

	h.press(' ')
	h.waitFor("first card open", func(f display.Frame) bool { return f.Expanded[records[0].Key()] })

	h.press('e')
	f := h.waitFor("all cards open", func(f display.Frame) bool { return f.Settings.CardsExpandedByDefault })
	assert.True(t, f.Expanded[records[0].Key()])
	assert.True(t, f.Expanded[records[1].Key()])
}

func TestOrchestrator_RefreshInvalidatesCache(t *testing.T) {
	h := startHarness(t, newFakeFetcher(scenarioRecords()))
	h.waitReady()

	h.press('r')
	require.Eventually(t, func() bool { return len(h.fetcher.Calls()) == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, h.fetcher.Invalidations())
}

func TestOrchestrator_ReloadsSettingsChangedOnDisk(t *testing.T) {
	h := startHarness(t, newFakeFetcher(scenarioRecords()))
	h.waitReady()

	require.NoError(t, h.persist.Save([]byte(`{"theme":"light","lookupTimeRangePast":24,"lookupTimeRangeFuture":24,"cardsExpandedByDefault":false}`)))
	h.monitor.events <- struct{}{}

	h.waitFor("theme reloaded", func(f display.Frame) bool { return f.Settings.Theme == settings.ThemeLight })
}

func TestOrchestrator_QuitStopsLoop(t *testing.T) {
	h := startHarness(t, newFakeFetcher(scenarioRecords()))
	h.waitReady()

	h.press('q')
	select {
	case <-h.done:
		assert.NoError(t, h.runErr)
	case <-time.After(2 * time.Second):
		t.Fatal("dashboard did not stop")
	}
	h.input.mu.Lock()
	assert.True(t, h.input.closed)
	h.input.mu.Unlock()
}

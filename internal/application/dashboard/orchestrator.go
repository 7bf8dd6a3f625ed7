package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
	"github.com/penwyp/go-baggage-monitor/internal/presentation/display"
	"github.com/penwyp/go-baggage-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

const minLookupHours = 1

// Orchestrator coordinates all components of the live dashboard. All state
// changes happen on the goroutine running Run; fetches run elsewhere and
// report back through the refresh controller.
type Orchestrator struct {
	config *DashboardConfig
	store  *settings.Store

	// Core components
	refreshCtrl  *RefreshController
	stateManager *StateManager

	// UI components
	display  DisplayController
	keyboard InputHandler

	// Optional components
	monitor SettingsMonitor
	gauge   UrgentGauge

	ctx           context.Context
	unsubscribers []func()
}

// Option customizes an Orchestrator
type Option func(*Orchestrator)

// WithDisplay replaces the terminal display
func WithDisplay(d DisplayController) Option {
	return func(o *Orchestrator) { o.display = d }
}

// WithInput replaces the raw-mode keyboard reader
func WithInput(in InputHandler) Option {
	return func(o *Orchestrator) { o.keyboard = in }
}

// WithSettingsMonitor reloads settings whenever the monitor fires
func WithSettingsMonitor(m SettingsMonitor) Option {
	return func(o *Orchestrator) { o.monitor = m }
}

// WithUrgentGauge publishes the urgent count after every render
func WithUrgentGauge(g UrgentGauge) Option {
	return func(o *Orchestrator) { o.gauge = g }
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *DashboardConfig, store *settings.Store, fetcher RecordFetcher, opts ...Option) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := &Orchestrator{
		config:       config,
		store:        store,
		refreshCtrl:  NewRefreshController(fetcher),
		stateManager: NewStateManager(store.CardsExpandedByDefault()),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.display == nil {
		o.display = display.NewTerminalDisplay()
	}
	return o, nil
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting baggage dashboard...")
	o.ctx = ctx
	defer o.Close()

	if err := util.InitializeTimeProvider(o.config.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	if o.keyboard == nil {
		keyboard, err := interaction.NewKeyboardReader()
		if err != nil {
			return fmt.Errorf("failed to initialize keyboard: %w", err)
		}
		o.keyboard = keyboard
	}

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	o.subscribe()
	o.startFetch()
	o.updateDisplay()

	uiTicker := time.NewTicker(o.config.UIRefreshInterval())
	defer uiTicker.Stop()

	dataTicker := time.NewTicker(o.config.DataRefreshInterval)
	defer dataTicker.Stop()

	var settingsEvents <-chan struct{}
	if o.monitor != nil {
		settingsEvents = o.monitor.Events()
	}

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down baggage dashboard...")
			return nil

		case <-uiTicker.C:
			o.updateDisplay()

		case <-dataTicker.C:
			o.startFetch()

		case res := <-o.refreshCtrl.Results():
			if o.stateManager.ApplyFetch(res, util.GetTimeProvider().Now()) {
				if res.Err != nil {
					util.LogErrorf("Failed to load records for %s: %v", res.Key, res.Err)
				}
				o.updateDisplay()
			} else {
				util.LogDebugf("Dropping stale fetch #%d for %s", res.Seq, res.Key)
			}

		case <-settingsEvents:
			if err := o.store.Reload(); err != nil {
				util.LogWarnf("Ignoring settings change on disk: %v", err)
				continue
			}
			o.updateDisplay()

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil
			}
			o.updateDisplay()
		}
	}
}

// subscribe reacts to settings changes. Listeners run on the loop goroutine
// because every mutation is made from there.
func (o *Orchestrator) subscribe() {
	o.unsubscribers = append(o.unsubscribers,
		o.store.Subscribe(settings.FieldLookupWindow, func(changed settings.Field, _ settings.Settings) {
			util.LogDebugf("Lookup window changed (%s), refetching", changed)
			o.startFetch()
		}),
		o.store.Subscribe(settings.FieldCardsExpanded, func(_ settings.Field, current settings.Settings) {
			o.stateManager.ResetExpansion(current.CardsExpandedByDefault)
		}),
		o.store.Subscribe(settings.FieldTheme, func(settings.Field, settings.Settings) {
			o.display.ClearScreen()
		}),
	)
}

// startFetch requests the records of the current window
func (o *Orchestrator) startFetch() {
	current := o.store.Get()
	seq, key := o.refreshCtrl.Start(o.ctx, current.LookupTimeRangePast, current.LookupTimeRangeFuture)
	o.stateManager.BeginFetch(seq, key)
}

// currentView runs the pipeline over the latest state
func (o *Orchestrator) currentView() View {
	year := util.GetTimeProvider().CurrentYear()
	return Compute(o.stateManager.PipelineInput(o.store.Get(), year))
}

// updateDisplay updates the terminal display
func (o *Orchestrator) updateDisplay() {
	view := o.currentView()
	if o.gauge != nil && view.Phase == PhaseReady {
		o.gauge.SetUrgent(view.UrgentCount)
	}
	o.display.Render(buildFrame(view, o.stateManager, util.GetTimeProvider().Now()))
}

// handleKeyboard handles keyboard events and reports whether to exit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	if dialog := o.stateManager.ConfirmDialog(); dialog != nil {
		switch interaction.DialogActionFor(event) {
		case interaction.ActionConfirm:
			if dialog.OnConfirm != nil {
				dialog.OnConfirm()
			}
			o.display.ClearScreen()
		case interaction.ActionCancel:
			if dialog.OnCancel != nil {
				dialog.OnCancel()
			}
			o.display.ClearScreen()
		case interaction.ActionQuit:
			return true
		}
		return false
	}

	o.stateManager.SetStatusMessage("")
	view := o.currentView()

	switch interaction.ActionFor(event) {
	case interaction.ActionQuit:
		return true
	case interaction.ActionEscape:
		// Close help first; otherwise quit
		if !o.stateManager.ShowHelp() {
			return true
		}
		o.stateManager.SetShowHelp(false)
	case interaction.ActionToggleHelp:
		o.stateManager.SetShowHelp(!o.stateManager.ShowHelp())
	case interaction.ActionCycleFlightStatus:
		o.stateManager.UpdateCriteria(func(c *model.FilterCriteria) { c.FlightStatus = c.FlightStatus.Next() })
	case interaction.ActionCyclePassengerType:
		o.stateManager.UpdateCriteria(func(c *model.FilterCriteria) { c.PassengerType = c.PassengerType.Next() })
	case interaction.ActionCycleBaggageStatus:
		o.stateManager.UpdateCriteria(func(c *model.FilterCriteria) { c.BaggageStatus = c.BaggageStatus.Next() })
	case interaction.ActionSelectPrev:
		o.stateManager.MoveSelection(-1, len(view.Records))
	case interaction.ActionSelectNext:
		o.stateManager.MoveSelection(1, len(view.Records))
	case interaction.ActionToggleCard:
		if len(view.Records) > 0 {
			o.stateManager.ToggleExpanded(view.Records[o.stateManager.Selected(len(view.Records))].Key())
		}
	case interaction.ActionToggleTheme:
		o.toggleTheme()
	case interaction.ActionToggleExpandedDefault:
		o.store.SetCardsExpandedByDefault(!o.store.CardsExpandedByDefault())
	case interaction.ActionPastHoursDown:
		o.adjustHours(o.store.LookupTimeRangePast(), -1, o.store.SetLookupTimeRangePast)
	case interaction.ActionPastHoursUp:
		o.adjustHours(o.store.LookupTimeRangePast(), 1, o.store.SetLookupTimeRangePast)
	case interaction.ActionFutureHoursDown:
		o.adjustHours(o.store.LookupTimeRangeFuture(), -1, o.store.SetLookupTimeRangeFuture)
	case interaction.ActionFutureHoursUp:
		o.adjustHours(o.store.LookupTimeRangeFuture(), 1, o.store.SetLookupTimeRangeFuture)
	case interaction.ActionResetSettings:
		o.confirmReset()
	case interaction.ActionRefresh:
		o.refreshCtrl.Invalidate()
		o.startFetch()
	}
	return false
}

func (o *Orchestrator) toggleTheme() {
	next := settings.ThemeLight
	if o.store.Theme() == settings.ThemeLight {
		next = settings.ThemeDark
	}
	if err := o.store.SetTheme(next); err != nil {
		o.stateManager.SetStatusMessage(err.Error())
	}
}

func (o *Orchestrator) adjustHours(current, delta int, set func(int) error) {
	next := current + delta
	if next < minLookupHours {
		o.stateManager.SetStatusMessage(fmt.Sprintf("Lookup window cannot be shorter than %s", util.FormatHours(minLookupHours)))
		return
	}
	if err := set(next); err != nil {
		o.stateManager.SetStatusMessage(err.Error())
	}
}

// confirmReset asks before restoring default settings
func (o *Orchestrator) confirmReset() {
	o.stateManager.SetConfirmDialog(&display.ConfirmDialog{
		Title:   "Reset Settings",
		Message: "This will restore the default theme, lookup window and card expansion. Continue?",
		OnConfirm: func() {
			o.stateManager.SetConfirmDialog(nil)
			o.store.ResetToDefaults()
			o.stateManager.SetStatusMessage("Settings reset to defaults")
		},
		OnCancel: func() {
			o.stateManager.SetConfirmDialog(nil)
		},
	})
}

// Close releases input and monitoring resources
func (o *Orchestrator) Close() {
	for _, unsubscribe := range o.unsubscribers {
		unsubscribe()
	}
	o.unsubscribers = nil

	if o.keyboard != nil {
		if err := o.keyboard.Close(); err != nil {
			util.LogWarnf("Failed to restore terminal: %v", err)
		}
	}
	if o.monitor != nil {
		if err := o.monitor.Close(); err != nil {
			util.LogWarnf("Failed to stop settings watcher: %v", err)
		}
	}
}

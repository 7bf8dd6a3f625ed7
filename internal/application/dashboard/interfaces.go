package dashboard

import (
	"context"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/presentation/display"
	"github.com/penwyp/go-baggage-monitor/internal/presentation/interaction"
)

// RecordFetcher loads records for a lookup window
type RecordFetcher interface {
	// Fetch returns the records for the window around now
	Fetch(ctx context.Context, pastHours, futureHours int) ([]model.LoadingRecord, error)
	// Invalidate drops cached windows so the next Fetch hits the backend
	Invalidate()
}

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// ClearScreen clears the terminal screen
	ClearScreen()
	// Render draws one frame
	Render(frame display.Frame)
}

// InputHandler processes keyboard and other input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// SettingsMonitor signals when the persisted settings changed on disk
type SettingsMonitor interface {
	Events() <-chan struct{}
	Close() error
}

// UrgentGauge publishes the urgent record count of the current view
type UrgentGauge interface {
	SetUrgent(n int)
}

// Package records serves loading records for a lookup window, with caching
// and request sharing in front of the backend client.
package records

import (
	"fmt"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
)

// Window is the departure range requested from the backend
type Window struct {
	From        time.Time
	To          time.Time
	PastHours   int
	FutureHours int
}

// NewWindow spans [now-past, now+future] in UTC. Hour counts beyond
// constants.MaxLookupHours are clamped so the span cannot overflow.
func NewWindow(now time.Time, pastHours, futureHours int) Window {
	now = now.UTC()
	return Window{
		From:        now.Add(-hoursSpan(pastHours)),
		To:          now.Add(hoursSpan(futureHours)),
		PastHours:   pastHours,
		FutureHours: futureHours,
	}
}

// Key identifies the window by its hour pair only, so that repeated requests
// for the same settings share a cache entry while time moves on.
func (w Window) Key() string {
	return WindowKey(w.PastHours, w.FutureHours)
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.From.Format(time.RFC3339), w.To.Format(time.RFC3339))
}

// WindowKey names a lookup window by its hour pair
func WindowKey(pastHours, futureHours int) string {
	return fmt.Sprintf("%d:%d", pastHours, futureHours)
}

func hoursSpan(hours int) time.Duration {
	return time.Duration(min(hours, constants.MaxLookupHours)) * time.Hour
}

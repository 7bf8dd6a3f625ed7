// Package alert derives the single banner shown above the card list.
package alert

import (
	"fmt"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
	"github.com/penwyp/go-baggage-monitor/internal/core/departure"
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

// Candidate is an urgent record together with its parsed departure
type Candidate struct {
	Record    model.LoadingRecord
	Departure time.Time
	Index     int
}

// MostUrgent returns the urgent record with the soonest departure. Ties keep
// the earlier record. Records whose departure stamp does not parse cannot be
// ranked and are skipped.
func MostUrgent(records []model.LoadingRecord, year int) (Candidate, bool) {
	var best Candidate
	found := false

	for i, r := range records {
		if !r.IsUrgent() {
			continue
		}
		dep, err := departure.Parse(r.DepartureDateTime, year)
		if err != nil {
			util.LogDebugf("Skipping %s in alert ranking: %v", r.Key(), err)
			continue
		}
		if !found || dep.Before(best.Departure) {
			best = Candidate{Record: r, Departure: dep, Index: i}
			found = true
		}
	}
	return best, found
}

// Select returns the alert message for the most urgent record in the given
// (already filtered) view, or false when nothing is urgent.
func Select(records []model.LoadingRecord, year int) (string, bool) {
	c, ok := MostUrgent(records, year)
	if !ok {
		return "", false
	}
	return Message(c.Record), true
}

// Message renders the urgency text for a record
func Message(r model.LoadingRecord) string {
	return fmt.Sprintf("Passenger %s has boarded, but %s is not loaded", r.Seat, r.BaggageType.Label())
}

// CountUrgent counts urgent records regardless of whether they can be ranked
func CountUrgent(records []model.LoadingRecord) int {
	n := 0
	for _, r := range records {
		if r.IsUrgent() {
			n++
		}
	}
	return n
}

// WindowNotice describes a lookup window that differs from the default
func WindowNotice(pastHours, futureHours int) (string, bool) {
	if pastHours == constants.DefaultLookupPastHours && futureHours == constants.DefaultLookupFutureHours {
		return "", false
	}
	return fmt.Sprintf("Showing records from %d hours ago to %d hours in advance", pastHours, futureHours), true
}

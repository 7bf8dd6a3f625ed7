// Package filter narrows a record list to the currently selected view.
package filter

import "github.com/penwyp/go-baggage-monitor/internal/core/model"

// Predicate decides whether a record stays in the view
type Predicate func(model.LoadingRecord) bool

// Apply keeps the records passing every active filter, in input order.
// Filters set to All are skipped. The result is never nil.
func Apply(records []model.LoadingRecord, criteria model.FilterCriteria) []model.LoadingRecord {
	predicates := Predicates(criteria)

	result := make([]model.LoadingRecord, 0, len(records))
	for _, r := range records {
		if matchesAll(r, predicates) {
			result = append(result, r)
		}
	}
	return result
}

// Predicates returns the active predicates for criteria. An empty slice
// means every record passes.
func Predicates(criteria model.FilterCriteria) []Predicate {
	criteria = criteria.Normalize()

	var predicates []Predicate
	if p := byFlightStatus(criteria.FlightStatus); p != nil {
		predicates = append(predicates, p)
	}
	if p := byPassengerType(criteria.PassengerType); p != nil {
		predicates = append(predicates, p)
	}
	if p := byBaggageStatus(criteria.BaggageStatus); p != nil {
		predicates = append(predicates, p)
	}
	return predicates
}

func matchesAll(r model.LoadingRecord, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p(r) {
			return false
		}
	}
	return true
}

func byFlightStatus(status model.FlightStatus) Predicate {
	switch status {
	case model.FlightStatusBoarded:
		return func(r model.LoadingRecord) bool { return r.HasBoarded }
	case model.FlightStatusNotBoarded:
		return func(r model.LoadingRecord) bool { return !r.HasBoarded }
	}
	return nil
}

func byPassengerType(passenger model.PassengerType) Predicate {
	var want model.BaggageType
	switch passenger {
	case model.PassengerTypePet:
		want = model.BaggagePet
	case model.PassengerTypeWheelchair:
		want = model.BaggageWheelchair
	case model.PassengerTypeWeapon:
		want = model.BaggageWeapon
	default:
		return nil
	}
	return func(r model.LoadingRecord) bool { return r.BaggageType == want }
}

func byBaggageStatus(status model.BaggageStatus) Predicate {
	var want model.LoadStatus
	switch status {
	case model.BaggageStatusLoaded:
		want = model.StatusLoaded
	case model.BaggageStatusNotLoaded:
		want = model.StatusNotLoaded
	default:
		return nil
	}
	return func(r model.LoadingRecord) bool { return r.Status == want }
}

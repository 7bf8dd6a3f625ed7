package filter

import (
	"testing"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func sampleRecords() []model.LoadingRecord {
	return []model.LoadingRecord{
		{FlightNumber: "DL123", Seat: "8A", BaggageType: model.BaggagePet, Status: model.StatusNotLoaded, HasBoarded: true, DepartureDateTime: "28/FEB 23:30", FlightStand: "A12B3", Bagtag: "0006123456"},
		{FlightNumber: "UA360", Seat: "3F", BaggageType: model.BaggageWeapon, Status: model.StatusLoaded, HasBoarded: false, DepartureDateTime: "28/FEB 15:45", FlightStand: "C07D1", Bagtag: "0016987654"},
		{FlightNumber: "KL642", Seat: "21C", BaggageType: model.BaggageWheelchair, Status: model.StatusLoaded, HasBoarded: true, DepartureDateTime: "01/MAR 06:10", FlightStand: "D04E2", Bagtag: "0074111222"},
		{FlightNumber: "KL642", Seat: "21C", BaggageType: model.BaggagePet, Status: model.StatusNotLoaded, HasBoarded: true, DepartureDateTime: "01/MAR 06:10", FlightStand: "D04E2", Bagtag: "0074111223"},
		{FlightNumber: "AF1141", Seat: "14D", BaggageType: model.BaggageWheelchair, Status: model.StatusNotLoaded, HasBoarded: false, DepartureDateTime: "bad stamp", FlightStand: "B11A9", Bagtag: "0057333444"},
	}
}

func criteria(fs model.FlightStatus, pt model.PassengerType, bs model.BaggageStatus) model.FilterCriteria {
	return model.FilterCriteria{FlightStatus: fs, PassengerType: pt, BaggageStatus: bs}
}

func allCriteria() []model.FilterCriteria {
	var all []model.FilterCriteria
	for _, fs := range model.FlightStatusOptions {
		for _, pt := range model.PassengerTypeOptions {
			for _, bs := range model.BaggageStatusOptions {
				all = append(all, criteria(fs, pt, bs))
			}
		}
	}
	return all
}

func TestApply(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		criteria model.FilterCriteria
		want     []string
	}{
		{
			name:     "all filters off",
			criteria: model.DefaultCriteria(),
			want:     []string{"DL123-8A-pet", "UA360-3F-weapon", "KL642-21C-wheelchair", "KL642-21C-pet", "AF1141-14D-wheelchair"},
		},
		{
			name:     "boarded only",
			criteria: criteria(model.FlightStatusBoarded, model.PassengerTypeAll, model.BaggageStatusAll),
			want:     []string{"DL123-8A-pet", "KL642-21C-wheelchair", "KL642-21C-pet"},
		},
		{
			name:     "not boarded only",
			criteria: criteria(model.FlightStatusNotBoarded, model.PassengerTypeAll, model.BaggageStatusAll),
			want:     []string{"UA360-3F-weapon", "AF1141-14D-wheelchair"},
		},
		{
			name:     "pets",
			criteria: criteria(model.FlightStatusAll, model.PassengerTypePet, model.BaggageStatusAll),
			want:     []string{"DL123-8A-pet", "KL642-21C-pet"},
		},
		{
			name:     "loaded",
			criteria: criteria(model.FlightStatusAll, model.PassengerTypeAll, model.BaggageStatusLoaded),
			want:     []string{"UA360-3F-weapon", "KL642-21C-wheelchair"},
		},
		{
			name:     "conjunction of all three",
			criteria: criteria(model.FlightStatusNotBoarded, model.PassengerTypeWheelchair, model.BaggageStatusNotLoaded),
			want:     []string{"AF1141-14D-wheelchair"},
		},
		{
			name:     "no match",
			criteria: criteria(model.FlightStatusBoarded, model.PassengerTypeWeapon, model.BaggageStatusAll),
			want:     []string{},
		},
		{
			name:     "zero value criteria behaves as all",
			criteria: model.FilterCriteria{},
			want:     []string{"DL123-8A-pet", "UA360-3F-weapon", "KL642-21C-wheelchair", "KL642-21C-pet", "AF1141-14D-wheelchair"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, tt.criteria)
			keys := make([]string, 0, len(got))
			for _, r := range got {
				keys = append(keys, r.Key().String())
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestApply_EmptyInput(t *testing.T) {
	for _, c := range allCriteria() {
		got := Apply(nil, c)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestApply_IdentityLaw(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, records, Apply(records, model.DefaultCriteria()))
}

func TestApply_SubsetInOrder(t *testing.T) {
	records := sampleRecords()
	for _, c := range allCriteria() {
		got := Apply(records, c)

		// every output record appears in the input after the previous one
		next := 0
		for _, r := range got {
			found := false
			for next < len(records) {
				if records[next] == r {
					found = true
					next++
					break
				}
				next++
			}
			assert.True(t, found, "criteria %s produced a record out of order or not in input", c)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	records := sampleRecords()
	for _, c := range allCriteria() {
		once := Apply(records, c)
		assert.Equal(t, once, Apply(once, c), "criteria %s", c)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := append([]model.LoadingRecord(nil), records...)
	_ = Apply(records, criteria(model.FlightStatusBoarded, model.PassengerTypePet, model.BaggageStatusNotLoaded))
	assert.Equal(t, before, records)
}

func TestPredicates_AllIsNoop(t *testing.T) {
	assert.Empty(t, Predicates(model.DefaultCriteria()))
	assert.Len(t, Predicates(criteria(model.FlightStatusBoarded, model.PassengerTypePet, model.BaggageStatusLoaded)), 3)
}

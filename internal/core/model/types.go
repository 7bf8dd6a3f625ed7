package model

import (
	"fmt"
	"strings"
)

// BaggageType is the kind of special baggage a record tracks
type BaggageType string

const (
	BaggagePet        BaggageType = "pet"
	BaggageWheelchair BaggageType = "wheelchair"
	BaggageWeapon     BaggageType = "weapon"
)

// Valid reports whether t is one of the known baggage types
func (t BaggageType) Valid() bool {
	switch t {
	case BaggagePet, BaggageWheelchair, BaggageWeapon:
		return true
	}
	return false
}

// Label is the capitalized display form used in alert messages ("Pet")
func (t BaggageType) Label() string {
	switch t {
	case BaggagePet:
		return "Pet"
	case BaggageWheelchair:
		return "Wheelchair"
	case BaggageWeapon:
		return "Weapon"
	}
	return string(t)
}

// Badge is the upper-case form shown on cards ("PET")
func (t BaggageType) Badge() string {
	return strings.ToUpper(t.Label())
}

// LoadStatus is whether the special baggage is in the hold
type LoadStatus string

const (
	StatusLoaded    LoadStatus = "loaded"
	StatusNotLoaded LoadStatus = "not_loaded"
)

func (s LoadStatus) Valid() bool {
	return s == StatusLoaded || s == StatusNotLoaded
}

// Badge is the card label for the status ("NOT LOADED")
func (s LoadStatus) Badge() string {
	switch s {
	case StatusLoaded:
		return "LOADED"
	case StatusNotLoaded:
		return "NOT LOADED"
	}
	return strings.ToUpper(string(s))
}

// LoadingRecord is one special-baggage item as reported by the backend.
// Records are treated as immutable once fetched.
type LoadingRecord struct {
	FlightNumber      string      `json:"flightNumber"`
	Seat              string      `json:"seat"`
	BaggageType       BaggageType `json:"baggageType"`
	Status            LoadStatus  `json:"status"`
	HasBoarded        bool        `json:"hasBoarded"`
	DepartureDateTime string      `json:"departureDateTime"` // DD/MMM HH:MM, no year
	FlightStand       string      `json:"flightStand"`
	Bagtag            string      `json:"bagtag"`
}

// RecordKey identifies a record for UI purposes. A passenger can carry
// several special items, so flight and seat alone are not enough.
type RecordKey struct {
	FlightNumber string
	Seat         string
	BaggageType  BaggageType
}

func (k RecordKey) String() string {
	return fmt.Sprintf("%s-%s-%s", k.FlightNumber, k.Seat, k.BaggageType)
}

// Key returns the composite UI identity of the record
func (r LoadingRecord) Key() RecordKey {
	return RecordKey{FlightNumber: r.FlightNumber, Seat: r.Seat, BaggageType: r.BaggageType}
}

// IsUrgent reports a boarded passenger whose baggage is not loaded
func (r LoadingRecord) IsUrgent() bool {
	return r.HasBoarded && r.Status == StatusNotLoaded
}

// BoardingLabel is the passenger status text on expanded cards
func (r LoadingRecord) BoardingLabel() string {
	if r.HasBoarded {
		return "BOARDED"
	}
	return "NOT BOARDED"
}

package model

import (
	"fmt"
	"strings"
)

// All disables a filter
const All = "All"

// FlightStatus filters on whether the passenger has boarded
type FlightStatus string

const (
	FlightStatusAll        FlightStatus = All
	FlightStatusBoarded    FlightStatus = "Boarded"
	FlightStatusNotBoarded FlightStatus = "Not Boarded"
)

// FlightStatusOptions lists the choices in display order
var FlightStatusOptions = []FlightStatus{FlightStatusAll, FlightStatusBoarded, FlightStatusNotBoarded}

// PassengerType filters on the baggage type
type PassengerType string

const (
	PassengerTypeAll        PassengerType = All
	PassengerTypePet        PassengerType = "Pet"
	PassengerTypeWheelchair PassengerType = "Wheelchair"
	PassengerTypeWeapon     PassengerType = "Weapon"
)

var PassengerTypeOptions = []PassengerType{PassengerTypeAll, PassengerTypePet, PassengerTypeWheelchair, PassengerTypeWeapon}

// BaggageStatus filters on the load status
type BaggageStatus string

const (
	BaggageStatusAll       BaggageStatus = All
	BaggageStatusLoaded    BaggageStatus = "Loaded"
	BaggageStatusNotLoaded BaggageStatus = "Not Loaded"
)

var BaggageStatusOptions = []BaggageStatus{BaggageStatusAll, BaggageStatusLoaded, BaggageStatusNotLoaded}

// FilterCriteria holds the three independent view filters. The zero value
// is not valid; use DefaultCriteria.
type FilterCriteria struct {
	FlightStatus  FlightStatus  `json:"flightStatus"`
	PassengerType PassengerType `json:"passengerType"`
	BaggageStatus BaggageStatus `json:"baggageStatus"`
}

// DefaultCriteria shows everything
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		FlightStatus:  FlightStatusAll,
		PassengerType: PassengerTypeAll,
		BaggageStatus: BaggageStatusAll,
	}
}

// Normalize maps empty fields to All
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.FlightStatus == "" {
		c.FlightStatus = FlightStatusAll
	}
	if c.PassengerType == "" {
		c.PassengerType = PassengerTypeAll
	}
	if c.BaggageStatus == "" {
		c.BaggageStatus = BaggageStatusAll
	}
	return c
}

func (c FilterCriteria) String() string {
	return fmt.Sprintf("flight=%s passenger=%s baggage=%s", c.FlightStatus, c.PassengerType, c.BaggageStatus)
}

// normalizeOption compares ignoring case, spaces, dashes and underscores so
// "not-boarded", "NOT_BOARDED" and "Not Boarded" are the same choice.
func normalizeOption(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

func parseOption[T ~string](value string, options []T, kind string) (T, error) {
	want := normalizeOption(value)
	for _, opt := range options {
		if normalizeOption(string(opt)) == want {
			return opt, nil
		}
	}
	names := make([]string, len(options))
	for i, opt := range options {
		names[i] = string(opt)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (valid: %s)", kind, value, strings.Join(names, ", "))
}

func nextOption[T comparable](current T, options []T) T {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func ParseFlightStatus(s string) (FlightStatus, error) {
	return parseOption(s, FlightStatusOptions, "flight status")
}

func ParsePassengerType(s string) (PassengerType, error) {
	return parseOption(s, PassengerTypeOptions, "passenger type")
}

func ParseBaggageStatus(s string) (BaggageStatus, error) {
	return parseOption(s, BaggageStatusOptions, "baggage status")
}

// Next cycles to the following option, wrapping to All
func (f FlightStatus) Next() FlightStatus { return nextOption(f, FlightStatusOptions) }

func (p PassengerType) Next() PassengerType { return nextOption(p, PassengerTypeOptions) }

func (b BaggageStatus) Next() BaggageStatus { return nextOption(b, BaggageStatusOptions) }

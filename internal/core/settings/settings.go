// Package settings holds the user preferences of the dashboard and keeps
// them persisted across runs.
package settings

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
)

// Theme selects the terminal palette
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Settings is a snapshot of every user preference
type Settings struct {
	Theme                  Theme `json:"theme"`
	LookupTimeRangePast    int   `json:"lookupTimeRangePast"`
	LookupTimeRangeFuture  int   `json:"lookupTimeRangeFuture"`
	CardsExpandedByDefault bool  `json:"cardsExpandedByDefault"`
}

// Defaults returns the settings used before anything is persisted
func Defaults() Settings {
	return Settings{
		Theme:                  ThemeDark,
		LookupTimeRangePast:    constants.DefaultLookupPastHours,
		LookupTimeRangeFuture:  constants.DefaultLookupFutureHours,
		CardsExpandedByDefault: false,
	}
}

// Field is a bit mask over the settings fields, used for change
// notifications.
type Field uint8

const (
	FieldTheme Field = 1 << iota
	FieldLookupPast
	FieldLookupFuture
	FieldCardsExpanded

	FieldLookupWindow = FieldLookupPast | FieldLookupFuture
	FieldAll          = FieldTheme | FieldLookupWindow | FieldCardsExpanded
)

var fieldNames = []struct {
	field Field
	name  string
}{
	{FieldTheme, "theme"},
	{FieldLookupPast, "lookupTimeRangePast"},
	{FieldLookupFuture, "lookupTimeRangeFuture"},
	{FieldCardsExpanded, "cardsExpandedByDefault"},
}

// Has reports whether any bit of other is set in f
func (f Field) Has(other Field) bool {
	return f&other != 0
}

func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range fieldNames {
		if f.Has(fn.field) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// Changed returns the fields that differ between two snapshots
func Changed(before, after Settings) Field {
	var f Field
	if before.Theme != after.Theme {
		f |= FieldTheme
	}
	if before.LookupTimeRangePast != after.LookupTimeRangePast {
		f |= FieldLookupPast
	}
	if before.LookupTimeRangeFuture != after.LookupTimeRangeFuture {
		f |= FieldLookupFuture
	}
	if before.CardsExpandedByDefault != after.CardsExpandedByDefault {
		f |= FieldCardsExpanded
	}
	return f
}

func (s Settings) String() string {
	return fmt.Sprintf("theme=%s past=%dh future=%dh expanded=%t",
		s.Theme, s.LookupTimeRangePast, s.LookupTimeRangeFuture, s.CardsExpandedByDefault)
}

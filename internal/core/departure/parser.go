// Package departure parses the compact, year-less departure stamps the
// backend sends ("28/FEB 23:30") into comparable instants.
//
// The stamp carries no year, so the caller supplies one (normally the current
// calendar year). Stamps on either side of a year boundary therefore get the
// same year and a January departure sorts before a December one. This is a
// known limitation of the wire format, not something this package corrects.
package departure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the display format of departure stamps
const Layout = "DD/MMM HH:MM"

// ErrMalformed is returned for any stamp that does not match Layout
var ErrMalformed = errors.New("malformed departure time")

var months = map[string]time.Month{
	"JAN": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"APR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AUG": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DEC": time.December,
}

// Parse converts a DD/MMM HH:MM stamp into a UTC instant in the given year.
// Month names are upper case only.
func Parse(stamp string, year int) (time.Time, error) {
	datePart, timePart, ok := strings.Cut(stamp, " ")
	if !ok {
		return time.Time{}, malformed(stamp, "missing time")
	}

	dayStr, monthStr, ok := strings.Cut(datePart, "/")
	if !ok {
		return time.Time{}, malformed(stamp, "missing month")
	}
	month, ok := months[monthStr]
	if !ok {
		return time.Time{}, malformed(stamp, "unknown month "+strconv.Quote(monthStr))
	}
	day, err := component(dayStr, 1, 2)
	if err != nil {
		return time.Time{}, malformed(stamp, "day: "+err.Error())
	}

	hourStr, minuteStr, ok := strings.Cut(timePart, ":")
	if !ok {
		return time.Time{}, malformed(stamp, "missing minutes")
	}
	hour, err := component(hourStr, 2, 2)
	if err != nil {
		return time.Time{}, malformed(stamp, "hour: "+err.Error())
	}
	minute, err := component(minuteStr, 2, 2)
	if err != nil {
		return time.Time{}, malformed(stamp, "minute: "+err.Error())
	}

	if hour > 23 || minute > 59 {
		return time.Time{}, malformed(stamp, "time out of range")
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes 30/FEB into March; reject instead.
	if t.Month() != month || t.Day() != day {
		return time.Time{}, malformed(stamp, "day out of range")
	}
	return t, nil
}

// Format renders t back into the stamp layout
func Format(t time.Time) string {
	return fmt.Sprintf("%02d/%s %02d:%02d", t.Day(), strings.ToUpper(t.Month().String()[:3]), t.Hour(), t.Minute())
}

func component(s string, minLen, maxLen int) (int, error) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, fmt.Errorf("want %d-%d digits, got %q", minLen, maxLen, s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number: %q", s)
		}
	}
	return strconv.Atoi(s)
}

func malformed(stamp, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformed, stamp, reason)
}

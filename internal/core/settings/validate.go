package settings

import (
	"errors"
	"strconv"
	"strings"

	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
)

var (
	ErrInvalidHours = errors.New("must be a positive whole number of hours")
	ErrInvalidTheme = errors.New("must be one of: dark, light")
	ErrInvalidBool  = errors.New("must be true or false")
)

// FieldError ties a validation failure to the input field that caused it
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseHours validates raw user input for one of the lookup window fields.
// Only plain positive integers up to constants.MaxLookupHours are accepted:
// "1.5", "-2", "+3" and "" are rejected.
func ParseHours(field, input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, &FieldError{Field: field, Err: ErrInvalidHours}
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return 0, &FieldError{Field: field, Err: ErrInvalidHours}
		}
	}
	hours, err := strconv.Atoi(input)
	if err != nil || !validHours(hours) {
		return 0, &FieldError{Field: field, Err: ErrInvalidHours}
	}
	return hours, nil
}

// ParseTheme accepts a theme name in any case
func ParseTheme(field, input string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(input)))
	if !t.Valid() {
		return "", &FieldError{Field: field, Err: ErrInvalidTheme}
	}
	return t, nil
}

// ParseBool accepts the forms understood by strconv.ParseBool
func ParseBool(field, input string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(input))
	if err != nil {
		return false, &FieldError{Field: field, Err: ErrInvalidBool}
	}
	return v, nil
}

func validHours(h int) bool {
	return h > 0 && h <= constants.MaxLookupHours
}

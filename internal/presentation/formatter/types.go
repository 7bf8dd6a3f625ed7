// Package formatter renders one-shot record listings for the terminal and
// for scripts.
package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
)

// Formatter writes a report in one output format
type Formatter interface {
	Format(report Report) error
}

// Supported output formats
const (
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatSummary = "summary"
)

// Formats lists the accepted --output values
var Formats = []string{FormatTable, FormatJSON, FormatCSV, FormatSummary}

// Row is one record flattened for output
type Row struct {
	Flight    string `json:"flightNumber"`
	Seat      string `json:"seat"`
	Baggage   string `json:"baggageType"`
	Status    string `json:"status"`
	Passenger string `json:"passenger"`
	Departure string `json:"departureDateTime"`
	Stand     string `json:"flightStand"`
	Bagtag    string `json:"bagtag"`
	Urgent    bool   `json:"urgent"`
}

// Report is a filtered listing together with the banner it produced
type Report struct {
	Rows        []Row                `json:"records"`
	Banner      string               `json:"banner,omitempty"`
	BannerKind  string               `json:"bannerKind"`
	Criteria    model.FilterCriteria `json:"filters"`
	PastHours   int                  `json:"lookupTimeRangePast"`
	FutureHours int                  `json:"lookupTimeRangeFuture"`
	Total       int                  `json:"total"`
	Urgent      int                  `json:"urgent"`
	GeneratedAt time.Time            `json:"generatedAt"`
}

// RowFromRecord flattens a record
func RowFromRecord(r model.LoadingRecord) Row {
	return Row{
		Flight:    r.FlightNumber,
		Seat:      r.Seat,
		Baggage:   r.BaggageType.Label(),
		Status:    r.Status.Badge(),
		Passenger: r.BoardingLabel(),
		Departure: r.DepartureDateTime,
		Stand:     r.FlightStand,
		Bagtag:    r.Bagtag,
		Urgent:    r.IsUrgent(),
	}
}

// RowsFromRecords flattens records in order
func RowsFromRecords(records []model.LoadingRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, RowFromRecord(r))
	}
	return rows
}

// New returns the formatter for format writing to w
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatTable, "":
		return NewTableFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatSummary:
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}

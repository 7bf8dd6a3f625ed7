package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
)

// SummaryFormatter prints counts per baggage type instead of individual records
type SummaryFormatter struct {
	w io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

// TypeSummary holds the counts for one baggage type
type TypeSummary struct {
	Baggage   string
	Total     int
	Loaded    int
	NotLoaded int
	Urgent    int
}

// Summarize groups rows by baggage type in the fixed type order. Types
// outside the known set are appended in order of first appearance.
func Summarize(rows []Row) []TypeSummary {
	index := make(map[string]int)
	var result []TypeSummary
	for _, t := range []model.BaggageType{model.BaggagePet, model.BaggageWheelchair, model.BaggageWeapon} {
		index[t.Label()] = len(result)
		result = append(result, TypeSummary{Baggage: t.Label()})
	}

	for _, row := range rows {
		i, ok := index[row.Baggage]
		if !ok {
			i = len(result)
			index[row.Baggage] = i
			result = append(result, TypeSummary{Baggage: row.Baggage})
		}
		s := &result[i]
		s.Total++
		if row.Status == model.StatusLoaded.Badge() {
			s.Loaded++
		} else {
			s.NotLoaded++
		}
		if row.Urgent {
			s.Urgent++
		}
	}
	return result
}

// Format outputs per-type counts and the banner
func (f *SummaryFormatter) Format(report Report) error {
	fmt.Fprintln(f.w, "Special Baggage Summary")
	fmt.Fprintln(f.w, "=======================")
	fmt.Fprintf(f.w, "Window: %d hours ago to %d hours ahead\n", report.PastHours, report.FutureHours)
	fmt.Fprintf(f.w, "Filters: %s\n", report.Criteria)
	if report.Banner != "" {
		fmt.Fprintf(f.w, "Alert: %s\n", report.Banner)
	}
	fmt.Fprintln(f.w)

	fmt.Fprintf(f.w, "%-12s %7s %7s %11s %7s\n", "Baggage", "Total", "Loaded", "Not Loaded", "Urgent")
	var total TypeSummary
	for _, s := range Summarize(report.Rows) {
		fmt.Fprintf(f.w, "%-12s %7d %7d %11d %7d\n", s.Baggage, s.Total, s.Loaded, s.NotLoaded, s.Urgent)
		total.Total += s.Total
		total.Loaded += s.Loaded
		total.NotLoaded += s.NotLoaded
		total.Urgent += s.Urgent
	}
	fmt.Fprintf(f.w, "%-12s %7d %7d %11d %7d\n", "Total", total.Total, total.Loaded, total.NotLoaded, total.Urgent)
	fmt.Fprintf(f.w, "\nShowing %d of %d fetched records\n", len(report.Rows), report.Total)
	return nil
}

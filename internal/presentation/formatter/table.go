package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w: w,
		headers: []string{
			"Flight", "Seat", "Baggage", "Status",
			"Passenger", "Departure", "Stand", "Bagtag",
		},
	}
}

func (f *TableFormatter) Format(report Report) error {
	if report.Banner != "" {
		marker := "ℹ"
		if report.BannerKind == "urgent" {
			marker = "⚠"
		}
		fmt.Fprintf(f.w, "%s %s\n", marker, report.Banner)
	}

	if len(report.Rows) == 0 {
		fmt.Fprintln(f.w, "No records found matching your filters.")
		return nil
	}

	// Calculate optimal column widths based on content
	widths := f.calculateColumnWidths(report.Rows)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")

	for _, row := range report.Rows {
		f.printRow(rowValues(row), widths)
	}

	f.printBorder(widths, "bottom")
	fmt.Fprintf(f.w, "%d of %d records · %d urgent\n", len(report.Rows), report.Total, report.Urgent)
	return nil
}

func rowValues(row Row) []string {
	flight := row.Flight
	if row.Urgent {
		flight = "! " + flight
	}
	return []string{
		flight,
		row.Seat,
		row.Baggage,
		row.Status,
		row.Passenger,
		row.Departure,
		row.Stand,
		row.Bagtag,
	}
}

// calculateColumnWidths determines optimal width for each column based on content
func (f *TableFormatter) calculateColumnWidths(rows []Row) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, value := range rowValues(row) {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2)) // +2 for padding spaces
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.w, b.String())
}

// printRow prints a left-aligned row padded by display width
func (f *TableFormatter) printRow(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(value, widths[i]))
		b.WriteString(" │")
	}
	fmt.Fprintln(f.w, b.String())
}

package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

// Format writes one line per record. The banner is left out so the output
// stays a plain table.
func (f *CSVFormatter) Format(report Report) error {
	w := csv.NewWriter(f.w)

	headers := []string{
		"Flight", "Seat", "Baggage", "Status", "Passenger",
		"Departure", "Stand", "Bagtag", "Urgent",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{
			row.Flight,
			row.Seat,
			row.Baggage,
			row.Status,
			row.Passenger,
			row.Departure,
			row.Stand,
			row.Bagtag,
			strconv.FormatBool(row.Urgent),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

package display

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

const (
	flightColWidth    = 8
	seatColWidth      = 9
	typeColWidth      = 12
	departureColWidth = 14
	badgeWidth        = 12
)

// RenderCard draws one record. Collapsed cards take a single line; expanded
// cards add the passenger, stand, bagtag and type details.
func RenderCard(r model.LoadingRecord, expanded, selected bool, width int, p Palette) []string {
	marker := "▸"
	if expanded {
		marker = "▾"
	}
	cursor := " "
	if selected {
		cursor = util.Colorize(">", p.Selected)
	}

	badge := util.Colorize(util.CenterText(r.Status.Badge(), badgeWidth), p.StatusColor(r))
	head := fmt.Sprintf("%s %s %s%s%s%s",
		cursor,
		marker,
		util.PadRight(r.FlightNumber, flightColWidth),
		util.PadRight("Seat "+r.Seat, seatColWidth),
		util.PadRight(r.BaggageType.Label(), typeColWidth),
		util.PadRight(r.DepartureDateTime, departureColWidth),
	)
	if selected {
		head = util.Colorize(head, p.Selected)
	} else {
		head = util.Colorize(head, p.Text)
	}

	lines := []string{head + " " + badge}
	if !expanded {
		return lines
	}

	detailWidth := width - 6
	details := []string{
		fmt.Sprintf("Passenger: %s", r.BoardingLabel()),
		fmt.Sprintf("STAND – %s", r.FlightStand),
		fmt.Sprintf("Bagtag: %s", r.Bagtag),
		fmt.Sprintf("Type: %s", r.BaggageType.Badge()),
	}
	for _, d := range details {
		lines = append(lines, "      "+util.Colorize(util.PadRight(d, detailWidth), p.Muted))
	}
	return lines
}

// CardHeight is the number of lines RenderCard produces
func CardHeight(expanded bool) int {
	if expanded {
		return 5
	}
	return 1
}

// visibleRange picks the cards that fit in height lines while keeping the
// selected card on screen.
func visibleRange(f Frame, height int) (start, end int) {
	n := len(f.Records)
	if n == 0 || height <= 0 {
		return 0, 0
	}
	sel := f.Selected
	if sel < 0 {
		sel = 0
	}
	if sel >= n {
		sel = n - 1
	}

	used := CardHeight(f.IsExpanded(f.Records[sel]))
	start, end = sel, sel+1
	// fill upwards first, then downwards
	for start > 0 {
		h := CardHeight(f.IsExpanded(f.Records[start-1]))
		if used+h > height {
			break
		}
		used += h
		start--
	}
	for end < n {
		h := CardHeight(f.IsExpanded(f.Records[end]))
		if used+h > height {
			break
		}
		used += h
		end++
	}
	return start, end
}

func separator(width int, p Palette) string {
	return util.Colorize(strings.Repeat("─", width), p.Border)
}

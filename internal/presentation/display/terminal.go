// Package display draws the live baggage dashboard in the terminal.
package display

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-baggage-monitor/internal/core/alert"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

const (
	headerTitle = "SPECIAL BAGGAGE LOADING"
	loadingText = "Loading..."
	errorText   = "Error loading data"
	emptyText   = "No records found matching your filters."
)

type TerminalDisplay struct {
	out               io.Writer
	size              func() (int, int)
	inAlternateScreen bool
	isFirstRender     bool
	lastMode          screenMode
}

type screenMode int

const (
	modeNormal screenMode = iota
	modeHelp
	modeDialog
)

func NewTerminalDisplay() *TerminalDisplay {
	return NewTerminalDisplayWithWriter(os.Stdout, TerminalSize)
}

// NewTerminalDisplayWithWriter renders to out using size for the screen
// dimensions.
func NewTerminalDisplayWithWriter(out io.Writer, size func() (int, int)) *TerminalDisplay {
	return &TerminalDisplay{
		out:           out,
		size:          size,
		isFirstRender: true,
	}
}

// EnterAlternateScreen switches to the alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.AltScreenEnter, util.ClearScreen, util.ClearScrollback, util.MoveCursorHome, util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to the normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome, util.ShowCursor, util.AltScreenExit)
	td.inAlternateScreen = false
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	if td.inAlternateScreen {
		fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome)
	}
}

// Render redraws the whole screen in place. Lines are overwritten rather
// than cleared first so the terminal does not flicker.
func (td *TerminalDisplay) Render(f Frame) {
	width, height := td.size()

	mode := modeNormal
	switch {
	case f.ConfirmDialog != nil:
		mode = modeDialog
	case f.ShowHelp:
		mode = modeHelp
	}
	if td.isFirstRender || mode != td.lastMode {
		td.ClearScreen()
		td.isFirstRender = false
		td.lastMode = mode
	}

	var lines []string
	switch mode {
	case modeDialog:
		lines = BuildDialog(f.ConfirmDialog, width, PaletteFor(f.Settings.Theme))
	case modeHelp:
		lines = BuildHelp(width, PaletteFor(f.Settings.Theme))
	default:
		lines = BuildScreen(f, width, height)
	}

	w := bufio.NewWriter(td.out)
	fmt.Fprint(w, util.MoveCursorHome)
	for _, line := range lines {
		fmt.Fprint(w, line, util.ClearToEOL, "\r\n")
	}
	fmt.Fprint(w, util.ClearBelow)
	if err := w.Flush(); err != nil {
		util.LogDebugf("Render flush failed: %v", err)
	}
}

// BuildScreen lays out the dashboard for a width x height terminal
func BuildScreen(f Frame, width, height int) []string {
	p := PaletteFor(f.Settings.Theme)
	lines := []string{
		util.Colorize(util.CenterText(headerTitle, width), p.Header),
		util.Colorize(statusLine(f), p.Muted),
	}

	if f.Banner.Visible() {
		color := p.Notice
		if f.Banner.Kind == alert.BannerUrgent {
			color = p.Urgent
		}
		lines = append(lines, util.Colorize(util.PadRight(" "+f.Banner.Message, width), color))
	}

	lines = append(lines, filterLine(f, p), separator(width, p))

	footer := []string{separator(width, p), util.Colorize(footerLine(f), p.Muted)}
	if f.StatusMessage != "" {
		footer = append(footer, util.Colorize(f.StatusMessage, p.Selected))
	}

	body := bodyLines(f, width, height-len(lines)-len(footer), p)
	lines = append(lines, body...)
	return append(lines, footer...)
}

func bodyLines(f Frame, width, available int, p Palette) []string {
	switch f.Status {
	case StatusLoading:
		return []string{util.Colorize(util.CenterText(loadingText, width), p.Text)}
	case StatusError:
		return []string{util.Colorize(util.CenterText(errorText, width), p.Critical)}
	}
	if len(f.Records) == 0 {
		return []string{util.Colorize(util.CenterText(emptyText, width), p.Muted)}
	}

	if available < 1 {
		available = 1
	}
	start, end := visibleRange(f, available)
	var lines []string
	for i := start; i < end; i++ {
		r := f.Records[i]
		lines = append(lines, RenderCard(r, f.IsExpanded(r), i == f.Selected, width, p)...)
	}
	return lines
}

func statusLine(f Frame) string {
	parts := []string{
		fmt.Sprintf("Window: -%s / +%s", util.FormatHours(f.Settings.LookupTimeRangePast), util.FormatHours(f.Settings.LookupTimeRangeFuture)),
		fmt.Sprintf("Theme: %s", f.Settings.Theme),
	}
	if !f.LastUpdate.IsZero() {
		parts = append(parts, "Updated "+util.FormatAge(f.Now.Sub(f.LastUpdate)))
	}
	return strings.Join(parts, "  │  ")
}

func filterLine(f Frame, p Palette) string {
	c := f.Criteria.Normalize()
	item := func(key, label, value string) string {
		return fmt.Sprintf("[%s] %s: %s", key, label, util.Colorize(value, p.Selected))
	}
	return strings.Join([]string{
		item("f", "Flight", string(c.FlightStatus)),
		item("p", "Passenger", string(c.PassengerType)),
		item("b", "Baggage", string(c.BaggageStatus)),
	}, "   ")
}

func footerLine(f Frame) string {
	counts := fmt.Sprintf("%d of %d records", len(f.Records), f.TotalCount)
	if f.Status != StatusReady {
		counts = "-"
	} else if f.UrgentCount > 0 {
		counts += fmt.Sprintf(" · %d urgent", f.UrgentCount)
	}
	return counts + "   [h] help  [q] quit"
}

// BuildHelp lists the keyboard shortcuts
func BuildHelp(width int, p Palette) []string {
	rule := util.Colorize(strings.Repeat("═", width), p.Border)
	return []string{
		util.Colorize("Special Baggage Monitor - Help", p.Header),
		rule,
		"",
		"Filters:",
		"  f           - Cycle flight status (All → Boarded → Not Boarded)",
		"  p           - Cycle passenger type (All → Pet → Wheelchair → Weapon)",
		"  b           - Cycle baggage status (All → Loaded → Not Loaded)",
		"",
		"Cards:",
		"  ↑/↓, j/k    - Move selection",
		"  Space/Enter - Expand or collapse the selected card",
		"",
		"Settings:",
		"  t           - Toggle theme (dark/light)",
		"  e           - Toggle cards expanded by default",
		"  [ / ]       - Look back one hour less / more",
		"  { / }       - Look ahead one hour less / more",
		"  x           - Reset settings to defaults",
		"",
		"General:",
		"  r           - Refresh data now",
		"  h/?         - Show this help",
		"  q/Ctrl+C    - Quit (Esc closes help first)",
		"",
		rule,
		"Press 'h' to return...",
	}
}

// BuildDialog draws a centered yes/no box
func BuildDialog(d *ConfirmDialog, width int, p Palette) []string {
	boxWidth := 60
	if boxWidth > width {
		boxWidth = width
	}
	pad := strings.Repeat(" ", (width-boxWidth)/2)
	inner := boxWidth - 2

	lines := []string{"", "", "",
		pad + "╔" + strings.Repeat("═", inner) + "╗",
		pad + "║" + util.Colorize(util.CenterText(d.Title, inner), p.Header) + "║",
		pad + "╠" + strings.Repeat("═", inner) + "╣",
		pad + "║" + strings.Repeat(" ", inner) + "║",
	}
	for _, line := range wrapText(d.Message, inner-2) {
		lines = append(lines, pad+"║ "+util.PadRight(line, inner-2)+" ║")
	}
	return append(lines,
		pad+"║"+strings.Repeat(" ", inner)+"║",
		pad+"║"+util.CenterText("(Y)es / (N)o", inner)+"║",
		pad+"╚"+strings.Repeat("═", inner)+"╝",
	)
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}
	if util.GetDisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case util.GetDisplayWidth(currentLine)+1+util.GetDisplayWidth(word) <= width:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

package display

import (
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

// Palette maps screen elements to ANSI codes
type Palette struct {
	Header   string
	Text     string
	Muted    string
	Border   string
	Selected string
	Urgent   string
	Notice   string
	Loaded   string
	Pending  string
	Critical string
}

var darkPalette = Palette{
	Header:   util.ColorBold + util.ColorCyan,
	Text:     util.ColorWhite,
	Muted:    util.ColorGray,
	Border:   util.ColorGray,
	Selected: util.ColorBold + util.ColorYellow,
	Urgent:   util.BgRed + util.ColorWhite + util.ColorBold,
	Notice:   util.BgBlue + util.ColorWhite,
	Loaded:   util.BgGreen + util.ColorBlack,
	Pending:  util.BgYellow + util.ColorBlack,
	Critical: util.BgRed + util.ColorWhite,
}

var lightPalette = Palette{
	Header:   util.ColorBold + util.ColorBlue,
	Text:     util.ColorBlack,
	Muted:    util.ColorGray,
	Border:   util.ColorBlue,
	Selected: util.ColorBold + util.ColorMagenta,
	Urgent:   util.BgRed + util.ColorWhite + util.ColorBold,
	Notice:   util.BgYellow + util.ColorBlack,
	Loaded:   util.BgGreen + util.ColorBlack,
	Pending:  util.BgYellow + util.ColorBlack,
	Critical: util.BgRed + util.ColorWhite,
}

// PaletteFor returns the palette of a theme, dark for unknown values
func PaletteFor(theme settings.Theme) Palette {
	if theme == settings.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// StatusColor picks the badge colour of a record: red when a boarded
// passenger's item is still not loaded, yellow when not loaded, green when
// loaded.
func (p Palette) StatusColor(r model.LoadingRecord) string {
	switch {
	case r.IsUrgent():
		return p.Critical
	case r.Status == model.StatusNotLoaded:
		return p.Pending
	default:
		return p.Loaded
	}
}

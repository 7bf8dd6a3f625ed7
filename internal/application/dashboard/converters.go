package dashboard

import (
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/presentation/display"
)

func phaseToStatus(p Phase) display.Status {
	switch p {
	case PhaseReady:
		return display.StatusReady
	case PhaseError:
		return display.StatusError
	default:
		return display.StatusLoading
	}
}

// buildFrame converts a computed view plus interaction state for the display
func buildFrame(v View, sm *StateManager, now time.Time) display.Frame {
	return display.Frame{
		Status:        phaseToStatus(v.Phase),
		Records:       v.Records,
		Banner:        v.Banner,
		Settings:      v.Settings,
		Criteria:      v.Criteria,
		Expanded:      sm.ExpansionFor(v.Records),
		Selected:      sm.Selected(len(v.Records)),
		TotalCount:    v.TotalCount,
		UrgentCount:   v.UrgentCount,
		LastUpdate:    sm.LastUpdate(),
		Now:           now,
		ShowHelp:      sm.ShowHelp(),
		ConfirmDialog: sm.ConfirmDialog(),
		StatusMessage: sm.StatusMessage(),
	}
}

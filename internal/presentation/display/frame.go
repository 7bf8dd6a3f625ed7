package display

import (
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/alert"
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
)

// Status is what the body of the screen shows
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

// ConfirmDialog asks a yes/no question before a destructive action
type ConfirmDialog struct {
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// Frame is everything needed to draw one screen
type Frame struct {
	Status      Status
	Records     []model.LoadingRecord
	Banner      alert.Banner
	Settings    settings.Settings
	Criteria    model.FilterCriteria
	Expanded    map[model.RecordKey]bool
	Selected    int
	TotalCount  int
	UrgentCount int
	LastUpdate  time.Time
	Now         time.Time

	ShowHelp      bool
	ConfirmDialog *ConfirmDialog
	StatusMessage string
}

// IsExpanded reports whether the card for r is open
func (f Frame) IsExpanded(r model.LoadingRecord) bool {
	return f.Expanded[r.Key()]
}

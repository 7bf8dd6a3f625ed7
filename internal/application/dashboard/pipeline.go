// Package dashboard wires records, filters, alerts and settings into the
// live terminal dashboard.
package dashboard

import (
	"github.com/penwyp/go-baggage-monitor/internal/core/alert"
	"github.com/penwyp/go-baggage-monitor/internal/core/filter"
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
)

// Phase is the state of the record fetch behind the view
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "loading"
	}
}

// PipelineInput is every upstream value the view depends on
type PipelineInput struct {
	Phase    Phase
	Records  []model.LoadingRecord
	Err      error
	Criteria model.FilterCriteria
	Settings settings.Settings
	Year     int
}

// View is the derived, render-ready state
type View struct {
	Phase       Phase
	Records     []model.LoadingRecord
	Banner      alert.Banner
	Criteria    model.FilterCriteria
	Settings    settings.Settings
	TotalCount  int
	UrgentCount int
	Err         error
}

// Compute derives the view from its inputs. Records are only filtered once
// the fetch for the current window has succeeded; while loading or after an
// error the view is empty and carries no urgency alert. The window notice
// depends on settings alone and is shown in every phase.
func Compute(in PipelineInput) View {
	criteria := in.Criteria.Normalize()
	notice, _ := alert.WindowNotice(in.Settings.LookupTimeRangePast, in.Settings.LookupTimeRangeFuture)

	v := View{
		Phase:    in.Phase,
		Records:  []model.LoadingRecord{},
		Criteria: criteria,
		Settings: in.Settings,
		Err:      in.Err,
	}

	if in.Phase != PhaseReady {
		v.Banner = alert.Resolve("", notice)
		return v
	}

	v.Records = filter.Apply(in.Records, criteria)
	v.TotalCount = len(in.Records)
	v.UrgentCount = alert.CountUrgent(v.Records)

	urgent, _ := alert.Select(v.Records, in.Year)
	v.Banner = alert.Resolve(urgent, notice)
	return v
}

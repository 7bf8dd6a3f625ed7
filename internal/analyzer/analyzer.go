// Package analyzer produces one-shot listings of special baggage records.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/application/dashboard"
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
	"github.com/penwyp/go-baggage-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

type Config struct {
	OutputFormat string
	Criteria     model.FilterCriteria
}

// Fetcher loads the records of a lookup window
type Fetcher interface {
	Fetch(ctx context.Context, pastHours, futureHours int) ([]model.LoadingRecord, error)
}

type Analyzer struct {
	config   *Config
	fetcher  Fetcher
	settings settings.Settings
	out      io.Writer
}

// New creates an analyzer that lists the window described by current
func New(config *Config, fetcher Fetcher, current settings.Settings, out io.Writer) *Analyzer {
	return &Analyzer{
		config:   config,
		fetcher:  fetcher,
		settings: current,
		out:      out,
	}
}

// Run fetches, filters and prints the records. Unlike the dashboard, a
// failed fetch is an error for the command.
func (a *Analyzer) Run(ctx context.Context) error {
	startTime := time.Now()

	f, err := formatter.New(a.config.OutputFormat, a.out)
	if err != nil {
		return err
	}

	report, err := a.Report(ctx)
	if err != nil {
		return err
	}

	util.LogDebugf("Listed %d of %d records in %v", len(report.Rows), report.Total, time.Since(startTime))
	return f.Format(report)
}

// Report runs the same pipeline as the dashboard over one fetch
func (a *Analyzer) Report(ctx context.Context) (formatter.Report, error) {
	past, future := a.settings.LookupTimeRangePast, a.settings.LookupTimeRangeFuture

	records, err := a.fetcher.Fetch(ctx, past, future)
	if err != nil {
		return formatter.Report{}, fmt.Errorf("failed to load records: %w", err)
	}

	tp := util.GetTimeProvider()
	view := dashboard.Compute(dashboard.PipelineInput{
		Phase:    dashboard.PhaseReady,
		Records:  records,
		Criteria: a.config.Criteria,
		Settings: a.settings,
		Year:     tp.CurrentYear(),
	})

	return formatter.Report{
		Rows:        formatter.RowsFromRecords(view.Records),
		Banner:      view.Banner.Message,
		BannerKind:  view.Banner.Kind.String(),
		Criteria:    view.Criteria,
		PastHours:   past,
		FutureHours: future,
		Total:       view.TotalCount,
		Urgent:      view.UrgentCount,
		GeneratedAt: tp.Now(),
	}, nil
}

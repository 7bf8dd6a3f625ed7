package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/application/dashboard"
	"github.com/penwyp/go-baggage-monitor/internal/config"
	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
	"github.com/penwyp/go-baggage-monitor/internal/metrics"
	"github.com/penwyp/go-baggage-monitor/internal/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	// Refresh related flags
	watchRefreshInterval time.Duration
	watchUIRefreshRate   float64

	// Monitoring flags
	watchMetricsAddr    string
	watchIgnoreSettings bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live special baggage dashboard",
	Long: `Shows special baggage records as cards in a live terminal dashboard.

The records of the lookup window are refetched periodically. A banner at the
top names the boarded passenger whose baggage is still not loaded with the
soonest departure; when nothing is urgent and the lookup window differs from
the default, the banner describes the window instead.

Keys: f/p/b cycle filters, j/k move, space expands a card, t theme,
e default expansion, [ ] past hours, { } future hours, r refresh,
x reset settings, h help, q quit.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	// Refresh flags
	watchCmd.Flags().DurationVar(&watchRefreshInterval, "refresh-interval", constants.DefaultDataRefreshInterval,
		"How often records are refetched")
	watchCmd.Flags().Float64Var(&watchUIRefreshRate, "ui-refresh-rate", constants.DefaultUIRefreshRate,
		"Display refresh rate (0.1-20 Hz)")

	// Monitoring flags
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "",
		"Serve Prometheus metrics on this address (e.g. :9090)")
	watchCmd.Flags().BoolVar(&watchIgnoreSettings, "no-settings-watch", false,
		"Do not reload settings changed by other processes")

	bindFlag(config.KeyRefreshInterval, watchCmd.Flags().Lookup("refresh-interval"))
	bindFlag(config.KeyUIRefreshRate, watchCmd.Flags().Lookup("ui-refresh-rate"))
	bindFlag(config.KeyMetricsAddr, watchCmd.Flags().Lookup("metrics-addr"))
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(metrics.Namespace, registry)
	if appConfig.MetricsAddr != "" {
		go serveMetrics(ctx, appConfig.MetricsAddr, registry)
	}

	store, persistence, err := openSettings(appConfig)
	if err != nil {
		return err
	}

	opts := []dashboard.Option{dashboard.WithUrgentGauge(m)}
	if !watchIgnoreSettings {
		watcher, err := settings.NewWatcher(persistence.Path())
		if err != nil {
			util.LogWarnf("Settings changes from other processes will not be picked up: %v", err)
		} else {
			opts = append(opts, dashboard.WithSettingsMonitor(watcher))
		}
	}

	o, err := dashboard.NewOrchestrator(dashboardConfig(appConfig), store, newRepository(appConfig, m), opts...)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}
	return o.Run(ctx)
}

func dashboardConfig(cfg *config.AppConfig) *dashboard.DashboardConfig {
	return &dashboard.DashboardConfig{
		Timezone:            cfg.Timezone,
		DataRefreshInterval: cfg.RefreshInterval,
		UIRefreshRate:       cfg.UIRefreshRate,
	}
}

func serveMetrics(ctx context.Context, addr string, gatherer prometheus.Gatherer) {
	if err := metrics.Serve(ctx, addr, gatherer); err != nil {
		util.LogErrorf("Metrics server stopped: %v", err)
	}
}

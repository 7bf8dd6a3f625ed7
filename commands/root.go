package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/penwyp/go-baggage-monitor/internal/analyzer"
	"github.com/penwyp/go-baggage-monitor/internal/config"
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
	"github.com/penwyp/go-baggage-monitor/internal/data/client"
	"github.com/penwyp/go-baggage-monitor/internal/data/records"
	"github.com/penwyp/go-baggage-monitor/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// Logging related
	debug bool

	// Configuration sources
	configFile string
	dataDir    string
	baseURL    string
	timezone   string

	// Output related
	outputFormat string

	// Filtering
	flightStatus  string
	passengerType string
	baggageStatus string

	v         *viper.Viper
	appConfig *config.AppConfig

	rootCmd = &cobra.Command{
		Use:   "go-baggage-monitor [flags]",
		Short: "Special baggage loading monitor",
		Long: `go-baggage-monitor lists special baggage (pets, wheelchairs, weapons) that
must be loaded onto departing flights, and warns when a passenger has boarded
while their item is still not loaded.

The lookup window and theme come from the persisted dashboard settings; see
"go-baggage-monitor settings".

Examples:
  go-baggage-monitor                                   # List records in the current window
  go-baggage-monitor --baggage-status "not loaded"     # Only items still to be loaded
  go-baggage-monitor --passenger-type pet -o json      # Pets, as JSON
  go-baggage-monitor -o summary                        # Counts per baggage type
  go-baggage-monitor watch                             # Live dashboard`,
		PersistentPreRunE: setup,
		RunE:              runList,
		SilenceUsage:      true,
	}
)

func init() {
	v = config.New()

	// Configuration sources
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default: ./.baggage-monitor.yaml or <data-dir>/.baggage-monitor.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir,
		"Directory for settings and logs")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", config.DefaultBaseURL,
		"Base URL of the baggage backend API")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Europe/Amsterdam, UTC)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.Flags().StringVar(&outputFormat, "format", "",
		"Alias for --output")

	// Filters
	rootCmd.Flags().StringVar(&flightStatus, "flight-status", model.All,
		"Flight status filter (all, boarded, not-boarded)")
	rootCmd.Flags().StringVar(&passengerType, "passenger-type", model.All,
		"Passenger type filter (all, pet, wheelchair, weapon)")
	rootCmd.Flags().StringVar(&baggageStatus, "baggage-status", model.All,
		"Baggage status filter (all, loaded, not-loaded)")

	bindFlag(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))
	bindFlag(config.KeyBaseURL, rootCmd.PersistentFlags().Lookup("base-url"))
	bindFlag(config.KeyTimezone, rootCmd.PersistentFlags().Lookup("timezone"))
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

// setup resolves configuration and initializes logging for every command
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(v, configFile)
	if err != nil {
		return err
	}

	// Determine log level based on debug flag
	logLevel := cfg.LogLevel
	if debug {
		logLevel = "debug"
	}

	if err := ensureDir(filepath.Dir(cfg.LogFile())); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, cfg.LogFile(), debug)
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return err
	}

	appConfig = cfg
	util.LogDebugf("Using backend %s, data dir %s", cfg.BaseURL, cfg.DataDir)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	// Handle format alias
	if format := cmd.Flags().Lookup("format"); format != nil && format.Changed {
		outputFormat = format.Value.String()
	}

	criteria, err := parseCriteria()
	if err != nil {
		return err
	}

	store, _, err := openSettings(appConfig)
	if err != nil {
		return err
	}

	a := analyzer.New(&analyzer.Config{
		OutputFormat: outputFormat,
		Criteria:     criteria,
	}, newRepository(appConfig, nil), store.Get(), cmd.OutOrStdout())
	return a.Run(cmd.Context())
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer util.CloseLogger()
	return rootCmd.ExecuteContext(ctx)
}

// Helper functions

func parseCriteria() (model.FilterCriteria, error) {
	fs, err := model.ParseFlightStatus(flightStatus)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	pt, err := model.ParsePassengerType(passengerType)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	bs, err := model.ParseBaggageStatus(baggageStatus)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	return model.FilterCriteria{FlightStatus: fs, PassengerType: pt, BaggageStatus: bs}, nil
}

// openSettings loads the persisted dashboard settings from the data dir
func openSettings(cfg *config.AppConfig) (*settings.Store, *settings.DiskPersistence, error) {
	if err := ensureDir(cfg.SettingsDir()); err != nil {
		return nil, nil, fmt.Errorf("failed to create settings directory: %w", err)
	}
	persistence := settings.NewDiskPersistence(cfg.SettingsDir())
	return settings.NewStore(persistence), persistence, nil
}

func newRepository(cfg *config.AppConfig, recorder records.Recorder) *records.Repository {
	c := client.New(cfg.BaseURL, cfg.RequestTimeout)
	return records.NewRepository(c, records.WithRecorder(recorder))
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
	"github.com/penwyp/go-baggage-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	setTheme         string
	setLookupPast    string
	setLookupFuture  string
	setCardsExpanded string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the persisted dashboard settings",
	Long: `Dashboard settings are shared by the listing and the live dashboard:

  theme            dark or light
  lookup-past      hours before now to include (positive whole number)
  lookup-future    hours after now to include (positive whole number)
  cards-expanded   whether dashboard cards start expanded`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	Example: `  go-baggage-monitor settings set --lookup-past 48
  go-baggage-monitor settings set --theme light --cards-expanded true`,
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE:  runSettingsReset,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)

	settingsSetCmd.Flags().StringVar(&setTheme, "theme", "",
		"Color theme (dark, light)")
	settingsSetCmd.Flags().StringVar(&setLookupPast, "lookup-past", "",
		"Hours before now to include")
	settingsSetCmd.Flags().StringVar(&setLookupFuture, "lookup-future", "",
		"Hours after now to include")
	settingsSetCmd.Flags().StringVar(&setCardsExpanded, "cards-expanded", "",
		"Expand dashboard cards by default (true, false)")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, persistence, err := openSettings(appConfig)
	if err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), store.Get())
	fmt.Fprintf(cmd.OutOrStdout(), "\nStored in %s\n", persistence.Path())
	return nil
}

// settingsUpdate is a validated set of changes. Nothing is applied unless
// every given field is valid.
type settingsUpdate struct {
	theme         *settings.Theme
	lookupPast    *int
	lookupFuture  *int
	cardsExpanded *bool
}

func parseSettingsFlags(cmd *cobra.Command) (settingsUpdate, error) {
	var (
		u    settingsUpdate
		errs []error
	)
	flags := cmd.Flags()

	if flags.Changed("theme") {
		t, err := settings.ParseTheme("theme", setTheme)
		if err != nil {
			errs = append(errs, err)
		} else {
			u.theme = &t
		}
	}
	if flags.Changed("lookup-past") {
		h, err := settings.ParseHours("lookup-past", setLookupPast)
		if err != nil {
			errs = append(errs, err)
		} else {
			u.lookupPast = &h
		}
	}
	if flags.Changed("lookup-future") {
		h, err := settings.ParseHours("lookup-future", setLookupFuture)
		if err != nil {
			errs = append(errs, err)
		} else {
			u.lookupFuture = &h
		}
	}
	if flags.Changed("cards-expanded") {
		b, err := settings.ParseBool("cards-expanded", setCardsExpanded)
		if err != nil {
			errs = append(errs, err)
		} else {
			u.cardsExpanded = &b
		}
	}
	return u, errors.Join(errs...)
}

func (u settingsUpdate) empty() bool {
	return u.theme == nil && u.lookupPast == nil && u.lookupFuture == nil && u.cardsExpanded == nil
}

func (u settingsUpdate) apply(store *settings.Store) error {
	if u.theme != nil {
		if err := store.SetTheme(*u.theme); err != nil {
			return err
		}
	}
	if u.lookupPast != nil {
		if err := store.SetLookupTimeRangePast(*u.lookupPast); err != nil {
			return err
		}
	}
	if u.lookupFuture != nil {
		if err := store.SetLookupTimeRangeFuture(*u.lookupFuture); err != nil {
			return err
		}
	}
	if u.cardsExpanded != nil {
		store.SetCardsExpandedByDefault(*u.cardsExpanded)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	update, err := parseSettingsFlags(cmd)
	if err != nil {
		return err
	}
	if update.empty() {
		return fmt.Errorf("nothing to change: pass at least one of --theme, --lookup-past, --lookup-future, --cards-expanded")
	}

	store, _, err := openSettings(appConfig)
	if err != nil {
		return err
	}
	if err := update.apply(store); err != nil {
		return err
	}

	util.LogInfof("Settings updated: %s", store.Get())
	printSettings(cmd.OutOrStdout(), store.Get())
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	store, _, err := openSettings(appConfig)
	if err != nil {
		return err
	}
	store.ResetToDefaults()
	fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults")
	return nil
}

func printSettings(w io.Writer, s settings.Settings) {
	fmt.Fprintf(w, "theme:          %s\n", s.Theme)
	fmt.Fprintf(w, "lookup-past:    %s\n", util.FormatHours(s.LookupTimeRangePast))
	fmt.Fprintf(w, "lookup-future:  %s\n", util.FormatHours(s.LookupTimeRangeFuture))
	fmt.Fprintf(w, "cards-expanded: %t\n", s.CardsExpandedByDefault)
}

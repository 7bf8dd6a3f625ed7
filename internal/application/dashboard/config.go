package dashboard

import (
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
)

// DashboardConfig contains configuration for the watch command
type DashboardConfig struct {
	// Display settings
	Timezone string

	// Refresh settings
	DataRefreshInterval time.Duration
	UIRefreshRate       float64
}

// Validate fills in defaults for unset fields
func (c *DashboardConfig) Validate() error {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.DataRefreshInterval <= 0 {
		c.DataRefreshInterval = constants.DefaultDataRefreshInterval
	}
	if c.UIRefreshRate <= 0 {
		c.UIRefreshRate = constants.DefaultUIRefreshRate
	}
	return nil
}

// UIRefreshInterval converts the refresh rate in Hz to a ticker period
func (c *DashboardConfig) UIRefreshInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.UIRefreshRate)
}

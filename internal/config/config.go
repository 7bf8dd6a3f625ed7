// Package config resolves application configuration from defaults, an
// optional config file, BAGGAGE_MONITOR_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "BAGGAGE_MONITOR"
	ConfigName     = ".baggage-monitor" // .yaml is implicit
	DefaultDataDir = "~/.go-baggage-monitor"
	DefaultBaseURL = "http://localhost:8080/api"
)

// Config keys, also used for flag bindings
const (
	KeyBaseURL         = "base_url"
	KeyDataDir         = "data_dir"
	KeyRequestTimeout  = "request_timeout"
	KeyRefreshInterval = "refresh_interval"
	KeyUIRefreshRate   = "ui_refresh_rate"
	KeyTimezone        = "timezone"
	KeyMetricsAddr     = "metrics_addr"
	KeyLogLevel        = "log_level"
)

// AppConfig is the resolved configuration
type AppConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	DataDir         string        `mapstructure:"data_dir"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	UIRefreshRate   float64       `mapstructure:"ui_refresh_rate"`
	Timezone        string        `mapstructure:"timezone"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`
	LogLevel        string        `mapstructure:"log_level"`
}

// New returns a viper instance with defaults and environment lookup set up
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyRequestTimeout, constants.DefaultRequestTimeout)
	v.SetDefault(KeyRefreshInterval, constants.DefaultDataRefreshInterval)
	v.SetDefault(KeyUIRefreshRate, constants.DefaultUIRefreshRate)
	v.SetDefault(KeyTimezone, "Local")
	v.SetDefault(KeyMetricsAddr, "")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the config file, if any, and decodes the result. An
// explicit configFile must exist; otherwise .baggage-monitor.yaml is looked
// up in the working directory and the data directory.
func LoadConfig(v *viper.Viper, configFile string) (*AppConfig, error) {
	if configFile != "" {
		v.SetConfigFile(ExpandPath(configFile))
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		v.AddConfigPath(ExpandPath(v.GetString(KeyDataDir)))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes paths and checks ranges
func (c *AppConfig) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return fmt.Errorf("%s must not be empty", KeyBaseURL)
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	c.DataDir = ExpandPath(c.DataDir)
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyRequestTimeout)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%s must be positive", KeyRefreshInterval)
	}
	if c.UIRefreshRate < 0.1 || c.UIRefreshRate > 20 {
		return fmt.Errorf("%s must be between 0.1 and 20", KeyUIRefreshRate)
	}
	if c.Timezone == "" || c.Timezone == "auto" {
		c.Timezone = "Local"
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid %s %q: %w", KeyTimezone, c.Timezone, err)
	}
	return nil
}

// SettingsDir holds the persisted dashboard settings
func (c *AppConfig) SettingsDir() string {
	return filepath.Join(c.DataDir, "settings")
}

// LogFile is the application log path
func (c *AppConfig) LogFile() string {
	return filepath.Join(c.DataDir, "logs", "app.log")
}

// ExpandPath resolves a leading ~/ and makes the path absolute
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

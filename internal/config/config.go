package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level scrollwatch configuration.
type Config struct {
	DataDir        string `mapstructure:"data_dir"`
	Timezone       string `mapstructure:"timezone"`
	ComparisonDays int    `mapstructure:"comparison_days"`
	GoalMinutes    int    `mapstructure:"goal_minutes"`
	Serve          Serve  `mapstructure:"serve"`
	Watch          Watch  `mapstructure:"watch"`
	Output         Output `mapstructure:"output"`
}

// Serve defines the local API server settings.
type Serve struct {
	Addr  string `mapstructure:"addr"`
	Token string `mapstructure:"token"`
}

// Watch defines the journal watcher settings.
type Watch struct {
	Interval     string `mapstructure:"interval"`
	RiskAlert    int    `mapstructure:"risk_alert"`
	HonestyFloor int    `mapstructure:"honesty_floor"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed SCROLLWATCH_ override file values, so SCROLLWATCH_SERVE_TOKEN
// sets serve.token without writing the secret to disk.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("timezone", "")
	v.SetDefault("comparison_days", DefaultComparisonDays)
	v.SetDefault("goal_minutes", DefaultGoalMinutes)
	v.SetDefault("serve.addr", DefaultServe.Addr)
	v.SetDefault("serve.token", DefaultServe.Token)
	v.SetDefault("watch.interval", DefaultWatch.Interval)
	v.SetDefault("watch.risk_alert", DefaultWatch.RiskAlert)
	v.SetDefault("watch.honesty_floor", DefaultWatch.HonestyFloor)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix("SCROLLWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DefaultDBName)
}

// Location resolves the configured timezone. Empty or "local" means the
// process-local zone, reported as nil so callers fall through to it.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return nil, nil
	}
	return time.LoadLocation(c.Timezone)
}

// WatchInterval parses the configured watcher interval.
func (c *Config) WatchInterval() (time.Duration, error) {
	return time.ParseDuration(c.Watch.Interval)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}

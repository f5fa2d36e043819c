// Package config provides configuration loading and defaults for scrollwatch.
package config

// DefaultDataDir is the default location for the scrollwatch database.
const DefaultDataDir = "~/.local/share/scrollwatch"

// DefaultConfigDir is the default location for scrollwatch configuration.
const DefaultConfigDir = "~/.config/scrollwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "scrollwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultComparisonDays is the window length for before/after comparisons.
const DefaultComparisonDays = 7

// DefaultGoalMinutes is the daily screen-time budget that advice and
// watcher alerts measure against.
const DefaultGoalMinutes = 120

// DefaultServe holds the default API server settings. An empty token
// disables authentication.
var DefaultServe = Serve{
	Addr:  "127.0.0.1:8600",
	Token: "",
}

// DefaultWatch holds the default watcher settings.
var DefaultWatch = Watch{
	Interval:     "10m",
	RiskAlert:    70,
	HonestyFloor: 60,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// Package advice provides the recommendation engine and rule types.
package advice

import "github.com/blackwell-systems/scrollwatch/internal/insight"

// Priority levels for advice.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
)

// Advice represents one actionable recommendation.
type Advice struct {
	Category    string  `json:"category"`
	Priority    int     `json:"priority"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImpactScore float64 `json:"impact_score"`
}

// Context provides all data needed by rules to generate advice. It is
// built from a window of journal records, usually the last week.
type Context struct {
	// GoalMinutes is the configured daily budget; zero disables budget rules.
	GoalMinutes int `json:"goal_minutes"`

	// RecordCount is the number of records in the window.
	RecordCount int `json:"record_count"`

	// DaysActive is the number of distinct days carrying records.
	DaysActive int `json:"days_active"`

	// DailyAvg is minutes per active day.
	DailyAvg float64 `json:"daily_avg"`

	// TotalMinutes is the window total.
	TotalMinutes float64 `json:"total_minutes"`

	// LateNightFrequency is the fraction of records logged 22:00-06:00.
	LateNightFrequency float64 `json:"late_night_frequency"`

	// IntentDriftFrequency is the fraction of intention-tagged records
	// where the user reported not finding what they came for.
	IntentDriftFrequency float64 `json:"intent_drift_frequency"`

	// IntentionRate is the fraction of records carrying an intention.
	IntentionRate float64 `json:"intention_rate"`

	// RepeatedOpens is the number of days with more than one record.
	RepeatedOpens int `json:"repeated_opens"`

	// HonestyScore is the 0-100 journal quality score.
	HonestyScore int `json:"honesty_score"`

	// RiskScore is the 0-100 behavioral risk score for the window.
	RiskScore int `json:"risk_score"`

	// TopApps is the window's app breakdown, heaviest first.
	TopApps []insight.AppUsage `json:"top_apps"`
}

// Rule is a function that examines the context and produces zero or more
// pieces of advice.
type Rule func(ctx *Context) []Advice

// Package insight implements the scrollwatch analysis engine: pure functions
// that turn a slice of usage records into derived metrics. Nothing in this
// package does I/O, holds state between calls, or mutates its input; callers
// may run any combination of analyses concurrently on the same records.
package insight

// Trend classifies the direction of a usage series.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// AppUsage is one app's share of a stats bucket.
type AppUsage struct {
	Name    string  `json:"name"`
	Minutes float64 `json:"minutes"`
}

// DailyStats summarizes the records of a single logical day. AverageMinutes
// is per record, not per day; a day with three logged apps averages over
// three entries.
type DailyStats struct {
	TotalMinutes   float64    `json:"total_minutes"`
	AverageMinutes float64    `json:"average_minutes"`
	AppCount       int        `json:"app_count"`
	Apps           []AppUsage `json:"apps"`
}

// WeeklyStats summarizes a week of records with a coarse trend.
type WeeklyStats struct {
	TotalMinutes        float64    `json:"total_minutes"`
	AverageDailyMinutes float64    `json:"average_daily_minutes"`
	DaysActive          int        `json:"days_active"`
	Trend               Trend      `json:"trend"`
	Apps                []AppUsage `json:"apps"`
}

// MonthlyStats summarizes a month of records.
type MonthlyStats struct {
	TotalMinutes        float64 `json:"total_minutes"`
	AverageDailyMinutes float64 `json:"average_daily_minutes"`
	DaysActive          int     `json:"days_active"`
}

// TimePoint is one bucket of a usage time series.
type TimePoint struct {
	Date    string  `json:"date"`
	Minutes float64 `json:"minutes"`
}

// RiskScore is the 0-100 behavioral risk indicator. Category and Level are
// the same classification in display and machine casing, both derived from
// the score at fixed thresholds (40, 70). This is a usage-intensity
// heuristic, not a clinical measure.
type RiskScore struct {
	Score    int    `json:"score"`
	Category string `json:"category"` // Low, Moderate, High
	Level    string `json:"level"`    // low, moderate, high
}

// Risk classification boundaries.
const (
	RiskModerateThreshold = 40
	RiskHighThreshold     = 70
)

// RegretTypes holds the per-category accumulators behind a regret score.
// They are unbounded; only the total is clamped.
type RegretTypes struct {
	AttentionDrain    int `json:"attention_drain"`
	Burnout           int `json:"burnout"`
	HabitualScrolling int `json:"habitual_scrolling"`
}

// Dominant regret type labels, matching the RegretTypes JSON keys.
const (
	RegretAttentionDrain    = "attention_drain"
	RegretBurnout           = "burnout"
	RegretHabitualScrolling = "habitual_scrolling"
)

// RegretAnalysis is the projected-regret result: a clamped score, a coarse
// level, the raw accumulators, the dominant category, a narrative paragraph,
// and a short list of recommendation bullets.
type RegretAnalysis struct {
	RegretScore     int         `json:"regret_score"`
	RegretLevel     string      `json:"regret_level"` // low, medium, high
	RegretTypes     RegretTypes `json:"regret_types"`
	DominantType    string      `json:"dominant_type"`
	Narrative       string      `json:"narrative"`
	Recommendations []string    `json:"recommendations"`
}

// MirrorPattern classifies an intention-vs-outcome mismatch.
type MirrorPattern string

const (
	PatternNotFound            MirrorPattern = "not_found"
	PatternLongSessionNotFound MirrorPattern = "long_session_not_found"
	PatternLateNight           MirrorPattern = "late_night"
)

// MirrorInsight is one detected mismatch between a stated intention and its
// logged outcomes.
type MirrorInsight struct {
	Intention      string        `json:"intention"` // normalized (lowercased)
	Pattern        MirrorPattern `json:"pattern"`
	Count          int           `json:"count"`
	FoundItRate    float64       `json:"found_it_rate"`
	AvgMinutes     float64       `json:"avg_minutes"`
	LateNightCount int           `json:"late_night_count"`
	RepeatedOpens  int           `json:"repeated_opens"`
	Message        string        `json:"message"`
}

// WindowMetrics is the standard metric bundle for one bounded time slice.
type WindowMetrics struct {
	AvgDailyMinutes    float64 `json:"avg_daily_minutes"`
	LateNightFrequency float64 `json:"late_night_frequency"`
	RiskScore          int     `json:"risk_score"`
	HonestyScore       int     `json:"honesty_score"`
	TotalMinutes       float64 `json:"total_minutes"`
	DaysActive         int     `json:"days_active"`
}

// ComparisonChanges holds after-minus-before deltas. Late-night change is a
// fraction-point difference; the others are plain signed differences.
type ComparisonChanges struct {
	DailyUsage     float64 `json:"daily_usage"`
	LateNightUsage float64 `json:"late_night_usage"`
	RiskScore      float64 `json:"risk_score"`
	HonestyScore   float64 `json:"honesty_score"`
}

// ComparisonResult compares the first N days of a record set against the
// last N. The two windows are built independently; when the set spans fewer
// than 2N days they overlap, which is accepted rather than corrected.
type ComparisonResult struct {
	Before       WindowMetrics     `json:"before"`
	After        WindowMetrics     `json:"after"`
	Changes      ComparisonChanges `json:"changes"`
	DaysCompared int               `json:"days_compared"`
}

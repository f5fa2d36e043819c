package insight

import (
	"math"
	"sort"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// CalculateRiskScore turns a week of records into the 0-100 behavioral risk
// score. It wants day-level granularity, so it is fed the weekly record set
// rather than pre-bucketed stats. Empty input scores a clean zero.
//
// Four additive factors:
//
//	average daily usage (0-40): how much, on a typical logged day
//	peak single day     (0-20): the worst day of the week
//	consistency         (0-20): how many of the seven days were active
//	trend               (0-20): whether the week was heading up or down
func CalculateRiskScore(records []journal.UsageRecord) RiskScore {
	if len(records) == 0 {
		return RiskScore{Score: 0, Category: "Low", Level: "low"}
	}

	days := newOrderedSums()
	for _, r := range records {
		days.add(r.Date, r.MinutesSpent)
	}

	var total, peak float64
	for _, t := range days.totals {
		total += t
		if t > peak {
			peak = t
		}
	}
	avgDaily := total / float64(maxInt(1, days.len()))

	score := avgDailyFactor(avgDaily) +
		peakDayFactor(peak) +
		consistencyFactor(days.len()) +
		trendFactor(classifyTrend(sortedDayTotals(days)))

	return buildRiskScore(int(math.Round(clampScore(score))))
}

// buildRiskScore classifies a clamped score at the fixed 40/70 thresholds.
func buildRiskScore(score int) RiskScore {
	rs := RiskScore{Score: score}
	switch {
	case score >= RiskHighThreshold:
		rs.Category, rs.Level = "High", "high"
	case score >= RiskModerateThreshold:
		rs.Category, rs.Level = "Moderate", "moderate"
	default:
		rs.Category, rs.Level = "Low", "low"
	}
	return rs
}

// avgDailyFactor maps average daily minutes to 0-40 points. Each band ramps
// linearly to the next threshold; six hours a day saturates the factor.
func avgDailyFactor(v float64) float64 {
	switch {
	case v >= 360:
		return 40
	case v >= 240:
		return 30 + ((v-240)/120)*5
	case v >= 120:
		return 20 + ((v-120)/120)*10
	case v >= 60:
		return 10 + ((v-60)/60)*10
	default:
		return (v / 60) * 10
	}
}

// peakDayFactor maps the heaviest single day to 0-20 points.
func peakDayFactor(v float64) float64 {
	switch {
	case v >= 360:
		return 20
	case v >= 240:
		return 15 + ((v-240)/120)*5
	case v >= 120:
		return 10 + ((v-120)/120)*5
	default:
		return (v / 120) * 5
	}
}

// consistencyFactor rewards spread: logging every day of the week scores the
// full 20 points. Habitual daily use reads as higher risk than one binge.
func consistencyFactor(daysActive int) float64 {
	return float64(daysActive) / 7 * 20
}

func trendFactor(t Trend) float64 {
	switch t {
	case TrendIncreasing:
		return 20
	case TrendDecreasing:
		return 5
	default:
		return 10
	}
}

// sortRecordsByDate returns a date-ascending copy. The sort is stable so
// same-day records keep their input order.
func sortRecordsByDate(records []journal.UsageRecord) []journal.UsageRecord {
	sorted := make([]journal.UsageRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

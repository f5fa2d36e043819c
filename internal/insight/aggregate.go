package insight

import (
	"math"
	"sort"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// orderedSums accumulates minutes per key while remembering first-seen key
// order. Stable sorts over its entries tie-break the same way on every run,
// which plain map iteration would not guarantee.
type orderedSums struct {
	keys   []string
	totals map[string]float64
	counts map[string]int
}

func newOrderedSums() *orderedSums {
	return &orderedSums{totals: make(map[string]float64), counts: make(map[string]int)}
}

func (o *orderedSums) add(key string, minutes float64) {
	if _, seen := o.totals[key]; !seen {
		o.keys = append(o.keys, key)
	}
	o.totals[key] += minutes
	o.counts[key]++
}

func (o *orderedSums) len() int { return len(o.keys) }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ComputeDailyStats summarizes records belonging to one logical day.
// AverageMinutes divides by record count rather than day count on purpose:
// the input is the set of per-app entries for a single day.
func ComputeDailyStats(records []journal.UsageRecord) DailyStats {
	if len(records) == 0 {
		return DailyStats{Apps: []AppUsage{}}
	}

	var total float64
	for _, r := range records {
		total += r.MinutesSpent
	}

	apps := appBreakdown(records)
	return DailyStats{
		TotalMinutes:   round2(total),
		AverageMinutes: round2(total / float64(len(records))),
		AppCount:       len(apps),
		Apps:           apps,
	}
}

// ComputeWeeklyStats groups records by calendar day and summarizes the week.
// The trend is only classified once four distinct days exist; before that it
// reports stable.
func ComputeWeeklyStats(records []journal.UsageRecord) WeeklyStats {
	if len(records) == 0 {
		return WeeklyStats{Trend: TrendStable, Apps: []AppUsage{}}
	}

	days := newOrderedSums()
	for _, r := range records {
		days.add(r.Date, r.MinutesSpent)
	}

	var total float64
	for _, t := range days.totals {
		total += t
	}

	return WeeklyStats{
		TotalMinutes:        round2(total),
		AverageDailyMinutes: round2(total / float64(maxInt(1, days.len()))),
		DaysActive:          days.len(),
		Trend:               classifyTrend(sortedDayTotals(days)),
		Apps:                appBreakdown(records),
	}
}

// ComputeMonthlyStats is the weekly day-grouping without trend or app
// breakdown.
func ComputeMonthlyStats(records []journal.UsageRecord) MonthlyStats {
	if len(records) == 0 {
		return MonthlyStats{}
	}

	days := newOrderedSums()
	for _, r := range records {
		days.add(r.Date, r.MinutesSpent)
	}

	var total float64
	for _, t := range days.totals {
		total += t
	}

	return MonthlyStats{
		TotalMinutes:        round2(total),
		AverageDailyMinutes: round2(total / float64(maxInt(1, days.len()))),
		DaysActive:          days.len(),
	}
}

// ComputeTimeSeries buckets minutes by period and returns points ascending
// by bucket key. Records whose date does not parse are excluded from the
// series rather than failing the call.
func ComputeTimeSeries(records []journal.UsageRecord, period journal.Period) []TimePoint {
	buckets := newOrderedSums()
	for _, r := range records {
		key, ok := bucketKey(r, period)
		if !ok {
			continue
		}
		buckets.add(key, r.MinutesSpent)
	}

	keys := make([]string, len(buckets.keys))
	copy(keys, buckets.keys)
	sort.Strings(keys) // ISO keys sort chronologically

	points := make([]TimePoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, TimePoint{Date: k, Minutes: round2(buckets.totals[k])})
	}
	return points
}

// bucketKey derives the series key for a record: the day itself, the Monday
// on or before it, or the year-month.
func bucketKey(r journal.UsageRecord, period journal.Period) (string, bool) {
	switch period {
	case journal.PeriodWeekly:
		day, ok := r.Day()
		if !ok {
			return "", false
		}
		return mondayOf(day).Format(journal.DateLayout), true
	case journal.PeriodMonthly:
		day, ok := r.Day()
		if !ok {
			return "", false
		}
		return day.Format("2006-01"), true
	default:
		if _, ok := r.Day(); !ok {
			return "", false
		}
		return r.Date, true
	}
}

// mondayOf returns the Monday on or before t.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// appBreakdown sums minutes per app and sorts descending. The sort is stable
// over first-seen order, so apps with equal minutes keep their original
// relative position.
func appBreakdown(records []journal.UsageRecord) []AppUsage {
	byApp := newOrderedSums()
	for _, r := range records {
		byApp.add(r.AppName, r.MinutesSpent)
	}

	apps := make([]AppUsage, 0, byApp.len())
	for _, name := range byApp.keys {
		apps = append(apps, AppUsage{Name: name, Minutes: round2(byApp.totals[name])})
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].Minutes > apps[j].Minutes
	})
	return apps
}

// sortedDayTotals returns per-day totals ordered by date ascending. Day keys
// use the ISO layout, so a lexicographic key sort is chronological.
func sortedDayTotals(days *orderedSums) []float64 {
	keys := make([]string, len(days.keys))
	copy(keys, days.keys)
	sort.Strings(keys)

	totals := make([]float64, 0, len(keys))
	for _, k := range keys {
		totals = append(totals, days.totals[k])
	}
	return totals
}

// classifyTrend splits chronologically ordered daily totals at the midpoint
// and compares the half means. Fewer than four days is not enough signal and
// reports stable.
func classifyTrend(dayTotals []float64) Trend {
	if len(dayTotals) < 4 {
		return TrendStable
	}

	mid := len(dayTotals) / 2
	firstMean := mean(dayTotals[:mid])
	secondMean := mean(dayTotals[mid:])

	switch {
	case secondMean > firstMean*1.1:
		return TrendIncreasing
	case secondMean < firstMean*0.9:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

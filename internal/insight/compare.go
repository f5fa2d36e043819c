package insight

import (
	"math"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// DefaultComparisonDays is the window length used when the caller does not
// pick one.
const DefaultComparisonDays = 7

// CompareWindows measures change between the first N days and the last N
// days of a record set. It returns nil when there is not enough data: no
// records, no parseable dates, or an empty window. When the set spans fewer
// than 2N days the windows share records; that overlap is part of the
// contract, not a bug to correct.
func CompareWindows(records []journal.UsageRecord, daysToCompare int, loc *time.Location) *ComparisonResult {
	if daysToCompare <= 0 {
		daysToCompare = DefaultComparisonDays
	}
	if len(records) == 0 {
		return nil
	}

	sorted := sortRecordsByDate(records)

	var first, last time.Time
	found := false
	for _, r := range sorted {
		d, ok := r.Day()
		if !ok {
			continue
		}
		if !found {
			first, last, found = d, d, true
			continue
		}
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	if !found {
		return nil
	}

	var before, after []journal.UsageRecord
	for _, r := range sorted {
		d, ok := r.Day()
		if !ok {
			continue
		}
		if int(d.Sub(first)/(24*time.Hour)) < daysToCompare {
			before = append(before, r)
		}
		if int(last.Sub(d)/(24*time.Hour)) < daysToCompare {
			after = append(after, r)
		}
	}
	if len(before) == 0 || len(after) == 0 {
		return nil
	}

	b := computeWindowMetrics(before, loc)
	a := computeWindowMetrics(after, loc)

	return &ComparisonResult{
		Before: b,
		After:  a,
		Changes: ComparisonChanges{
			DailyUsage:     round2(a.AvgDailyMinutes - b.AvgDailyMinutes),
			LateNightUsage: round3(a.LateNightFrequency - b.LateNightFrequency),
			RiskScore:      float64(a.RiskScore - b.RiskScore),
			HonestyScore:   float64(a.HonestyScore - b.HonestyScore),
		},
		DaysCompared: daysToCompare,
	}
}

// computeWindowMetrics derives the standard bundle for one window. Risk and
// honesty use the simplified window variants, not the full weekly scorers.
func computeWindowMetrics(records []journal.UsageRecord, loc *time.Location) WindowMetrics {
	days := newOrderedSums()
	var total float64
	for _, r := range records {
		days.add(r.Date, r.MinutesSpent)
		total += r.MinutesSpent
	}
	avgDaily := total / float64(maxInt(1, days.len()))

	return WindowMetrics{
		AvgDailyMinutes:    round2(avgDaily),
		LateNightFrequency: round3(lateNightFrequency(records, loc)),
		RiskScore:          windowRiskScore(avgDaily, days.len()),
		HonestyScore:       windowHonestyScore(records),
		TotalMinutes:       round2(total),
		DaysActive:         days.len(),
	}
}

// windowRiskScore is the coarse risk variant for window comparison: a
// tiered base on average daily minutes plus the consistency factor, without
// peak or trend. Windows are too short for trend halves to mean much.
func windowRiskScore(avgDaily float64, daysActive int) int {
	var base float64
	switch {
	case avgDaily >= 360:
		base = 80
	case avgDaily >= 240:
		base = 60
	case avgDaily >= 120:
		base = 40
	case avgDaily >= 60:
		base = 20
	default:
		base = 10
	}
	return int(math.Round(clampScore(base + consistencyFactor(daysActive))))
}

// windowHonestyScore is the simplified honesty variant: gap and
// unrealistic-entry penalties only, no spike detection.
func windowHonestyScore(records []journal.UsageRecord) int {
	sorted := sortRecordsByDate(records)
	score := 100.0
	score -= gapPenalties(sorted)
	score -= unrealisticPenalties(sorted)
	return int(math.Round(clampScore(score)))
}

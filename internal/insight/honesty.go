package insight

import (
	"math"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// Plausibility constants for the honesty score.
const (
	// maxGapDays is the longest silence between entries that costs nothing.
	maxGapDays = 7

	// maxRealisticMinutes is 16 hours; a day logged above this is treated
	// as implausible self-report.
	maxRealisticMinutes = 960

	// maxGapPenalty caps what any single gap can cost.
	maxGapPenalty = 30
)

// CalculateHonestyScore estimates how plausible the journal itself is:
// 100 means nothing looked off. Long gaps, impossible day totals, and sudden
// spikes each subtract points per occurrence. A single record gives the
// detectors nothing to compare, so one or zero records score 100.
//
// Every penalty applies once per occurrence with no aggregate cap per
// detector; only the final score is clamped.
func CalculateHonestyScore(records []journal.UsageRecord) int {
	if len(records) <= 1 {
		return 100
	}

	sorted := sortRecordsByDate(records)
	score := 100.0

	score -= gapPenalties(sorted)
	score -= unrealisticPenalties(sorted)
	score -= spikePenalties(sorted)

	return int(math.Round(clampScore(score)))
}

// gapPenalties charges min(30, (gap-7)*5) for every consecutive pair of
// entries more than seven days apart. Pairs with unparseable dates are
// skipped rather than guessed at.
func gapPenalties(sorted []journal.UsageRecord) float64 {
	var penalty float64
	for i := 1; i < len(sorted); i++ {
		prev, okPrev := sorted[i-1].Day()
		curr, okCurr := sorted[i].Day()
		if !okPrev || !okCurr {
			continue
		}
		gap := int(curr.Sub(prev) / (24 * time.Hour))
		if gap > maxGapDays {
			p := float64((gap - maxGapDays) * 5)
			if p > maxGapPenalty {
				p = maxGapPenalty
			}
			penalty += p
		}
	}
	return penalty
}

// unrealisticPenalties charges 10 per record above 16 logged hours. Exactly
// 960 minutes is still believable and costs nothing.
func unrealisticPenalties(sorted []journal.UsageRecord) float64 {
	var penalty float64
	for _, r := range sorted {
		if r.MinutesSpent > maxRealisticMinutes {
			penalty += 10
		}
	}
	return penalty
}

// spikePenalties charges 5 per entry that jumps far above its recent
// baseline. With four or more records the baseline is the mean of the
// preceding three entries (spike = more than triple it); with two or three
// records there is no rolling window, so each entry is compared to its
// immediate predecessor (spike = more than five times it).
func spikePenalties(sorted []journal.UsageRecord) float64 {
	var penalty float64
	if len(sorted) >= 4 {
		for i := 3; i < len(sorted); i++ {
			baseline := (sorted[i-1].MinutesSpent + sorted[i-2].MinutesSpent + sorted[i-3].MinutesSpent) / 3
			if sorted[i].MinutesSpent > baseline*3 {
				penalty += 5
			}
		}
		return penalty
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MinutesSpent > sorted[i-1].MinutesSpent*5 {
			penalty += 5
		}
	}
	return penalty
}

package advice

import "sort"

// Rank sorts advice by ImpactScore in descending order without mutating
// the input. Equal scores keep their rule order.
func Rank(advice []Advice) []Advice {
	sorted := make([]Advice, len(advice))
	copy(sorted, advice)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ImpactScore > sorted[j].ImpactScore
	})
	return sorted
}

// ComputeImpact calculates an impact score for a piece of advice.
// Formula: (affectedDays * frequency * minutesSaved) / effort
//
// Parameters:
//   - affectedDays: number of days touched by the pattern
//   - frequency: how often the pattern occurs (0.0-1.0)
//   - minutesSaved: estimated minutes reclaimed per day if followed
//   - effort: relative effort to adopt the advice
//
// Returns 0 if effort is zero to avoid division by zero.
func ComputeImpact(affectedDays int, frequency, minutesSaved, effort float64) float64 {
	if effort <= 0 {
		return 0
	}
	return (float64(affectedDays) * frequency * minutesSaved) / effort
}

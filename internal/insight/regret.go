package insight

import (
	"fmt"
	"math"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// RiskTrend is the coarse direction-of-risk input to the regret model.
// stable_high marks usage that is not climbing but already sits in the high
// risk band.
type RiskTrend string

const (
	RiskTrendIncreasing RiskTrend = "increasing"
	RiskTrendStableHigh RiskTrend = "stable_high"
	RiskTrendStable     RiskTrend = "stable"
)

// RegretSignals are the derived inputs to the regret model. They can be
// built from records with BuildRegretSignals or assembled by hand.
type RegretSignals struct {
	DailyAvg             float64   `json:"daily_avg"`
	LateNightFrequency   float64   `json:"late_night_frequency"`
	IntentDriftFrequency float64   `json:"intent_drift_frequency"`
	RiskTrend            RiskTrend `json:"risk_trend"`
	HonestyScore         int       `json:"honesty_score"`
	RepeatedOpens        int       `json:"repeated_opens"` // days with more than one record
}

// AnalyzeRegret derives the regret signals from records and scores them.
// loc is the timezone for late-night evaluation; nil means process local.
func AnalyzeRegret(records []journal.UsageRecord, loc *time.Location) RegretAnalysis {
	return ScoreRegret(BuildRegretSignals(records, loc))
}

// BuildRegretSignals computes the model inputs from raw records: overall
// daily average, late-night and intent-drift fractions, the risk direction,
// the honesty score, and the repeated-opens count.
func BuildRegretSignals(records []journal.UsageRecord, loc *time.Location) RegretSignals {
	days := newOrderedSums()
	var total float64
	for _, r := range records {
		days.add(r.Date, r.MinutesSpent)
		total += r.MinutesSpent
	}

	return RegretSignals{
		DailyAvg:             total / float64(maxInt(1, days.len())),
		LateNightFrequency:   lateNightFrequency(records, loc),
		IntentDriftFrequency: intentDriftFrequency(records),
		RiskTrend:            deriveRiskTrend(records, days),
		HonestyScore:         CalculateHonestyScore(records),
		RepeatedOpens:        repeatedOpenDays(records),
	}
}

// deriveRiskTrend reduces the record history to the model's three-valued
// trend: increasing when the daily series is climbing, stable_high when it
// is flat but the most recent week already scores in the high risk band,
// stable otherwise.
func deriveRiskTrend(records []journal.UsageRecord, days *orderedSums) RiskTrend {
	if classifyTrend(sortedDayTotals(days)) == TrendIncreasing {
		return RiskTrendIncreasing
	}
	if CalculateRiskScore(lastNDays(records, 7)).Score >= RiskHighThreshold {
		return RiskTrendStableHigh
	}
	return RiskTrendStable
}

// ScoreRegret applies the regret model to pre-computed signals. Each factor
// contributes its highest matching tier to the total and to the named
// accumulators; the accumulators are unbounded, only the total is clamped.
func ScoreRegret(sig RegretSignals) RegretAnalysis {
	var total int
	var types RegretTypes

	switch {
	case sig.DailyAvg >= 240:
		total += 30
		types.AttentionDrain += 20
		types.Burnout += 10
	case sig.DailyAvg >= 180:
		total += 20
		types.AttentionDrain += 15
		types.Burnout += 5
	case sig.DailyAvg >= 120:
		total += 10
		types.AttentionDrain += 10
	}

	switch {
	case sig.LateNightFrequency >= 0.5:
		total += 25
		types.Burnout += 20
		types.HabitualScrolling += 5
	case sig.LateNightFrequency >= 0.3:
		total += 15
		types.Burnout += 15
	case sig.LateNightFrequency >= 0.15:
		total += 8
		types.Burnout += 8
	}

	switch {
	case sig.IntentDriftFrequency >= 0.6:
		total += 25
		types.AttentionDrain += 5
		types.HabitualScrolling += 20
	case sig.IntentDriftFrequency >= 0.4:
		total += 15
		types.HabitualScrolling += 15
	case sig.IntentDriftFrequency >= 0.2:
		total += 8
		types.HabitualScrolling += 8
	}

	switch sig.RiskTrend {
	case RiskTrendIncreasing:
		total += 10
		types.AttentionDrain += 5
		types.Burnout += 5
	case RiskTrendStableHigh:
		total += 5
		types.HabitualScrolling += 5
	}

	switch {
	case sig.HonestyScore < 60:
		total += 10
		types.HabitualScrolling += 5
	case sig.HonestyScore < 80:
		total += 5
	}

	score := int(clampScore(float64(total)))
	level := regretLevel(score)
	dominant := dominantRegretType(types)

	return RegretAnalysis{
		RegretScore:     score,
		RegretLevel:     level,
		RegretTypes:     types,
		DominantType:    dominant,
		Narrative:       regretNarrative(dominant, level, sig.DailyAvg),
		Recommendations: regretRecommendations(sig, types),
	}
}

func regretLevel(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}

// dominantRegretType picks the accumulator with the strictly greatest value;
// ties keep the earlier declaration (attention drain, then burnout, then
// habitual scrolling).
func dominantRegretType(t RegretTypes) string {
	dominant, best := RegretAttentionDrain, t.AttentionDrain
	if t.Burnout > best {
		dominant, best = RegretBurnout, t.Burnout
	}
	if t.HabitualScrolling > best {
		dominant = RegretHabitualScrolling
	}
	return dominant
}

type narrativeKey struct {
	dominant string
	level    string
}

// regretNarratives holds the nine template bodies. Each takes two numbers:
// minutes per day, then projected hours per year.
var regretNarratives = map[narrativeKey]string{
	{RegretAttentionDrain, "low"}:       "Your attention is mostly going where you point it. At %d minutes a day you give these apps about %d hours a year, a level few people look back on with regret.",
	{RegretAttentionDrain, "medium"}:    "Your logs show a slow attention leak. %d minutes a day adds up to roughly %d hours a year of fragmented focus, and that number tends to sting in hindsight.",
	{RegretAttentionDrain, "high"}:      "This pattern is a serious attention drain. At %d minutes a day you are on track to hand these apps about %d hours this year, most of it time you never meant to give them.",
	{RegretBurnout, "low"}:              "Your usage is not eating into your recovery yet. %d minutes a day, about %d hours a year, stays mostly out of the hours your body needs back.",
	{RegretBurnout, "medium"}:           "Late hours carry a growing share of your usage. %d minutes a day costs sleep first and energy second; over a year that is about %d hours traded away from recovery.",
	{RegretBurnout, "high"}:             "This pattern looks like a burnout loop, with heavy days and late nights feeding each other. At %d minutes a day you are giving up around %d hours a year, much of it carved out of rest.",
	{RegretHabitualScrolling, "low"}:    "Opening these apps still looks like a choice rather than a reflex. %d minutes a day comes to about %d hours a year, and most sessions seem to get you what you came for.",
	{RegretHabitualScrolling, "medium"}: "Opening apps is drifting from choice toward reflex. At %d minutes a day the habit quietly claims about %d hours a year without reliably giving you what you went looking for.",
	{RegretHabitualScrolling, "high"}:   "Your logs describe scrolling on autopilot. %d minutes a day, about %d hours a year, spent in sessions that rarely deliver what you opened the app to find.",
}

func regretNarrative(dominant, level string, dailyAvg float64) string {
	body, ok := regretNarratives[narrativeKey{dominant, level}]
	if !ok {
		body = regretNarratives[narrativeKey{RegretAttentionDrain, "low"}]
	}
	minutesPerDay := int(math.Round(dailyAvg))
	hoursPerYear := int(math.Round(dailyAvg * 365 / 60))
	return fmt.Sprintf(body, minutesPerDay, hoursPerYear)
}

// regretRecommendations builds the bullet list. Each bullet has its own
// independent gate; when nothing triggers, one generic bullet keeps the
// list from being empty.
func regretRecommendations(sig RegretSignals, types RegretTypes) []string {
	var recs []string

	if sig.LateNightFrequency > 0.3 {
		recs = append(recs, "Set a hard cutoff: no scrolling after 22:00 for the next week.")
	}
	if sig.IntentDriftFrequency > 0.4 {
		recs = append(recs, "Name what you're looking for before opening an app, and close it the moment you have it.")
	}
	if sig.DailyAvg > 180 {
		recs = append(recs, "You're averaging over three hours a day. Give your two heaviest apps a daily budget.")
	}
	if types.AttentionDrain > 15 {
		recs = append(recs, "Batch your check-ins: two or three planned visits a day instead of a rolling feed.")
	}
	if types.Burnout > 15 {
		recs = append(recs, "Protect the last hour before sleep; charge your phone outside the bedroom if that's what it takes.")
	}
	if types.HabitualScrolling > 15 {
		recs = append(recs, "Add friction: move the worst offenders off your home screen and sign out after each visit.")
	}
	if sig.RepeatedOpens > 5 {
		recs = append(recs, fmt.Sprintf("You came back to apps repeatedly on %d days. Jotting down why you returned often breaks the loop.", sig.RepeatedOpens))
	}

	if len(recs) == 0 {
		recs = append(recs, "Keep logging honestly; the picture sharpens with every week of data.")
	}
	return recs
}

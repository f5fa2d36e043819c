package advice

import (
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// BuildContext derives the rule inputs from a window of records.
// goalMinutes is the configured daily budget; loc is the timezone for
// late-night evaluation, nil meaning process local.
func BuildContext(records []journal.UsageRecord, goalMinutes int, loc *time.Location) *Context {
	sig := insight.BuildRegretSignals(records, loc)
	weekly := insight.ComputeWeeklyStats(records)
	risk := insight.CalculateRiskScore(records)

	tagged := 0
	for _, r := range records {
		if r.HasIntention() {
			tagged++
		}
	}
	intentionRate := 0.0
	if len(records) > 0 {
		intentionRate = float64(tagged) / float64(len(records))
	}

	return &Context{
		GoalMinutes:          goalMinutes,
		RecordCount:          len(records),
		DaysActive:           weekly.DaysActive,
		DailyAvg:             sig.DailyAvg,
		TotalMinutes:         weekly.TotalMinutes,
		LateNightFrequency:   sig.LateNightFrequency,
		IntentDriftFrequency: sig.IntentDriftFrequency,
		IntentionRate:        intentionRate,
		RepeatedOpens:        sig.RepeatedOpens,
		HonestyScore:         sig.HonestyScore,
		RiskScore:            risk.Score,
		TopApps:              weekly.Apps,
	}
}

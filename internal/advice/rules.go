package advice

import "fmt"

// LateNightCutoff fires when a meaningful share of sessions lands between
// 22:00 and 06:00.
func LateNightCutoff(ctx *Context) []Advice {
	if ctx.LateNightFrequency <= 0.3 {
		return nil
	}

	priority := PriorityHigh
	if ctx.LateNightFrequency >= 0.5 {
		priority = PriorityCritical
	}

	return []Advice{{
		Category: "sleep",
		Priority: priority,
		Title:    "Set a late-night cutoff",
		Description: fmt.Sprintf(
			"%.0f%% of your sessions happen between 22:00 and 06:00. Those are the "+
				"minutes that cost the most: they trade directly against sleep. Pick a "+
				"cutoff time and charge your phone outside the bedroom for a week.",
			ctx.LateNightFrequency*100,
		),
		ImpactScore: ComputeImpact(ctx.DaysActive, ctx.LateNightFrequency, 45, 2),
	}}
}

// OverBudget fires when average daily usage exceeds the configured goal.
func OverBudget(ctx *Context) []Advice {
	if ctx.GoalMinutes <= 0 || ctx.DailyAvg <= float64(ctx.GoalMinutes) {
		return nil
	}

	over := ctx.DailyAvg - float64(ctx.GoalMinutes)
	priority := PriorityHigh
	if ctx.DailyAvg >= 2*float64(ctx.GoalMinutes) {
		priority = PriorityCritical
	}

	return []Advice{{
		Category: "usage",
		Priority: priority,
		Title:    "You're over your daily budget",
		Description: fmt.Sprintf(
			"You're averaging %.0f minutes a day against a %d minute goal, %.0f "+
				"minutes over. Give your heaviest app a hard daily limit first; the "+
				"rest usually follows.",
			ctx.DailyAvg, ctx.GoalMinutes, over,
		),
		ImpactScore: ComputeImpact(ctx.DaysActive, 1.0, over, 3),
	}}
}

// DriftingSessions fires when intention-tagged sessions mostly fail to
// find what they came for.
func DriftingSessions(ctx *Context) []Advice {
	if ctx.IntentDriftFrequency < 0.4 || ctx.IntentionRate == 0 || ctx.RecordCount < 3 {
		return nil
	}

	return []Advice{{
		Category: "intention",
		Priority: PriorityHigh,
		Title:    "Close the app once you have what you came for",
		Description: fmt.Sprintf(
			"In %.0f%% of the sessions where you stated a goal, you didn't find it. "+
				"That gap between intention and outcome is where scrolling lives. Say "+
				"the goal out loud when you open the app, and leave the moment it's met.",
			ctx.IntentDriftFrequency*100,
		),
		ImpactScore: ComputeImpact(ctx.DaysActive, ctx.IntentDriftFrequency, 30, 2),
	}}
}

// UntaggedSessions nudges toward logging intentions when most records
// have none. The mirror analysis is only as good as its inputs.
func UntaggedSessions(ctx *Context) []Advice {
	if ctx.RecordCount < 5 || ctx.IntentionRate >= 0.5 {
		return nil
	}

	return []Advice{{
		Category: "intention",
		Priority: PriorityMedium,
		Title:    "Log what you came for",
		Description: fmt.Sprintf(
			"Only %.0f%% of your entries say why you opened the app. Adding a short "+
				"intention to each log turns the journal into a mirror: it can show "+
				"you which reasons actually get answered.",
			ctx.IntentionRate*100,
		),
		ImpactScore: ComputeImpact(ctx.DaysActive, 1-ctx.IntentionRate, 15, 2),
	}}
}

// SparseLogging fires when the journal has entries but misses most days.
func SparseLogging(ctx *Context) []Advice {
	if ctx.RecordCount == 0 || ctx.DaysActive >= 4 {
		return nil
	}

	missedDays := 7 - ctx.DaysActive

	return []Advice{{
		Category: "honesty",
		Priority: PriorityMedium,
		Title:    "Log every day, even the zero days",
		Description: fmt.Sprintf(
			"You logged on %d of the last 7 days. The gaps are where the score "+
				"stops being trustworthy; a quick zero-minute entry on an off day "+
				"keeps the record honest.",
			ctx.DaysActive,
		),
		ImpactScore: ComputeImpact(missedDays, 1.0, 10, 2),
	}}
}

// AppConcentration flags a single app owning most of the week.
func AppConcentration(ctx *Context) []Advice {
	if len(ctx.TopApps) == 0 || ctx.TotalMinutes < 120 {
		return nil
	}
	top := ctx.TopApps[0]
	share := top.Minutes / ctx.TotalMinutes
	if share <= 0.6 {
		return nil
	}

	return []Advice{{
		Category: "focus",
		Priority: PriorityMedium,
		Title:    fmt.Sprintf("%s owns your screen time", top.Name),
		Description: fmt.Sprintf(
			"%s accounts for %.0f%% of the week's %.0f minutes. One app at that "+
				"share deserves its own rules: move it off the home screen, sign out "+
				"after each visit, or give it a standalone daily cap.",
			top.Name, share*100, ctx.TotalMinutes,
		),
		ImpactScore: ComputeImpact(ctx.DaysActive, share, 20, 2),
	}}
}

// JournalHygiene flags a low honesty score.
func JournalHygiene(ctx *Context) []Advice {
	if ctx.HonestyScore >= 80 {
		return nil
	}

	priority := PriorityMedium
	if ctx.HonestyScore < 60 {
		priority = PriorityHigh
	}

	return []Advice{{
		Category: "honesty",
		Priority: priority,
		Title:    "Tighten up the journal",
		Description: fmt.Sprintf(
			"Your honesty score is %d. Gaps, sudden spikes, or implausible "+
				"durations are dragging it down, and every other score leans on "+
				"this one. Log daily and log real numbers; the rest of the picture "+
				"sharpens on its own.",
			ctx.HonestyScore,
		),
		ImpactScore: ComputeImpact(ctx.DaysActive, float64(100-ctx.HonestyScore)/100, 10, 1),
	}}
}

// CompulsiveReopens fires when most days see repeated visits.
func CompulsiveReopens(ctx *Context) []Advice {
	if ctx.RepeatedOpens < 4 {
		return nil
	}

	return []Advice{{
		Category: "usage",
		Priority: PriorityMedium,
		Title:    "Break the reopen loop",
		Description: fmt.Sprintf(
			"On %d days this week you came back to apps after already logging "+
				"time there. Repeated opens are usually reflex, not need. Batch "+
				"your check-ins into two or three planned visits a day.",
			ctx.RepeatedOpens,
		),
		ImpactScore: ComputeImpact(ctx.RepeatedOpens, 1.0, 15, 2),
	}}
}

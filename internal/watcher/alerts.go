package watcher

import (
	"fmt"
	"time"
)

// riskRank orders risk levels for escalation checks.
var riskRank = map[string]int{"low": 0, "moderate": 1, "high": 2}

// honestyDropThreshold is the between-check drop in honesty points that
// earns a warning.
const honestyDropThreshold = 10

// usageSpikeRatio is how far today's minutes must run above the 7-day
// daily average before the day counts as a spike.
const usageSpikeRatio = 1.5

// Compare detects notable changes between two watch states and returns alerts.
// It checks for critical, warning, and info-level changes.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr)...)
	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

// compareCritical detects critical-level changes.
func compareCritical(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// Risk category escalated (low -> moderate -> high).
	if riskRank[curr.RiskLevel] > riskRank[prev.RiskLevel] {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   fmt.Sprintf("Risk escalated to %s", curr.RiskLevel),
			Message: fmt.Sprintf("Week risk score is %d, up from %d (%s)", curr.RiskScore, prev.RiskScore, prev.RiskLevel),
			Time:    now,
		})
	}

	return alerts
}

// compareWarning detects warning-level changes.
func compareWarning(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// Honesty score fell sharply between checks.
	if drop := prev.HonestyScore - curr.HonestyScore; drop > honestyDropThreshold {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Honesty score dropped",
			Message: fmt.Sprintf("Fell %d points since the last check (%d to %d)", drop, prev.HonestyScore, curr.HonestyScore),
			Time:    now,
		})
	}

	// First late-night record of the day.
	if curr.lateNightToday > 0 && prev.lateNightToday == 0 {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Late-night session logged",
			Message: fmt.Sprintf("First entry in the 22:00-06:00 window today; %d this week", curr.LateNightWeek),
			Time:    now,
		})
	}

	// Today's usage spiked past the trailing daily average.
	if curr.weekDailyAvg > 0 && curr.TodayMinutes > curr.weekDailyAvg*usageSpikeRatio &&
		!(prev.weekDailyAvg > 0 && prev.TodayMinutes > prev.weekDailyAvg*usageSpikeRatio) {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Usage spike",
			Message: fmt.Sprintf("Today is at %.0f minutes against a %.0f minute daily average", curr.TodayMinutes, curr.weekDailyAvg),
			Time:    now,
		})
	}

	return alerts
}

// compareInfo detects informational changes.
func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// New records arrived since the last check.
	if curr.RecordCount > prev.RecordCount && curr.lastRecord != nil {
		newCount := curr.RecordCount - prev.RecordCount
		last := curr.lastRecord
		if newCount == 1 {
			msg := fmt.Sprintf("%.0f min on %s", last.MinutesSpent, last.Date)
			if last.HasIntention() {
				msg += fmt.Sprintf(" for %q", last.Intention)
			}
			alerts = append(alerts, Alert{
				Level:   "info",
				Title:   fmt.Sprintf("Record logged: %s", last.AppName),
				Message: msg,
				Time:    now,
			})
		} else {
			alerts = append(alerts, Alert{
				Level:   "info",
				Title:   "Records logged",
				Message: fmt.Sprintf("%d new entries, latest %s (%.0f min)", newCount, last.AppName, last.MinutesSpent),
				Time:    now,
			})
		}
	}

	// Risk category eased (high -> moderate -> low).
	if riskRank[curr.RiskLevel] < riskRank[prev.RiskLevel] {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   fmt.Sprintf("Risk eased to %s", curr.RiskLevel),
			Message: fmt.Sprintf("Week risk score is %d, down from %d (%s)", curr.RiskScore, prev.RiskScore, prev.RiskLevel),
			Time:    now,
		})
	}

	return alerts
}

package watcher

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

func makeState() *WatchState {
	return &WatchState{RiskLevel: "low"}
}

func TestCompare_NoChanges(t *testing.T) {
	prev := makeState()
	prev.RecordCount = 5
	prev.HonestyScore = 90
	prev.RiskScore = 20

	curr := makeState()
	curr.RecordCount = 5
	curr.HonestyScore = 90
	curr.RiskScore = 20

	alerts := Compare(prev, curr)
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts for identical states, got %d", len(alerts))
		for _, a := range alerts {
			t.Logf("  [%s] %s: %s", a.Level, a.Title, a.Message)
		}
	}
}

func TestCompare_EmptyStates(t *testing.T) {
	alerts := Compare(makeState(), makeState())
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts for empty identical states, got %d", len(alerts))
	}
}

func TestCompare_RiskEscalation(t *testing.T) {
	prev := makeState()
	prev.RiskScore = 30
	prev.RiskLevel = "low"

	curr := makeState()
	curr.RiskScore = 55
	curr.RiskLevel = "moderate"

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "critical" && a.Title == "Risk escalated to moderate" {
			found = true
			if !strings.Contains(a.Message, "55") {
				t.Errorf("expected message to carry the new score, got %q", a.Message)
			}
		}
	}
	if !found {
		t.Error("expected critical alert for risk escalation")
	}
}

func TestCompare_RiskImprovement(t *testing.T) {
	prev := makeState()
	prev.RiskScore = 75
	prev.RiskLevel = "high"

	curr := makeState()
	curr.RiskScore = 50
	curr.RiskLevel = "moderate"

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "info" && a.Title == "Risk eased to moderate" {
			found = true
		}
	}
	if !found {
		t.Error("expected info alert for risk improvement")
	}
}

func TestCompare_HonestyDrop(t *testing.T) {
	prev := makeState()
	prev.HonestyScore = 90

	curr := makeState()
	curr.HonestyScore = 75

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "warning" && a.Title == "Honesty score dropped" {
			found = true
		}
	}
	if !found {
		t.Error("expected warning alert for a 15 point honesty drop")
	}
}

func TestCompare_HonestyDropAtThreshold(t *testing.T) {
	prev := makeState()
	prev.HonestyScore = 90

	curr := makeState()
	curr.HonestyScore = 80

	// A drop of exactly 10 points stays quiet.
	alerts := Compare(prev, curr)
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts for a 10 point drop, got %d", len(alerts))
	}
}

func TestCompare_FirstLateNightOfDay(t *testing.T) {
	prev := makeState()
	prev.lateNightToday = 0

	curr := makeState()
	curr.lateNightToday = 1
	curr.LateNightWeek = 3

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "warning" && a.Title == "Late-night session logged" {
			found = true
			if !strings.Contains(a.Message, "3 this week") {
				t.Errorf("expected message to carry the week count, got %q", a.Message)
			}
		}
	}
	if !found {
		t.Error("expected warning alert for first late-night record of the day")
	}
}

func TestCompare_RepeatLateNightStaysQuiet(t *testing.T) {
	prev := makeState()
	prev.lateNightToday = 1

	curr := makeState()
	curr.lateNightToday = 2

	alerts := Compare(prev, curr)
	for _, a := range alerts {
		if a.Title == "Late-night session logged" {
			t.Error("expected no alert for a second late-night record")
		}
	}
}

func TestCompare_UsageSpike(t *testing.T) {
	prev := makeState()
	prev.TodayMinutes = 50
	prev.weekDailyAvg = 60

	curr := makeState()
	curr.TodayMinutes = 120
	curr.weekDailyAvg = 60

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "warning" && a.Title == "Usage spike" {
			found = true
		}
	}
	if !found {
		t.Error("expected warning alert for usage spike past 1.5x the daily average")
	}
}

func TestCompare_OngoingSpikeStaysQuiet(t *testing.T) {
	prev := makeState()
	prev.TodayMinutes = 120
	prev.weekDailyAvg = 60

	curr := makeState()
	curr.TodayMinutes = 150
	curr.weekDailyAvg = 60

	// The spike alert fires on the crossing, not on every cycle above it.
	alerts := Compare(prev, curr)
	for _, a := range alerts {
		if a.Title == "Usage spike" {
			t.Error("expected no repeat alert while already spiking")
		}
	}
}

func TestCompare_NewRecord(t *testing.T) {
	prev := makeState()
	prev.RecordCount = 1
	prev.LastRecordID = "a"

	curr := makeState()
	curr.RecordCount = 2
	curr.LastRecordID = "b"
	curr.lastRecord = &journal.UsageRecord{
		ID:           "b",
		AppName:      "instagram",
		MinutesSpent: 45,
		Date:         "2026-08-04",
		Intention:    "check messages",
	}

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "info" && a.Title == "Record logged: instagram" {
			found = true
			if !strings.Contains(a.Message, "45 min") {
				t.Errorf("expected message to carry the minutes, got %q", a.Message)
			}
			if !strings.Contains(a.Message, "check messages") {
				t.Errorf("expected message to carry the intention, got %q", a.Message)
			}
		}
	}
	if !found {
		t.Error("expected info alert for new record")
	}
}

func TestCompare_MultipleNewRecords(t *testing.T) {
	prev := makeState()
	prev.RecordCount = 1

	curr := makeState()
	curr.RecordCount = 4
	curr.lastRecord = &journal.UsageRecord{
		ID:           "z",
		AppName:      "youtube",
		MinutesSpent: 30,
		Date:         "2026-08-04",
	}

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "info" && a.Title == "Records logged" {
			found = true
			if !strings.Contains(a.Message, "3 new entries") {
				t.Errorf("expected message to count new entries, got %q", a.Message)
			}
		}
	}
	if !found {
		t.Error("expected info alert for batch of new records")
	}
}

func TestCompare_DeletedRecordStaysQuiet(t *testing.T) {
	prev := makeState()
	prev.RecordCount = 3

	curr := makeState()
	curr.RecordCount = 2

	alerts := Compare(prev, curr)
	for _, a := range alerts {
		if a.Level == "info" {
			t.Errorf("expected no info alert when the count shrinks, got %q", a.Title)
		}
	}
}

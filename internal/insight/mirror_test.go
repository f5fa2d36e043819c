package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// withIntent tags a fixture record with an intention and its outcome.
func withIntent(r journal.UsageRecord, intention string, found journal.FoundIt) journal.UsageRecord {
	r.Intention = intention
	r.FoundIt = found
	return r
}

func TestAnalyzeMirror_MostlyNotFound(t *testing.T) {
	records := []journal.UsageRecord{
		withIntent(rec("instagram", 20, "2026-08-01"), "relax", journal.FoundNo),
		withIntent(rec("instagram", 25, "2026-08-02"), "relax", journal.FoundNo),
		withIntent(rec("instagram", 30, "2026-08-03"), "relax", journal.FoundNo),
	}
	got := AnalyzeMirror(records, time.UTC)

	if len(got) != 1 {
		t.Fatalf("got %d insights, want 1: %+v", len(got), got)
	}
	ins := got[0]
	if ins.Pattern != PatternNotFound {
		t.Errorf("pattern = %q, want %q", ins.Pattern, PatternNotFound)
	}
	if ins.Count != 3 || ins.FoundItRate != 0 {
		t.Errorf("count = %d rate = %v, want 3 and 0", ins.Count, ins.FoundItRate)
	}
	if !strings.Contains(ins.Message, "3 times") || !strings.Contains(ins.Message, "0% of the time") {
		t.Errorf("message = %q", ins.Message)
	}
}

func TestAnalyzeMirror_IgnoresUntaggedAndUnanswered(t *testing.T) {
	records := []journal.UsageRecord{
		rec("instagram", 20, "2026-08-01"),
		withIntent(rec("instagram", 25, "2026-08-02"), "relax", journal.FoundUnknown),
		withIntent(rec("instagram", 30, "2026-08-03"), "   ", journal.FoundNo),
	}
	if got := AnalyzeMirror(records, time.UTC); len(got) != 0 {
		t.Errorf("got %d insights from unmirrorable records, want none", len(got))
	}
}

func TestAnalyzeMirror_LongSessionsThatMiss(t *testing.T) {
	// Two sessions cannot trip the not-found rule, but ninety-minute
	// sessions finding their target only half the time can.
	records := []journal.UsageRecord{
		withIntent(rec("youtube", 90, "2026-08-01"), "learn spanish", journal.FoundYes),
		withIntent(rec("youtube", 90, "2026-08-02"), "learn spanish", journal.FoundNo),
	}
	got := AnalyzeMirror(records, time.UTC)

	if len(got) != 1 {
		t.Fatalf("got %d insights, want 1: %+v", len(got), got)
	}
	ins := got[0]
	if ins.Pattern != PatternLongSessionNotFound {
		t.Errorf("pattern = %q, want %q", ins.Pattern, PatternLongSessionNotFound)
	}
	if ins.AvgMinutes != 90 || ins.FoundItRate != 0.5 {
		t.Errorf("avg = %v rate = %v, want 90 and 0.5", ins.AvgMinutes, ins.FoundItRate)
	}
	if !strings.Contains(ins.Message, "about 90 minutes") || !strings.Contains(ins.Message, "50% of the time") {
		t.Errorf("message = %q", ins.Message)
	}
}

func TestAnalyzeMirror_LateNightHabit(t *testing.T) {
	records := []journal.UsageRecord{
		withIntent(recAt("whatsapp", 30, "2026-08-01", 23), "check messages", journal.FoundYes),
		withIntent(recAt("whatsapp", 20, "2026-08-02", 2), "check messages", journal.FoundYes),
	}
	got := AnalyzeMirror(records, time.UTC)

	if len(got) != 1 {
		t.Fatalf("got %d insights, want 1: %+v", len(got), got)
	}
	ins := got[0]
	if ins.Pattern != PatternLateNight {
		t.Errorf("pattern = %q, want %q", ins.Pattern, PatternLateNight)
	}
	if ins.LateNightCount != 2 {
		t.Errorf("late night count = %d, want 2", ins.LateNightCount)
	}
	if !strings.Contains(ins.Message, "2 of your 2 sessions") {
		t.Errorf("message = %q", ins.Message)
	}
}

func TestAnalyzeMirror_NotFoundOutranksLateNight(t *testing.T) {
	// All three sessions are late at night and all miss; the not-found
	// rule classifies first.
	records := []journal.UsageRecord{
		withIntent(recAt("instagram", 15, "2026-08-01", 23), "fall asleep", journal.FoundNo),
		withIntent(recAt("instagram", 15, "2026-08-02", 23), "fall asleep", journal.FoundNo),
		withIntent(recAt("instagram", 15, "2026-08-03", 23), "fall asleep", journal.FoundNo),
	}
	got := AnalyzeMirror(records, time.UTC)

	if len(got) != 1 || got[0].Pattern != PatternNotFound {
		t.Fatalf("got %+v, want one not-found insight", got)
	}
	if got[0].LateNightCount != 3 {
		t.Errorf("late night count = %d, want 3 even when another pattern wins", got[0].LateNightCount)
	}
}

func TestAnalyzeMirror_SortsByCount(t *testing.T) {
	records := []journal.UsageRecord{
		withIntent(rec("instagram", 10, "2026-08-01"), "relax", journal.FoundNo),
		withIntent(rec("instagram", 10, "2026-08-02"), "relax", journal.FoundNo),
		withIntent(rec("instagram", 10, "2026-08-03"), "relax", journal.FoundNo),
		withIntent(rec("twitter", 10, "2026-08-01"), "catch up on news", journal.FoundNo),
		withIntent(rec("twitter", 10, "2026-08-02"), "catch up on news", journal.FoundNo),
		withIntent(rec("twitter", 10, "2026-08-03"), "catch up on news", journal.FoundNo),
		withIntent(rec("twitter", 10, "2026-08-04"), "catch up on news", journal.FoundNo),
	}
	got := AnalyzeMirror(records, time.UTC)

	if len(got) != 2 {
		t.Fatalf("got %d insights, want 2", len(got))
	}
	if got[0].Intention != "catch up on news" || got[0].Count != 4 {
		t.Errorf("first insight = %q (%d), want the larger group first", got[0].Intention, got[0].Count)
	}
	if got[1].Intention != "relax" {
		t.Errorf("second insight = %q, want relax", got[1].Intention)
	}
}

func TestAnalyzeMirror_NormalizesIntentionCase(t *testing.T) {
	records := []journal.UsageRecord{
		withIntent(rec("instagram", 10, "2026-08-01"), "Relax", journal.FoundNo),
		withIntent(rec("instagram", 10, "2026-08-02"), "RELAX", journal.FoundNo),
		withIntent(rec("instagram", 10, "2026-08-03"), "  relax ", journal.FoundNo),
	}
	got := AnalyzeMirror(records, time.UTC)

	if len(got) != 1 {
		t.Fatalf("got %d insights, want one merged group", len(got))
	}
	if got[0].Intention != "relax" || got[0].Count != 3 {
		t.Errorf("group = %q (%d), want relax with 3 sessions", got[0].Intention, got[0].Count)
	}
}

func TestAnalyzeMirror_TimezoneMovesTheNight(t *testing.T) {
	// 23:00 UTC is 08:00 the next morning in Tokyo.
	records := []journal.UsageRecord{
		withIntent(recAt("whatsapp", 30, "2026-08-01", 23), "check messages", journal.FoundYes),
		withIntent(recAt("whatsapp", 20, "2026-08-02", 23), "check messages", journal.FoundYes),
	}

	if got := AnalyzeMirror(records, time.UTC); len(got) != 1 || got[0].Pattern != PatternLateNight {
		t.Errorf("UTC view = %+v, want a late-night insight", got)
	}

	tokyo := time.FixedZone("JST", 9*3600)
	if got := AnalyzeMirror(records, tokyo); len(got) != 0 {
		t.Errorf("JST view = %+v, want none", got)
	}
}

func TestAnalyzeMirror_HealthyGroupStaysQuiet(t *testing.T) {
	records := []journal.UsageRecord{
		withIntent(rec("maps", 10, "2026-08-01"), "find a route", journal.FoundYes),
		withIntent(rec("maps", 12, "2026-08-02"), "find a route", journal.FoundYes),
		withIntent(rec("maps", 8, "2026-08-03"), "find a route", journal.FoundYes),
	}
	if got := AnalyzeMirror(records, time.UTC); len(got) != 0 {
		t.Errorf("got %+v from a healthy group, want none", got)
	}
}

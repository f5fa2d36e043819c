package insight

import (
	"testing"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// rec builds a minimal record for fixtures.
func rec(app string, minutes float64, date string) journal.UsageRecord {
	return journal.UsageRecord{AppName: app, MinutesSpent: minutes, Date: date}
}

// recAt builds a record with a logging timestamp at the given UTC hour on
// its own date.
func recAt(app string, minutes float64, date string, hour int) journal.UsageRecord {
	r := rec(app, minutes, date)
	day, ok := r.Day()
	if !ok {
		panic("recAt: bad fixture date " + date)
	}
	created := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	r.CreatedAt = &created
	return r
}

// days builds one single-app record per day starting at start.
func days(app string, start string, perDay ...float64) []journal.UsageRecord {
	first, err := time.Parse(journal.DateLayout, start)
	if err != nil {
		panic("days: bad fixture date " + start)
	}
	records := make([]journal.UsageRecord, 0, len(perDay))
	for i, m := range perDay {
		records = append(records, rec(app, m, first.AddDate(0, 0, i).Format(journal.DateLayout)))
	}
	return records
}

func TestComputeDailyStats_Empty(t *testing.T) {
	stats := ComputeDailyStats(nil)
	if stats.TotalMinutes != 0 || stats.AverageMinutes != 0 || stats.AppCount != 0 {
		t.Errorf("empty input should zero out, got %+v", stats)
	}
	if stats.Apps == nil || len(stats.Apps) != 0 {
		t.Errorf("Apps should be empty, got %v", stats.Apps)
	}
}

func TestComputeDailyStats_AveragePerRecord(t *testing.T) {
	records := []journal.UsageRecord{
		rec("instagram", 30, "2026-08-01"),
		rec("tiktok", 60, "2026-08-01"),
		rec("youtube", 45, "2026-08-01"),
	}

	stats := ComputeDailyStats(records)
	if stats.TotalMinutes != 135 {
		t.Errorf("TotalMinutes = %v, want 135", stats.TotalMinutes)
	}
	// Average is per record, not per day: 135 / 3.
	if stats.AverageMinutes != 45 {
		t.Errorf("AverageMinutes = %v, want 45", stats.AverageMinutes)
	}
	if stats.AppCount != 3 {
		t.Errorf("AppCount = %d, want 3", stats.AppCount)
	}
	if stats.Apps[0].Name != "tiktok" || stats.Apps[0].Minutes != 60 {
		t.Errorf("top app = %+v, want tiktok/60", stats.Apps[0])
	}
}

func TestComputeDailyStats_TiesKeepFirstSeenOrder(t *testing.T) {
	records := []journal.UsageRecord{
		rec("reddit", 30, "2026-08-01"),
		rec("twitter", 30, "2026-08-01"),
		rec("instagram", 90, "2026-08-01"),
	}

	stats := ComputeDailyStats(records)
	want := []string{"instagram", "reddit", "twitter"}
	for i, name := range want {
		if stats.Apps[i].Name != name {
			t.Errorf("Apps[%d].Name = %q, want %q", i, stats.Apps[i].Name, name)
		}
	}
}

func TestComputeDailyStats_Rounding(t *testing.T) {
	records := []journal.UsageRecord{
		rec("a", 10.333, "2026-08-01"),
		rec("b", 10.333, "2026-08-01"),
		rec("c", 10.333, "2026-08-01"),
	}
	stats := ComputeDailyStats(records)
	if stats.TotalMinutes != 31 {
		t.Errorf("TotalMinutes = %v, want 31 (rounded to 2 decimals)", stats.TotalMinutes)
	}
	if stats.Apps[0].Minutes != 10.33 {
		t.Errorf("app minutes = %v, want 10.33", stats.Apps[0].Minutes)
	}
}

func TestComputeWeeklyStats_TrendClassification(t *testing.T) {
	cases := []struct {
		name   string
		totals []float64
		want   Trend
	}{
		{"increasing", []float64{10, 10, 50, 50}, TrendIncreasing},
		{"decreasing", []float64{50, 50, 10, 10}, TrendDecreasing},
		{"stable", []float64{30, 30, 30, 30}, TrendStable},
	}

	for _, tc := range cases {
		stats := ComputeWeeklyStats(days("instagram", "2026-08-03", tc.totals...))
		if stats.Trend != tc.want {
			t.Errorf("%s: trend = %q, want %q", tc.name, stats.Trend, tc.want)
		}
	}
}

func TestComputeWeeklyStats_TrendNeedsFourDays(t *testing.T) {
	stats := ComputeWeeklyStats(days("instagram", "2026-08-03", 10, 200, 400))
	if stats.Trend != TrendStable {
		t.Errorf("trend with 3 days = %q, want stable", stats.Trend)
	}
}

func TestComputeWeeklyStats_TrendUsesChronologicalOrder(t *testing.T) {
	// Records arrive newest-first; the halves must still be split by date,
	// not by input position.
	records := []journal.UsageRecord{
		rec("instagram", 50, "2026-08-06"),
		rec("instagram", 50, "2026-08-05"),
		rec("instagram", 10, "2026-08-04"),
		rec("instagram", 10, "2026-08-03"),
	}

	stats := ComputeWeeklyStats(records)
	if stats.Trend != TrendIncreasing {
		t.Errorf("trend = %q, want increasing regardless of input order", stats.Trend)
	}
}

func TestComputeWeeklyStats_Averages(t *testing.T) {
	records := []journal.UsageRecord{
		rec("instagram", 60, "2026-08-03"),
		rec("tiktok", 30, "2026-08-03"),
		rec("instagram", 90, "2026-08-05"),
	}

	stats := ComputeWeeklyStats(records)
	if stats.TotalMinutes != 180 {
		t.Errorf("TotalMinutes = %v, want 180", stats.TotalMinutes)
	}
	if stats.DaysActive != 2 {
		t.Errorf("DaysActive = %d, want 2", stats.DaysActive)
	}
	if stats.AverageDailyMinutes != 90 {
		t.Errorf("AverageDailyMinutes = %v, want 90", stats.AverageDailyMinutes)
	}
	if stats.Apps[0].Name != "instagram" || stats.Apps[0].Minutes != 150 {
		t.Errorf("top app = %+v, want instagram/150", stats.Apps[0])
	}
}

func TestComputeMonthlyStats(t *testing.T) {
	records := append(days("instagram", "2026-08-01", 60, 60, 60), rec("tiktok", 30, "2026-08-01"))

	stats := ComputeMonthlyStats(records)
	if stats.TotalMinutes != 210 {
		t.Errorf("TotalMinutes = %v, want 210", stats.TotalMinutes)
	}
	if stats.DaysActive != 3 {
		t.Errorf("DaysActive = %d, want 3", stats.DaysActive)
	}
	if stats.AverageDailyMinutes != 70 {
		t.Errorf("AverageDailyMinutes = %v, want 70", stats.AverageDailyMinutes)
	}
}

func TestComputeTimeSeries_Daily(t *testing.T) {
	records := []journal.UsageRecord{
		rec("a", 30, "2026-08-02"),
		rec("b", 20, "2026-08-01"),
		rec("c", 10, "2026-08-02"),
	}

	points := ComputeTimeSeries(records, journal.PeriodDaily)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Date != "2026-08-01" || points[0].Minutes != 20 {
		t.Errorf("points[0] = %+v", points[0])
	}
	if points[1].Date != "2026-08-02" || points[1].Minutes != 40 {
		t.Errorf("points[1] = %+v", points[1])
	}
}

func TestComputeTimeSeries_WeeklyBucketsOnMonday(t *testing.T) {
	// 2026-08-03 is a Monday; the 5th and 9th fall in its week, the 10th
	// starts the next one.
	records := []journal.UsageRecord{
		rec("a", 10, "2026-08-05"),
		rec("a", 20, "2026-08-09"),
		rec("a", 40, "2026-08-10"),
	}

	points := ComputeTimeSeries(records, journal.PeriodWeekly)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d: %v", len(points), points)
	}
	if points[0].Date != "2026-08-03" || points[0].Minutes != 30 {
		t.Errorf("points[0] = %+v, want 2026-08-03/30", points[0])
	}
	if points[1].Date != "2026-08-10" || points[1].Minutes != 40 {
		t.Errorf("points[1] = %+v, want 2026-08-10/40", points[1])
	}
}

func TestComputeTimeSeries_Monthly(t *testing.T) {
	records := []journal.UsageRecord{
		rec("a", 100, "2026-07-31"),
		rec("a", 50, "2026-08-01"),
		rec("a", 25, "2026-08-20"),
	}

	points := ComputeTimeSeries(records, journal.PeriodMonthly)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Date != "2026-07" || points[0].Minutes != 100 {
		t.Errorf("points[0] = %+v", points[0])
	}
	if points[1].Date != "2026-08" || points[1].Minutes != 75 {
		t.Errorf("points[1] = %+v", points[1])
	}
}

func TestComputeTimeSeries_Empty(t *testing.T) {
	points := ComputeTimeSeries(nil, journal.PeriodDaily)
	if len(points) != 0 {
		t.Errorf("expected empty series, got %v", points)
	}
}

func TestAggregates_DoNotMutateInput(t *testing.T) {
	records := []journal.UsageRecord{
		rec("b", 50, "2026-08-04"),
		rec("a", 10, "2026-08-03"),
	}

	ComputeWeeklyStats(records)
	ComputeDailyStats(records)
	ComputeTimeSeries(records, journal.PeriodWeekly)

	if records[0].AppName != "b" || records[1].AppName != "a" {
		t.Errorf("input order changed: %v", records)
	}

	first := ComputeWeeklyStats(records)
	second := ComputeWeeklyStats(records)
	if first.TotalMinutes != second.TotalMinutes || first.Trend != second.Trend {
		t.Errorf("repeated calls disagree: %+v vs %+v", first, second)
	}
}

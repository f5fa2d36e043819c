// Package report assembles every journal analysis into one document, shared
// by the report command and the API's report endpoint.
package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/scrollwatch/internal/advice"
	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// Window lengths for the report's sections. Scores that need gap context
// read a month; the usage picture is weekly.
const (
	WeekWindowDays  = 7
	MonthWindowDays = 30
)

// Report bundles every analysis computed over the journal at one moment.
type Report struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Week        insight.WeeklyStats       `json:"week"`
	Risk        insight.RiskScore         `json:"risk"`
	Honesty     int                       `json:"honesty_score"`
	Regret      insight.RegretAnalysis    `json:"regret"`
	Mirror      []insight.MirrorInsight   `json:"mirror"`
	Compare     *insight.ComparisonResult `json:"compare,omitempty"`
	Advice      []advice.Advice           `json:"advice"`
}

// Build runs every analysis over the record set. The sections are
// independent pure transforms, so they run in parallel. records is the full
// journal; each section slices its own window ending today.
func Build(ctx context.Context, records []journal.UsageRecord, goalMinutes int, loc *time.Location) (*Report, error) {
	week := lastNDays(records, WeekWindowDays, loc)
	month := lastNDays(records, MonthWindowDays, loc)

	rep := &Report{GeneratedAt: time.Now()}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		rep.Week = insight.ComputeWeeklyStats(week)
		rep.Risk = insight.CalculateRiskScore(week)
		return nil
	})
	g.Go(func() error {
		rep.Honesty = insight.CalculateHonestyScore(month)
		return nil
	})
	g.Go(func() error {
		rep.Regret = insight.AnalyzeRegret(month, loc)
		return nil
	})
	g.Go(func() error {
		rep.Mirror = insight.AnalyzeMirror(month, loc)
		return nil
	})
	g.Go(func() error {
		// CompareWindows slices its own before/after windows from the
		// full set.
		rep.Compare = insight.CompareWindows(records, insight.DefaultComparisonDays, loc)
		return nil
	})
	g.Go(func() error {
		actx := advice.BuildContext(week, goalMinutes, loc)
		rep.Advice = advice.NewEngine().Run(actx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

// lastNDays filters records to the trailing n calendar days ending today.
// Day keys use the ISO layout, so string comparison is chronological.
func lastNDays(records []journal.UsageRecord, n int, loc *time.Location) []journal.UsageRecord {
	if loc == nil {
		loc = time.Local
	}
	from := time.Now().In(loc).AddDate(0, 0, -(n - 1)).Format(journal.DateLayout)

	var out []journal.UsageRecord
	for _, r := range records {
		if r.Date >= from {
			out = append(out, r)
		}
	}
	return out
}

// Package watcher provides background monitoring of the usage journal,
// detecting risk escalations and notable changes and emitting alerts.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/journal"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

// WatchState captures a point-in-time snapshot of the journal.
type WatchState struct {
	Timestamp     time.Time
	RecordCount   int     // total records in the journal
	TodayMinutes  float64 // minutes logged on the current calendar day
	RiskScore     int     // 0-100 over the trailing 7 days
	RiskLevel     string  // "low", "moderate", "high"
	HonestyScore  int     // 0-100 over the trailing 7 days
	LateNightWeek int     // late-night records in the trailing 7 days
	LastRecordID  string

	// Internal: keep richer data for comparison.
	lateNightToday int
	weekDailyAvg   float64
	lastRecord     *journal.UsageRecord
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Watcher polls the journal at a regular interval and emits alerts when
// notable changes are detected.
type Watcher struct {
	db            *store.DB
	loc           *time.Location
	interval      time.Duration
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts

	RiskAlert    int // week risk score that fires a critical alert; 0 disables
	HonestyFloor int // honesty score under which a warning fires; 0 disables
	DailyLimit   int // daily minutes that fire a critical alert; 0 disables
}

// New creates a Watcher over the given store. loc is the timezone for
// day boundaries and late-night evaluation; nil means process local.
func New(db *store.DB, loc *time.Location, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		db:            db,
		loc:           loc,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	// Take the initial snapshot.
	initial, err := w.Snapshot()
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alerts := w.Check()
			for _, a := range alerts {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check() []Alert {
	curr, err := w.Snapshot()
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read the journal: %v", err),
			Time:    time.Now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}

	// Threshold alerts: these fire off configured limits rather than
	// state-to-state changes.
	if w.DailyLimit > 0 && curr.TodayMinutes > float64(w.DailyLimit) {
		raw = append(raw, Alert{
			Level:   "critical",
			Title:   "Daily limit exceeded",
			Message: fmt.Sprintf("%.0f minutes logged today (limit: %d)", curr.TodayMinutes, w.DailyLimit),
			Time:    time.Now(),
		})
	}
	if w.RiskAlert > 0 && w.previous != nil &&
		curr.RiskScore >= w.RiskAlert && w.previous.RiskScore < w.RiskAlert {
		raw = append(raw, Alert{
			Level:   "critical",
			Title:   "Risk score crossed alert threshold",
			Message: fmt.Sprintf("Week risk is %d (threshold: %d)", curr.RiskScore, w.RiskAlert),
			Time:    time.Now(),
		})
	}
	if w.HonestyFloor > 0 && w.previous != nil &&
		curr.HonestyScore < w.HonestyFloor && w.previous.HonestyScore >= w.HonestyFloor {
		raw = append(raw, Alert{
			Level:   "warning",
			Title:   "Honesty score below floor",
			Message: fmt.Sprintf("Honesty is %d (floor: %d); the journal has gaps or implausible entries", curr.HonestyScore, w.HonestyFloor),
			Time:    time.Now(),
		})
	}

	// Deduplicate: suppress alerts with the same title+message as last cycle.
	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot captures the current journal state: total record count, today's
// minutes, and the trailing 7-day scores. The journal is small enough that a
// full read per cycle costs nothing.
func (w *Watcher) Snapshot() (*WatchState, error) {
	records, err := w.db.ListAllRecords()
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	loc := w.loc
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	today := now.Format(journal.DateLayout)
	weekStart := now.AddDate(0, 0, -6).Format(journal.DateLayout)

	state := &WatchState{
		Timestamp:   now,
		RecordCount: len(records),
	}

	// Day keys use the ISO layout, so string comparison is chronological.
	var week []journal.UsageRecord
	for _, r := range records {
		if r.Date == today {
			state.TodayMinutes += r.MinutesSpent
		}
		if r.Date >= weekStart && r.Date <= today {
			week = append(week, r)
		}
	}

	risk := insight.CalculateRiskScore(week)
	state.RiskScore = risk.Score
	state.RiskLevel = risk.Level
	state.HonestyScore = insight.CalculateHonestyScore(week)

	weekly := insight.ComputeWeeklyStats(week)
	state.weekDailyAvg = weekly.AverageDailyMinutes

	for _, r := range week {
		if insight.IsLateNight(r, loc) {
			state.LateNightWeek++
			if r.Date == today {
				state.lateNightToday++
			}
		}
	}

	// ListAllRecords orders by date then logging time, so the newest entry
	// is last.
	if len(records) > 0 {
		last := records[len(records)-1]
		state.LastRecordID = last.ID
		state.lastRecord = &last
	}

	return state, nil
}

// Package store provides SQLite persistence for the scrollwatch journal
// and its score history.
package store

import "time"

// ScoreSnapshot is a point-in-time capture of the computed scores,
// written by `report --save` and read back by `history`.
type ScoreSnapshot struct {
	ID           int64     `json:"id"`
	TakenAt      time.Time `json:"taken_at"`
	PeriodDays   int       `json:"period_days"`
	TotalMinutes float64   `json:"total_minutes"`
	DaysActive   int       `json:"days_active"`
	RiskScore    int       `json:"risk_score"`
	RiskLevel    string    `json:"risk_level"`
	HonestyScore int       `json:"honesty_score"`
	RegretScore  int       `json:"regret_score"`
	RegretLevel  string    `json:"regret_level"`
	Version      string    `json:"version"`
}

// SnapshotDiff is the comparison between two score snapshots.
type SnapshotDiff struct {
	Previous *ScoreSnapshot `json:"previous"`
	Current  *ScoreSnapshot `json:"current"`
	Deltas   []ScoreDelta   `json:"deltas"`
}

// ScoreDelta is the change in a single score between snapshots.
type ScoreDelta struct {
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}

package store

import (
	"database/sql"
	"time"
)

const snapshotColumns = `id, taken_at, period_days, total_minutes, days_active,
	risk_score, risk_level, honesty_score, regret_score, regret_level, version`

// CreateScoreSnapshot inserts a new score snapshot and returns its ID.
// A zero TakenAt means now.
func (db *DB) CreateScoreSnapshot(s *ScoreSnapshot) (int64, error) {
	takenAt := s.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}
	result, err := db.conn.Exec(
		`INSERT INTO score_snapshots
		(taken_at, period_days, total_minutes, days_active,
		 risk_score, risk_level, honesty_score, regret_score, regret_level, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		takenAt.Format(time.RFC3339), s.PeriodDays, s.TotalMinutes, s.DaysActive,
		s.RiskScore, s.RiskLevel, s.HonestyScore, s.RegretScore, s.RegretLevel, s.Version,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// LatestScoreSnapshot returns the most recent snapshot, or nil if none exist.
func (db *DB) LatestScoreSnapshot() (*ScoreSnapshot, error) {
	row := db.conn.QueryRow(
		"SELECT " + snapshotColumns + " FROM score_snapshots ORDER BY id DESC LIMIT 1",
	)
	return scanScoreSnapshot(row)
}

// ScoreSnapshotN returns the Nth most recent snapshot (1 = latest,
// 2 = previous, and so on), or nil past the end of the history.
func (db *DB) ScoreSnapshotN(n int) (*ScoreSnapshot, error) {
	row := db.conn.QueryRow(
		"SELECT "+snapshotColumns+" FROM score_snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanScoreSnapshot(row)
}

// ListScoreSnapshots returns up to limit snapshots, newest first.
// A non-positive limit means all of them.
func (db *DB) ListScoreSnapshots(limit int) ([]ScoreSnapshot, error) {
	query := "SELECT " + snapshotColumns + " FROM score_snapshots ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snapshots []ScoreSnapshot
	for rows.Next() {
		var s ScoreSnapshot
		var takenAt string
		if err := rows.Scan(
			&s.ID, &takenAt, &s.PeriodDays, &s.TotalMinutes, &s.DaysActive,
			&s.RiskScore, &s.RiskLevel, &s.HonestyScore, &s.RegretScore, &s.RegretLevel, &s.Version,
		); err != nil {
			return nil, err
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func scanScoreSnapshot(row *sql.Row) (*ScoreSnapshot, error) {
	var s ScoreSnapshot
	var takenAt string
	err := row.Scan(
		&s.ID, &takenAt, &s.PeriodDays, &s.TotalMinutes, &s.DaysActive,
		&s.RiskScore, &s.RiskLevel, &s.HonestyScore, &s.RegretScore, &s.RegretLevel, &s.Version,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

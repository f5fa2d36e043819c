package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// ErrDuplicateDay is returned by InsertRecord when a record for the same
// app and date already exists and replacing was not requested.
var ErrDuplicateDay = errors.New("a record for this app and day already exists")

// ErrRecordNotFound is returned by DeleteRecord for an unknown id.
var ErrRecordNotFound = errors.New("record not found")

const recordColumns = "id, app_name, minutes_spent, date, created_at, intention, found_it"

// InsertRecord writes one journal entry, assigning an id when the record
// has none. The (app, day) pair is unique: a second entry for the same
// pair fails with ErrDuplicateDay unless replace is set, in which case the
// existing row keeps its id and takes the new values.
func (db *DB) InsertRecord(r journal.UsageRecord, replace bool) (journal.UsageRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	loggedAt := time.Now().UTC().Format(time.RFC3339)

	var createdAt any
	if r.CreatedAt != nil {
		createdAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	var intention any
	if r.Intention != "" {
		intention = r.Intention
	}

	if !replace {
		res, err := db.conn.Exec(
			`INSERT OR IGNORE INTO usage_records
			(id, app_name, minutes_spent, date, created_at, intention, found_it, logged_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.AppName, r.MinutesSpent, r.Date, createdAt, intention, r.FoundIt.String(), loggedAt,
		)
		if err != nil {
			return journal.UsageRecord{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return journal.UsageRecord{}, err
		}
		if n == 0 {
			return journal.UsageRecord{}, ErrDuplicateDay
		}
		return r, nil
	}

	if _, err := db.conn.Exec(
		`INSERT INTO usage_records
		(id, app_name, minutes_spent, date, created_at, intention, found_it, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(app_name, date) DO UPDATE SET
			minutes_spent = excluded.minutes_spent,
			created_at    = excluded.created_at,
			intention     = excluded.intention,
			found_it      = excluded.found_it,
			logged_at     = excluded.logged_at`,
		r.ID, r.AppName, r.MinutesSpent, r.Date, createdAt, intention, r.FoundIt.String(), loggedAt,
	); err != nil {
		return journal.UsageRecord{}, err
	}
	return db.getRecordByDay(r.AppName, r.Date)
}

// ListRecords returns records in the inclusive [from, to] date range,
// ordered by date then insertion time. Empty bounds are open-ended.
func (db *DB) ListRecords(from, to string) ([]journal.UsageRecord, error) {
	query := "SELECT " + recordColumns + " FROM usage_records"
	var conds []string
	var args []any
	if from != "" {
		conds = append(conds, "date >= ?")
		args = append(args, from)
	}
	if to != "" {
		conds = append(conds, "date <= ?")
		args = append(args, to)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date, logged_at"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []journal.UsageRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListAllRecords returns the whole journal ordered by date.
func (db *DB) ListAllRecords() ([]journal.UsageRecord, error) {
	return db.ListRecords("", "")
}

// DeleteRecord removes a record by id.
func (db *DB) DeleteRecord(id string) error {
	res, err := db.conn.Exec("DELETE FROM usage_records WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DistinctApps returns every app name in the journal, alphabetically.
func (db *DB) DistinctApps() ([]string, error) {
	rows, err := db.conn.Query("SELECT DISTINCT app_name FROM usage_records ORDER BY app_name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var apps []string
	for rows.Next() {
		var app string
		if err := rows.Scan(&app); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (db *DB) getRecordByDay(app, date string) (journal.UsageRecord, error) {
	row := db.conn.QueryRow(
		"SELECT "+recordColumns+" FROM usage_records WHERE app_name = ? AND date = ?",
		app, date,
	)
	return scanRecord(row)
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (journal.UsageRecord, error) {
	var r journal.UsageRecord
	var createdAt, intention sql.NullString
	var foundIt string
	if err := row.Scan(&r.ID, &r.AppName, &r.MinutesSpent, &r.Date, &createdAt, &intention, &foundIt); err != nil {
		return journal.UsageRecord{}, err
	}
	if createdAt.Valid {
		if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
			r.CreatedAt = &t
		}
	}
	r.Intention = intention.String
	r.FoundIt = journal.ParseFoundIt(foundIt)
	return r, nil
}

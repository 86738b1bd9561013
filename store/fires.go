package store

import (
	"database/sql"
	"fmt"
	"time"
)

// FireRecord is one dispatched shortcut.
type FireRecord struct {
	ID           int64
	Timestamp    time.Time
	Slot         string
	Set          string
	Action       string
	DurationMs   int64
	Success      bool
	ErrorMessage string
}

func (db *DB) RecordFire(r FireRecord) (int64, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	var errMsg sql.NullString
	if r.ErrorMessage != "" {
		errMsg = sql.NullString{String: r.ErrorMessage, Valid: true}
	}

	result, err := db.conn.Exec(`
		INSERT INTO fires (timestamp, slot, key_set, action, duration_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Timestamp.UTC(), r.Slot, r.Set, r.Action, r.DurationMs, r.Success, errMsg)
	if err != nil {
		return 0, fmt.Errorf("failed to insert fire: %w", err)
	}
	return result.LastInsertId()
}

// FireCounts returns how many times each slot fired.
func (db *DB) FireCounts() (map[string]int, error) {
	rows, err := db.conn.Query(`SELECT slot, COUNT(*) FROM fires GROUP BY slot`)
	if err != nil {
		return nil, fmt.Errorf("failed to count fires: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var slot string
		var n int
		if err := rows.Scan(&slot, &n); err != nil {
			return nil, fmt.Errorf("failed to scan fire count: %w", err)
		}
		out[slot] = n
	}
	return out, rows.Err()
}

// RecentFires returns up to limit fires, newest first.
func (db *DB) RecentFires(limit int) ([]FireRecord, error) {
	rows, err := db.conn.Query(`
		SELECT id, timestamp, slot, key_set, action, duration_ms, success, error_message
		FROM fires
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fires: %w", err)
	}
	defer rows.Close()

	var out []FireRecord
	for rows.Next() {
		var r FireRecord
		var errMsg sql.NullString
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Slot, &r.Set, &r.Action, &r.DurationMs, &r.Success, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan fire: %w", err)
		}
		r.ErrorMessage = errMsg.String
		out = append(out, r)
	}
	return out, rows.Err()
}

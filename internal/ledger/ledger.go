package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

func (l *implLedger) Lookup(fingerprint string) (*Entry, error) {
	row := l.db.QueryRow(`
		SELECT fingerprint, path, title, status, attempt_count, last_error,
		       first_seen_at, last_updated_at, output_locations
		FROM recordings WHERE fingerprint = ?`, fingerprint)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup entry: %w", err)
	}
	return entry, nil
}

func (l *implLedger) Create(fingerprint, path, title string) (*Entry, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := l.db.Exec(`
		INSERT INTO recordings
			(fingerprint, path, title, status, first_seen_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		fingerprint, path, title, StatusDiscovered, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "constraint") {
			return nil, ErrExists
		}
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	return l.Lookup(fingerprint)
}

// RecordTransition runs a read plus a status-guarded UPDATE inside one
// transaction. A crash leaves the row at either the old or the new value;
// a concurrent claimant for the same fingerprint sees zero rows updated
// and receives ErrConflict.
func (l *implLedger) RecordTransition(fingerprint string, from, to Status, fields Fields) (*Entry, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transition: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		SELECT fingerprint, path, title, status, attempt_count, last_error,
		       first_seen_at, last_updated_at, output_locations
		FROM recordings WHERE fingerprint = ?`, fingerprint)
	current, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("read entry: %w", err)
	}
	if current.Status != from {
		return nil, ErrConflict
	}

	title := current.Title
	if fields.Title != "" {
		title = fields.Title
	}
	lastError := current.LastError
	if fields.ClearError {
		lastError = ""
	}
	if fields.LastError != "" {
		lastError = fields.LastError
	}
	attempts := current.AttemptCount
	if fields.IncrementAttempt {
		attempts++
	}
	locations := current.OutputLocations
	if locations == nil {
		locations = map[string]string{}
	}
	for dest, loc := range fields.OutputLocations {
		locations[dest] = loc
	}
	locJSON, err := json.Marshal(locations)
	if err != nil {
		return nil, fmt.Errorf("encode output locations: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := tx.Exec(`
		UPDATE recordings
		SET status = ?, title = ?, attempt_count = ?, last_error = ?,
		    last_updated_at = ?, output_locations = ?
		WHERE fingerprint = ? AND status = ?`,
		to, title, attempts, lastError, now, string(locJSON), fingerprint, from)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}

	return l.Lookup(fingerprint)
}

func (l *implLedger) ListByStatus(status Status) ([]Entry, error) {
	rows, err := l.db.Query(`
		SELECT fingerprint, path, title, status, attempt_count, last_error,
		       first_seen_at, last_updated_at, output_locations
		FROM recordings
		WHERE status = ?
		ORDER BY first_seen_at ASC`, status)
	if err != nil {
		return nil, fmt.Errorf("query by status: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (l *implLedger) Close() error {
	return l.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var status, firstSeen, lastUpdated, locJSON string

	if err := row.Scan(&e.Fingerprint, &e.Path, &e.Title, &status, &e.AttemptCount,
		&e.LastError, &firstSeen, &lastUpdated, &locJSON); err != nil {
		return nil, err
	}

	e.Status = Status(status)
	e.FirstSeenAt, _ = time.Parse(time.RFC3339Nano, firstSeen)
	e.LastUpdatedAt, _ = time.Parse(time.RFC3339Nano, lastUpdated)
	if err := json.Unmarshal([]byte(locJSON), &e.OutputLocations); err != nil {
		return nil, fmt.Errorf("decode output locations: %w", err)
	}
	return &e, nil
}

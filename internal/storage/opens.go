package storage

import (
	"context"
	"fmt"
	"time"
)

// Open is one recorded file-open event.
type Open struct {
	ID         int64
	TsUnixMs   int64
	Profile    string
	Command    string
	RemotePath string
	LocalPath  string
}

// OpenQuery filters ListOpens results.
type OpenQuery struct {
	// Profile limits results to one profile when non-empty.
	Profile string

	// Limit caps the number of rows returned; 0 means the default cap.
	Limit int
}

// RecordOpen inserts one open event. The timestamp is assigned here when
// the caller leaves it zero.
func (s *SQLiteStore) RecordOpen(ctx context.Context, o *Open) error {
	if o == nil {
		return fmt.Errorf("open cannot be nil")
	}
	if o.TsUnixMs == 0 {
		o.TsUnixMs = time.Now().UnixMilli()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO opens (ts_unix_ms, profile, command, remote_path, local_path)
		VALUES (?, ?, ?, ?, ?)
	`, o.TsUnixMs, o.Profile, o.Command, o.RemotePath, o.LocalPath)
	if err != nil {
		return fmt.Errorf("record open: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		o.ID = id
	}
	return nil
}

// ListOpens returns recorded opens, most recent first.
func (s *SQLiteStore) ListOpens(ctx context.Context, q OpenQuery) ([]Open, error) {
	query := `
		SELECT id, ts_unix_ms, profile, command, remote_path, local_path
		FROM opens
		WHERE 1=1
	`
	args := make([]interface{}, 0)

	if q.Profile != "" {
		query += " AND profile = ?"
		args = append(args, q.Profile)
	}

	query += " ORDER BY ts_unix_ms DESC"

	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	} else {
		// Default limit to prevent unbounded queries
		query += " LIMIT 1000"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query opens: %w", err)
	}
	defer rows.Close()

	var opens []Open
	for rows.Next() {
		var o Open
		if err := rows.Scan(&o.ID, &o.TsUnixMs, &o.Profile, &o.Command, &o.RemotePath, &o.LocalPath); err != nil {
			return nil, fmt.Errorf("scan open: %w", err)
		}
		opens = append(opens, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate opens: %w", err)
	}

	return opens, nil
}

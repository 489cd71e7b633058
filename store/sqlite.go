package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jcalabro/hpss"
)

// SQLite persists generated batches to a local sqlite database, one row per
// (requestID, setIndex) pair uniqued exactly as spec.md §6 describes the
// reference schema.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the sqlite database at path and
// ensures the backing table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS icon_sets (
	request_id TEXT NOT NULL,
	set_index  INTEGER NOT NULL,
	item_ids   TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (request_id, set_index)
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, requestID string, sets []hpss.OutputSet) error {
	var existing int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM icon_sets WHERE request_id = ?`, requestID).Scan(&existing); err != nil {
		return fmt.Errorf("store: check existing: %w", err)
	}
	if existing > 0 {
		return ErrAlreadyExists
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	for _, set := range sets {
		payload, err := json.Marshal(set.Items)
		if err != nil {
			return fmt.Errorf("store: marshal set %d: %w", set.Index, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO icon_sets (request_id, set_index, item_ids, created_at) VALUES (?, ?, ?, ?)`,
			requestID, set.Index, string(payload), createdAt,
		); err != nil {
			return fmt.Errorf("store: insert set %d: %w", set.Index, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Sets(ctx context.Context, requestID string) ([]hpss.OutputSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT set_index, item_ids FROM icon_sets WHERE request_id = ? ORDER BY set_index`, requestID)
	if err != nil {
		return nil, fmt.Errorf("store: query sets: %w", err)
	}
	defer rows.Close()

	var sets []hpss.OutputSet
	for rows.Next() {
		var idx int
		var payload string
		if err := rows.Scan(&idx, &payload); err != nil {
			return nil, fmt.Errorf("store: scan set: %w", err)
		}
		var items []int64
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			return nil, fmt.Errorf("store: unmarshal set %d: %w", idx, err)
		}
		sets = append(sets, hpss.OutputSet{Index: idx, Items: items})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, ErrNotFound
	}
	return sets, nil
}

func (s *SQLite) Set(ctx context.Context, requestID string, setIndex int) (hpss.OutputSet, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT item_ids FROM icon_sets WHERE request_id = ? AND set_index = ?`, requestID, setIndex,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return hpss.OutputSet{}, ErrNotFound
	}
	if err != nil {
		return hpss.OutputSet{}, fmt.Errorf("store: query set: %w", err)
	}
	var items []int64
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return hpss.OutputSet{}, fmt.Errorf("store: unmarshal set %d: %w", setIndex, err)
	}
	return hpss.OutputSet{Index: setIndex, Items: items}, nil
}

func (s *SQLite) Delete(ctx context.Context, requestID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM icon_sets WHERE request_id = ?`, requestID)
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

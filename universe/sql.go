package universe

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"           // postgres driver, registered by side effect
	_ "github.com/mattn/go-sqlite3" // sqlite driver, registered by side effect

	"github.com/jcalabro/hpss"
)

// SQL is a hpss.Universe backed by a table physically indexed (ideally
// partitioned) by a stored `stratum` column, matching the reference
// implementation's PostgreSQL-partitioned icon storage. It supports both
// sqlite (local development, matching the driver greenforestpath-ntm
// embeds for its own session store) and postgres (matching the driver
// haasonsaas-nexus uses for its durable storage) — the placeholder syntax
// differs between the two and is chosen at Open time.
type SQL struct {
	db     *sql.DB
	table  string
	idCol  string
	stratC string
	driver string
}

// Option configures a SQL universe.
type Option func(*SQL)

// WithTable overrides the default table name "icons".
func WithTable(name string) Option { return func(s *SQL) { s.table = name } }

// WithColumns overrides the default column names "id" and "stratum".
func WithColumns(idCol, stratumCol string) Option {
	return func(s *SQL) { s.idCol, s.stratC = idCol, stratumCol }
}

// OpenSQL opens driverName (one of "sqlite3" or "postgres") against dsn and
// wraps it as a hpss.Universe. The caller owns the returned *sql.DB and
// should Close it via [SQL.Close] when done; SQL never mutates the
// universe.
//
// The backing table is expected to have a `stratum` column populated at
// ingestion time by [hpss.Stratum] on the same id — enforcing this at
// ingestion, not here, is what keeps EnumerateStratum(p) from ever
// surfacing a row for which hpss.Stratum(id) != p (§4.A's contract).
func OpenSQL(ctx context.Context, driverName, dsn string, opts ...Option) (*SQL, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("universe: open %s: %w", driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("universe: ping %s: %w", driverName, err)
	}

	s := &SQL{db: db, table: "icons", idCol: "id", stratC: "stratum", driver: driverName}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying *sql.DB.
func (s *SQL) Close() error { return s.db.Close() }

func (s *SQL) placeholder(n int) string {
	if s.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQL) Size(ctx context.Context) (uint64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)
	var count uint64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("universe: count %s: %w", s.table, err)
	}
	return count, nil
}

func (s *SQL) EnumerateStratum(ctx context.Context, p int) (hpss.StratumIterator, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s", s.idCol, s.table, s.stratC, s.placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, p)
	if err != nil {
		return nil, fmt.Errorf("universe: enumerate stratum %d: %w", p, err)
	}
	return &sqlIterator{rows: rows}, nil
}

type sqlIterator struct {
	rows *sql.Rows
	cur  int64
	err  error
}

func (it *sqlIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if !it.rows.Next() {
		return false
	}
	if err := it.rows.Scan(&it.cur); err != nil {
		it.err = err
		return false
	}
	return true
}

func (it *sqlIterator) Item() int64 { return it.cur }

func (it *sqlIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

func (it *sqlIterator) Close() error { return it.rows.Close() }

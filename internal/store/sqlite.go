package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dcoale/skilld/internal/model"

	_ "modernc.org/sqlite"
)

const createInvocationsTable = `
CREATE TABLE IF NOT EXISTS invocations (
    id          TEXT PRIMARY KEY,
    skill       TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    data_type   TEXT NOT NULL,
    origin      TEXT NOT NULL,
    success     INTEGER NOT NULL,
    error       TEXT,
    cost        INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    created_at  DATETIME NOT NULL
)`

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the SQLite database at dbPath and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(createInvocationsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create invocations table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordInvocation inserts one invocation record.
func (s *SQLiteStore) RecordInvocation(ctx context.Context, inv *model.Invocation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (
			id, skill, fingerprint, data_type, origin, success,
			error, cost, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Skill, inv.Fingerprint, inv.DataType, inv.Origin, inv.Success,
		inv.Error, inv.Cost, inv.DurationMS, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invocation: %w", err)
	}
	return nil
}

// ListInvocations returns a paginated list of invocations ordered by
// created_at DESC, along with the total record count.
func (s *SQLiteStore) ListInvocations(ctx context.Context, limit, offset int) ([]*model.Invocation, int, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM invocations").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invocations: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, skill, fingerprint, data_type, origin, success,
			error, cost, duration_ms, created_at
		FROM invocations ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list invocations: %w", err)
	}
	defer rows.Close()

	var invocations []*model.Invocation
	for rows.Next() {
		inv := &model.Invocation{}
		var errText sql.NullString
		if err := rows.Scan(
			&inv.ID, &inv.Skill, &inv.Fingerprint, &inv.DataType, &inv.Origin, &inv.Success,
			&errText, &inv.Cost, &inv.DurationMS, &inv.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan invocation: %w", err)
		}
		inv.Error = errText.String
		invocations = append(invocations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate invocations: %w", err)
	}

	return invocations, total, nil
}

// GetInvocationStats aggregates the recorded history by skill and origin.
func (s *SQLiteStore) GetInvocationStats(ctx context.Context) (*InvocationStats, error) {
	stats := &InvocationStats{
		CountBySkill:  make(map[string]int),
		CountByOrigin: make(map[string]int),
	}

	rows, err := s.db.QueryContext(ctx, "SELECT skill, COUNT(*) FROM invocations GROUP BY skill")
	if err != nil {
		return nil, fmt.Errorf("count by skill: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var skill string
		var count int
		if err := rows.Scan(&skill, &count); err != nil {
			return nil, fmt.Errorf("scan skill count: %w", err)
		}
		stats.CountBySkill[skill] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill counts: %w", err)
	}

	originRows, err := s.db.QueryContext(ctx,
		"SELECT origin, COUNT(*) FROM invocations WHERE origin != '' GROUP BY origin")
	if err != nil {
		return nil, fmt.Errorf("count by origin: %w", err)
	}
	defer originRows.Close()
	for originRows.Next() {
		var origin string
		var count int
		if err := originRows.Scan(&origin, &count); err != nil {
			return nil, fmt.Errorf("scan origin count: %w", err)
		}
		stats.CountByOrigin[origin] = count
	}
	if err := originRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate origin counts: %w", err)
	}

	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx,
		"SELECT AVG(duration_ms) FROM invocations").Scan(&avg); err != nil {
		return nil, fmt.Errorf("average duration: %w", err)
	}
	stats.AvgDurationMS = avg.Float64

	return stats, nil
}

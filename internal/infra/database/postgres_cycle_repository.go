package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/cycle"
)

// ErrRecordNotFound is returned when no cycle record matches a lookup.
var ErrRecordNotFound = fmt.Errorf("cycle record not found")

// PostgresCycleRepository stores finished cycle records in the
// 'capture_cycles' table:
//
//	CREATE TABLE capture_cycles (
//	    id          BIGSERIAL PRIMARY KEY,
//	    started_at  TIMESTAMPTZ NOT NULL,
//	    finished_at TIMESTAMPTZ NOT NULL,
//	    result      TEXT NOT NULL,
//	    detail      TEXT NOT NULL DEFAULT '',
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresCycleRepository struct {
	db *sql.DB
}

func NewPostgresCycleRepository(db *sql.DB) *PostgresCycleRepository {
	return &PostgresCycleRepository{db: db}
}

func (r *PostgresCycleRepository) Create(ctx context.Context, rec *cycle.Record) error {
	query := `INSERT INTO capture_cycles (started_at, finished_at, result, detail)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, rec.StartedAt, rec.FinishedAt, string(rec.Result), rec.Detail).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating cycle record: %w", err)
	}
	return nil
}

func (r *PostgresCycleRepository) Latest(ctx context.Context) (*cycle.Record, error) {
	query := `SELECT id, started_at, finished_at, result, detail, created_at
               FROM capture_cycles ORDER BY finished_at DESC LIMIT 1`

	rec := &cycle.Record{}
	err := r.db.QueryRowContext(ctx, query).
		Scan(&rec.ID, &rec.StartedAt, &rec.FinishedAt, &rec.Result, &rec.Detail, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("error getting latest cycle record: %w", err)
	}
	return rec, nil
}

func (r *PostgresCycleRepository) ListRecent(ctx context.Context, limit int) ([]*cycle.Record, error) {
	query := `SELECT id, started_at, finished_at, result, detail, created_at
               FROM capture_cycles ORDER BY finished_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing recent cycle records: %w", err)
	}
	defer rows.Close()

	records := make([]*cycle.Record, 0)
	for rows.Next() {
		rec := &cycle.Record{}
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.FinishedAt, &rec.Result, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning cycle record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cycle records: %w", err)
	}
	return records, nil
}

func (r *PostgresCycleRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM capture_cycles WHERE finished_at < $1`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error deleting old cycle records: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting deleted cycle records: %w", err)
	}
	return affected, nil
}

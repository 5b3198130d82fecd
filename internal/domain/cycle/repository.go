package cycle

import (
	"context"
	"time"
)

// Repository persists finished cycle records for display and
// operations. Journaling is best-effort: a repository error is logged
// by the caller and never fails the cycle that produced the record.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Latest(ctx context.Context) (*Record, error)
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

package database

import (
	"context"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/cycle"
)

// NopCycleRepository is the journal used when no DATABASE_URL is
// configured: writes vanish, reads find nothing.
type NopCycleRepository struct{}

func NewNopCycleRepository() *NopCycleRepository {
	return &NopCycleRepository{}
}

func (*NopCycleRepository) Create(context.Context, *cycle.Record) error {
	return nil
}

func (*NopCycleRepository) Latest(context.Context) (*cycle.Record, error) {
	return nil, ErrRecordNotFound
}

func (*NopCycleRepository) ListRecent(context.Context, int) ([]*cycle.Record, error) {
	return []*cycle.Record{}, nil
}

func (*NopCycleRepository) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

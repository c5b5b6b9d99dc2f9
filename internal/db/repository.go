package db

import (
	"context"
	"time"

	"tasasbot/internal/rates"
)

// SnapshotRepository keeps the most recent rate tables.
type SnapshotRepository interface {
	Init() error
	Close() error
	Save(ctx context.Context, t rates.Table, builtAt time.Time) error
	Latest(ctx context.Context) (t rates.Table, builtAt time.Time, found bool, err error)
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tasasbot/internal/db"
	"tasasbot/internal/rates"
)

type RepositorySQlite struct {
	db     *sql.DB
	logger *slog.Logger
}

var (
	_ db.SnapshotRepository = (*RepositorySQlite)(nil)
	_ rates.SnapshotStore   = (*RepositorySQlite)(nil)
)

func NewRepositorySQlite(conn *sql.DB, logger *slog.Logger) *RepositorySQlite {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepositorySQlite{db: conn, logger: logger.With(slog.String("component", "sqlite"))}
}

func (r *RepositorySQlite) Init() error {
	if _, err := r.db.Exec(createTable); err != nil {
		return fmt.Errorf("create %s: %w", tableSnapshot, err)
	}
	r.logger.Debug("snapshot table ready")
	return nil
}

func (r *RepositorySQlite) Close() error {
	r.logger.Debug("closing db connection")
	return r.db.Close()
}

// Save stores t and drops all but the most recent snapshots.
func (r *RepositorySQlite) Save(ctx context.Context, t rates.Table, builtAt time.Time) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.Warn("rollback failed", slog.Any("error", err))
		}
	}()

	if _, err := tx.ExecContext(ctx, insertSnapshot, builtAt.UnixNano(), string(payload)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, pruneSnapshots); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.logger.DebugContext(ctx, "snapshot saved", slog.Time("built_at", builtAt), slog.Int("routes", t.Routes()))
	return nil
}

func (r *RepositorySQlite) Latest(ctx context.Context) (rates.Table, time.Time, bool, error) {
	var (
		builtAt int64
		payload string
	)
	switch err := r.db.QueryRowContext(ctx, selectLatest).Scan(&builtAt, &payload); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, time.Time{}, false, nil
	case err != nil:
		return nil, time.Time{}, false, fmt.Errorf("select latest snapshot: %w", err)
	}

	t := make(rates.Table)
	if err := json.Unmarshal([]byte(payload), &t); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return t, time.Unix(0, builtAt), true, nil
}

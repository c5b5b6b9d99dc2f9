package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a built table is served before it is rebuilt.
const DefaultTTL = 5 * time.Minute

const refreshKey = "table"

var ErrRatesUnavailable = errors.New("rates unavailable")

// Fetcher returns the raw spreadsheet rows a Table is built from.
type Fetcher interface {
	FetchRows(ctx context.Context) ([][]string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([][]string, error)

func (f FetcherFunc) FetchRows(ctx context.Context) ([][]string, error) { return f(ctx) }

// SnapshotStore persists the last built table so a restart has something to
// fall back on while the spreadsheet is unreachable.
type SnapshotStore interface {
	Save(ctx context.Context, t Table, builtAt time.Time) error
	Latest(ctx context.Context) (t Table, builtAt time.Time, found bool, err error)
}

type snapshot struct {
	table   Table
	builtAt time.Time
}

// Status describes the table currently held by a Cache.
type Status struct {
	Ready   bool      `json:"ready"`
	BuiltAt time.Time `json:"built_at,omitzero"`
	Origins int       `json:"origins"`
	Routes  int       `json:"routes"`
	Stale   bool      `json:"stale"`
}

// Cache serves a Table and rebuilds it from its Fetcher once it is older
// than the TTL. Concurrent rebuilds collapse into a single fetch and the new
// table replaces the old one with one pointer swap.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	store   SnapshotStore
	logger  *slog.Logger

	group   singleflight.Group
	current atomic.Pointer[snapshot]
}

type CacheOption func(*Cache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

func WithSnapshotStore(s SnapshotStore) CacheOption {
	return func(c *Cache) { c.store = s }
}

func WithLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) { c.logger = l }
}

func NewCache(f Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		fetcher: f,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("component", "rates.Cache"))
	return c
}

// Table returns the current table, rebuilding it first when it is missing
// or expired. When a rebuild fails the previous table is returned; only when
// there is none does Table fail, with an error wrapping ErrRatesUnavailable.
func (c *Cache) Table(ctx context.Context) (Table, error) {
	if s := c.current.Load(); s != nil && c.fresh(s) {
		cacheHits.Inc()
		return s.table, nil
	}
	return c.refresh(ctx, false)
}

// Refresh rebuilds the table regardless of its age.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err := c.refresh(ctx, true)
	return err
}

// Restore loads the last persisted table, keeping its original build time so
// that it only counts as a fallback. It is a no-op without a store or when a
// table is already held.
func (c *Cache) Restore(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	t, builtAt, found, err := c.store.Latest(ctx)
	if err != nil {
		return fmt.Errorf("restore rate snapshot: %w", err)
	}
	if !found {
		return nil
	}
	if c.current.CompareAndSwap(nil, &snapshot{table: t, builtAt: builtAt}) {
		c.logger.Info("restored rate snapshot",
			slog.Time("built_at", builtAt),
			slog.Int("routes", t.Routes()))
	}
	return nil
}

func (c *Cache) Status() Status {
	s := c.current.Load()
	if s == nil {
		return Status{Stale: true}
	}
	return Status{
		Ready:   true,
		BuiltAt: s.builtAt,
		Origins: len(s.table),
		Routes:  s.table.Routes(),
		Stale:   !c.fresh(s),
	}
}

func (c *Cache) fresh(s *snapshot) bool {
	return c.now().Sub(s.builtAt) < c.ttl
}

func (c *Cache) refresh(ctx context.Context, force bool) (Table, error) {
	v, err, _ := c.group.Do(refreshKey, func() (any, error) {
		// A flight that finished just before this one may already have
		// produced a fresh table.
		if s := c.current.Load(); !force && s != nil && c.fresh(s) {
			return s.table, nil
		}
		return c.rebuild(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(Table), nil
}

func (c *Cache) rebuild(ctx context.Context) (Table, error) {
	prev := c.current.Load()

	start := time.Now()
	rows, err := c.fetcher.FetchRows(ctx)
	refreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		refreshTotal.WithLabelValues("error").Inc()
		if prev != nil {
			staleServed.Inc()
			c.logger.WarnContext(ctx, "rate refresh failed, serving previous table",
				slog.Any("error", err),
				slog.Time("built_at", prev.builtAt))
			return prev.table, nil
		}
		c.logger.ErrorContext(ctx, "rate refresh failed, no table to fall back on",
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrRatesUnavailable, err)
	}

	table := Build(rows)
	next := &snapshot{table: table, builtAt: c.now()}
	c.current.Store(next)

	refreshTotal.WithLabelValues("ok").Inc()
	tableRoutes.Set(float64(table.Routes()))
	c.logger.InfoContext(ctx, "rate table rebuilt",
		slog.Int("rows", len(rows)),
		slog.Int("origins", len(table)),
		slog.Int("routes", table.Routes()))

	if c.store != nil {
		if err := c.store.Save(ctx, table, next.builtAt); err != nil {
			c.logger.WarnContext(ctx, "saving rate snapshot failed", slog.Any("error", err))
		}
	}
	return table, nil
}

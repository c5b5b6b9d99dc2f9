package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refreshable is anything that can rebuild its data on demand.
type Refreshable interface {
	Refresh(ctx context.Context) error
}

// Refresher rebuilds a cache on a fixed interval so user requests rarely
// wait for the spreadsheet.
type Refresher struct {
	target   Refreshable
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewRefresher(target Refreshable, interval time.Duration, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		target:   target,
		interval: interval,
		timeout:  30 * time.Second,
		logger:   logger.With(slog.String("component", "service.Refresher")),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start refreshes once immediately and then on every tick until Stop.
func (r *Refresher) Start() {
	r.logger.Info("starting rate refresher", slog.Duration("interval", r.interval))
	go r.run()
}

// Stop ends the loop and waits for an in-flight refresh to return. It must
// only be called after Start.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		<-r.done
		r.logger.Info("stopped rate refresher")
	})
}

func (r *Refresher) run() {
	defer close(r.done)

	r.ProcessNow()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.ProcessNow()
		case <-r.stopCh:
			return
		}
	}
}

// ProcessNow runs a single refresh synchronously.
func (r *Refresher) ProcessNow() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.target.Refresh(ctx); err != nil {
		r.logger.Error("scheduled refresh failed", slog.Any("error", err))
	}
}

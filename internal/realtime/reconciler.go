package realtime

import (
	"context"
	"sync"

	"github.com/crestline-build/bidtrack-api/internal/config"
	"go.uber.org/zap"
)

// Applier applies one change event to externally owned state
type Applier interface {
	Apply(ctx context.Context, evt *ChangeEvent) error
}

// ApplierFunc adapts a plain function to the Applier interface
type ApplierFunc func(ctx context.Context, evt *ChangeEvent) error

// Apply implements Applier
func (f ApplierFunc) Apply(ctx context.Context, evt *ChangeEvent) error {
	return f(ctx, evt)
}

// Refresher reloads the full state for one table, used by the refresh
// strategy instead of applying row images directly
type Refresher interface {
	Refresh(ctx context.Context, table string) error
}

// Reconciler routes change events to per-table appliers and debounces
// downstream flush callbacks. With the direct strategy each event is
// applied immediately and the flush fires after a quiet window. With the
// refresh strategy events only schedule a debounced full reload of the
// affected table.
//
// Applier and refresher errors are logged and swallowed: a bad event
// must never take the event loop down.
type Reconciler struct {
	logger    *zap.Logger
	strategy  string
	debouncer *Debouncer
	refresher Refresher

	mu       sync.RWMutex
	appliers map[string][]Applier
	flushFns map[string][]func()
}

// NewReconciler creates a reconciler using the configured strategy and
// debounce window
func NewReconciler(cfg *config.RealtimeConfig, refresher Refresher, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		logger:    logger,
		strategy:  cfg.Strategy,
		debouncer: NewDebouncer(cfg.DebounceWindow()),
		refresher: refresher,
		appliers:  make(map[string][]Applier),
		flushFns:  make(map[string][]func()),
	}
}

// RegisterApplier adds an applier for one table's events
func (r *Reconciler) RegisterApplier(table string, a Applier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appliers[table] = append(r.appliers[table], a)
}

// OnFlush registers a callback that fires once a table's event burst has
// settled for the debounce window
func (r *Reconciler) OnFlush(table string, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushFns[table] = append(r.flushFns[table], fn)
}

// Handle processes one change event according to the active strategy
func (r *Reconciler) Handle(ctx context.Context, evt *ChangeEvent) {
	if r.strategy == config.RealtimeStrategyRefresh {
		r.debouncer.Trigger(evt.Table, func() {
			r.refresh(evt.Table)
			r.flush(evt.Table)
		})
		return
	}

	r.mu.RLock()
	appliers := r.appliers[evt.Table]
	r.mu.RUnlock()

	if len(appliers) == 0 {
		r.logger.Debug("change event for unwatched table",
			zap.String("table", evt.Table),
			zap.String("type", string(evt.Type)))
		return
	}

	for _, a := range appliers {
		if err := a.Apply(ctx, evt); err != nil {
			r.logger.Warn("failed to apply change event",
				zap.String("table", evt.Table),
				zap.String("type", string(evt.Type)),
				zap.Error(err))
		}
	}

	r.debouncer.Trigger(evt.Table, func() {
		r.flush(evt.Table)
	})
}

// HandlePayload parses a raw notification payload and handles it.
// Malformed payloads are logged and dropped.
func (r *Reconciler) HandlePayload(ctx context.Context, payload []byte) {
	evt, err := ParseEvent(payload)
	if err != nil {
		r.logger.Warn("dropping malformed change payload", zap.Error(err))
		return
	}
	r.Handle(ctx, evt)
}

// Resync reloads every watched table and fires its flush callbacks.
// The listener calls this after a reconnect, when notifications sent
// while disconnected are lost and applied row images may be stale.
func (r *Reconciler) Resync(ctx context.Context) {
	if r.refresher == nil {
		return
	}
	for _, table := range WatchedTables {
		if err := r.refresher.Refresh(ctx, table); err != nil {
			r.logger.Warn("table resync failed",
				zap.String("table", table),
				zap.Error(err))
			continue
		}
		r.flush(table)
	}
}

func (r *Reconciler) refresh(table string) {
	if r.refresher == nil {
		return
	}
	if err := r.refresher.Refresh(context.Background(), table); err != nil {
		r.logger.Warn("table refresh failed",
			zap.String("table", table),
			zap.Error(err))
	}
}

func (r *Reconciler) flush(table string) {
	r.mu.RLock()
	fns := r.flushFns[table]
	r.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// Close stops all pending debounce timers
func (r *Reconciler) Close() {
	r.debouncer.Close()
}

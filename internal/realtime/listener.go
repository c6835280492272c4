package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/config"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// pingInterval bounds how long a silent connection goes unchecked
const pingInterval = 90 * time.Second

// Listener consumes Postgres NOTIFY payloads from the configured channel
// and feeds them to the reconciler. Reconnects are handled by pq with
// backoff between the configured bounds; after a reconnect the listener
// asks the reconciler to flush every watched table because notifications
// may have been missed while disconnected.
type Listener struct {
	cfg    *config.RealtimeConfig
	dsn    string
	logger *zap.Logger
	rec    *Reconciler

	pl     *pq.Listener
	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener creates a listener over the given Postgres connection string
func NewListener(dsn string, cfg *config.RealtimeConfig, rec *Reconciler, logger *zap.Logger) *Listener {
	return &Listener{
		cfg:    cfg,
		dsn:    dsn,
		logger: logger,
		rec:    rec,
		done:   make(chan struct{}),
	}
}

// Start connects, subscribes to the channel, and launches the event loop
func (l *Listener) Start(ctx context.Context) error {
	l.pl = pq.NewListener(
		l.dsn,
		l.cfg.MinReconnectInterval(),
		l.cfg.MaxReconnectInterval(),
		func(ev pq.ListenerEventType, err error) {
			switch ev {
			case pq.ListenerEventConnected:
				l.logger.Info("realtime listener connected",
					zap.String("channel", l.cfg.Channel))
			case pq.ListenerEventReconnected:
				l.logger.Info("realtime listener reconnected",
					zap.String("channel", l.cfg.Channel))
			case pq.ListenerEventDisconnected:
				l.logger.Warn("realtime listener disconnected", zap.Error(err))
			case pq.ListenerEventConnectionAttemptFailed:
				l.logger.Warn("realtime listener connection attempt failed", zap.Error(err))
			}
		},
	)

	if err := l.pl.Listen(l.cfg.Channel); err != nil {
		l.pl.Close()
		return fmt.Errorf("failed to listen on channel %s: %w", l.cfg.Channel, err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	go l.loop(loopCtx)

	return nil
}

func (l *Listener) loop(ctx context.Context) {
	defer close(l.done)

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case n, ok := <-l.pl.Notify:
			if !ok {
				return
			}
			// A nil notification signals the connection was re-established;
			// anything sent while disconnected is lost, so reload every
			// watched table instead of trusting the mirror.
			if n == nil {
				l.logger.Info("realtime listener resumed after reconnect, resyncing watched tables")
				l.rec.Resync(ctx)
				continue
			}
			l.rec.HandlePayload(ctx, []byte(n.Extra))

		case <-ping.C:
			if err := l.pl.Ping(); err != nil {
				l.logger.Warn("realtime listener ping failed", zap.Error(err))
			}
		}
	}
}

// Close stops the event loop and tears down the connection
func (l *Listener) Close() error {
	if l.cancel != nil {
		l.cancel()
	}
	err := l.pl.Close()
	<-l.done
	return err
}

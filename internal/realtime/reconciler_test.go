package realtime

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func directConfig() *config.RealtimeConfig {
	return &config.RealtimeConfig{
		Strategy:       config.RealtimeStrategyDirect,
		DebounceMillis: 20,
	}
}

type fakeRefresher struct {
	calls  int32
	tables chan string
}

func (f *fakeRefresher) Refresh(_ context.Context, table string) error {
	atomic.AddInt32(&f.calls, 1)
	if f.tables != nil {
		f.tables <- table
	}
	return nil
}

func TestReconciler_DirectAppliesImmediately(t *testing.T) {
	rec := NewReconciler(directConfig(), nil, zap.NewNop())
	defer rec.Close()

	var applied int32
	rec.RegisterApplier(TableProjects, ApplierFunc(func(_ context.Context, _ *ChangeEvent) error {
		atomic.AddInt32(&applied, 1)
		return nil
	}))

	for i := 0; i < 3; i++ {
		rec.Handle(context.Background(), &ChangeEvent{Table: TableProjects, Type: EventInsert})
	}

	// Direct strategy applies every event, no debouncing on the apply path
	assert.Equal(t, int32(3), atomic.LoadInt32(&applied))
}

func TestReconciler_FlushFiresOnceAfterBurst(t *testing.T) {
	rec := NewReconciler(directConfig(), nil, zap.NewNop())
	defer rec.Close()

	rec.RegisterApplier(TableProjects, ApplierFunc(func(_ context.Context, _ *ChangeEvent) error {
		return nil
	}))
	var flushes int32
	rec.OnFlush(TableProjects, func() { atomic.AddInt32(&flushes, 1) })

	for i := 0; i < 5; i++ {
		rec.Handle(context.Background(), &ChangeEvent{Table: TableProjects, Type: EventUpdate})
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&flushes) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&flushes))
}

func TestReconciler_ApplierErrorIsSwallowed(t *testing.T) {
	rec := NewReconciler(directConfig(), nil, zap.NewNop())
	defer rec.Close()

	rec.RegisterApplier(TableVendors, ApplierFunc(func(_ context.Context, _ *ChangeEvent) error {
		return assert.AnError
	}))

	// Must not panic; the event loop survives bad appliers
	rec.Handle(context.Background(), &ChangeEvent{Table: TableVendors, Type: EventInsert})
}

func TestReconciler_RefreshStrategySchedulesReload(t *testing.T) {
	cfg := &config.RealtimeConfig{
		Strategy:       config.RealtimeStrategyRefresh,
		DebounceMillis: 20,
	}
	refresher := &fakeRefresher{}
	rec := NewReconciler(cfg, refresher, zap.NewNop())
	defer rec.Close()

	var applied int32
	rec.RegisterApplier(TableProjects, ApplierFunc(func(_ context.Context, _ *ChangeEvent) error {
		atomic.AddInt32(&applied, 1)
		return nil
	}))

	for i := 0; i < 4; i++ {
		rec.Handle(context.Background(), &ChangeEvent{Table: TableProjects, Type: EventUpdate})
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&refresher.calls) == 1
	}, time.Second, 5*time.Millisecond)

	// Refresh strategy never applies row images directly
	assert.Equal(t, int32(0), atomic.LoadInt32(&applied))
}

func TestReconciler_HandlePayloadDropsMalformed(t *testing.T) {
	rec := NewReconciler(directConfig(), nil, zap.NewNop())
	defer rec.Close()

	var applied int32
	rec.RegisterApplier(TableProjects, ApplierFunc(func(_ context.Context, _ *ChangeEvent) error {
		atomic.AddInt32(&applied, 1)
		return nil
	}))

	rec.HandlePayload(context.Background(), []byte(`not json at all`))
	rec.HandlePayload(context.Background(), []byte(`{"type":"INSERT"}`))
	rec.HandlePayload(context.Background(), []byte(`{"table":"projects","type":"TRUNCATE"}`))
	assert.Equal(t, int32(0), atomic.LoadInt32(&applied))

	rec.HandlePayload(context.Background(), []byte(`{"table":"projects","type":"INSERT","new":{}}`))
	assert.Equal(t, int32(1), atomic.LoadInt32(&applied))
}

func TestReconciler_ResyncReloadsEveryWatchedTable(t *testing.T) {
	refresher := &fakeRefresher{tables: make(chan string, len(WatchedTables))}
	rec := NewReconciler(directConfig(), refresher, zap.NewNop())
	defer rec.Close()

	var flushes int32
	rec.OnFlush(TableProjects, func() { atomic.AddInt32(&flushes, 1) })

	rec.Resync(context.Background())

	assert.Equal(t, int32(len(WatchedTables)), atomic.LoadInt32(&refresher.calls))
	close(refresher.tables)
	var tables []string
	for table := range refresher.tables {
		tables = append(tables, table)
	}
	assert.Equal(t, WatchedTables, tables)

	// Flush callbacks fire so consumers learn about the reload
	assert.Equal(t, int32(1), atomic.LoadInt32(&flushes))
}

func TestReconciler_ResyncWithoutRefresherIsNoop(t *testing.T) {
	rec := NewReconciler(directConfig(), nil, zap.NewNop())
	defer rec.Close()

	rec.Resync(context.Background())
}

func TestParseEvent(t *testing.T) {
	evt, err := ParseEvent([]byte(`{"table":"vendors","type":"DELETE","old":{"id":"x"}}`))
	assert.NoError(t, err)
	assert.Equal(t, TableVendors, evt.Table)
	assert.Equal(t, EventDelete, evt.Type)

	_, err = ParseEvent([]byte(`{`))
	assert.Error(t, err)

	_, err = ParseEvent([]byte(`{"table":"","type":"INSERT"}`))
	assert.Error(t, err)
}

package realtime

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Close()

	var fired int32
	for i := 0; i < 10; i++ {
		d.Trigger("projects", func() { atomic.AddInt32(&fired, 1) })
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 5*time.Millisecond)

	// No further firings after the burst settled
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Close()

	var projects, vendors int32
	d.Trigger("projects", func() { atomic.AddInt32(&projects, 1) })
	d.Trigger("vendors", func() { atomic.AddInt32(&vendors, 1) })

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&projects) == 1 && atomic.LoadInt32(&vendors) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Close()

	var fired int32
	d.Trigger("projects", func() { atomic.AddInt32(&fired, 1) })
	d.Cancel("projects")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestDebouncer_CloseStopsPendingTimers(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired int32
	d.Trigger("projects", func() { atomic.AddInt32(&fired, 1) })
	d.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))

	// Triggers after close are ignored
	d.Trigger("projects", func() { atomic.AddInt32(&fired, 1) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycleFromFlags(t *testing.T) {
	assert.Equal(t, CycleActive, CycleFromFlags(false, false))
	assert.Equal(t, CycleOnHold, CycleFromFlags(false, true))
	assert.Equal(t, CycleArchived, CycleFromFlags(true, false))
	// Archived wins when both legacy flags are set
	assert.Equal(t, CycleArchived, CycleFromFlags(true, true))
}

func TestCycleFlagsRoundTrip(t *testing.T) {
	for _, c := range []ActivityCycle{CycleActive, CycleOnHold, CycleArchived} {
		archived, onHold := c.Flags()
		assert.Equal(t, c, CycleFromFlags(archived, onHold), "cycle %s", c)
	}
}

func TestActivityCycleIsValid(t *testing.T) {
	assert.True(t, CycleActive.IsValid())
	assert.True(t, CycleOnHold.IsValid())
	assert.True(t, CycleArchived.IsValid())
	assert.False(t, ActivityCycle("paused").IsValid())
	assert.False(t, ActivityCycle("").IsValid())
}

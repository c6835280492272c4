package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveCurrentPhase_EmptyDefaults(t *testing.T) {
	phaseType, status := ResolveCurrentPhase(nil)
	assert.Equal(t, PhaseQuoteConfirmed, phaseType)
	assert.Equal(t, PhaseStatusPending, status)

	phaseType, status = ResolveCurrentPhase([]Phase{})
	assert.Equal(t, PhaseQuoteConfirmed, phaseType)
	assert.Equal(t, PhaseStatusPending, status)
}

func TestResolveCurrentPhase_InProgressWins(t *testing.T) {
	phases := []Phase{
		{PhaseType: PhaseBuyNumber, Status: PhaseStatusInProgress},
		{PhaseType: PhasePO, Status: PhaseStatusPending},
	}

	phaseType, status := ResolveCurrentPhase(phases)
	assert.Equal(t, PhaseBuyNumber, phaseType)
	assert.Equal(t, PhaseStatusInProgress, status)
}

func TestResolveCurrentPhase_MostAdvancedCompleted(t *testing.T) {
	phases := []Phase{
		{PhaseType: PhasePO, Status: PhaseStatusCompleted},
		{PhaseType: PhaseSubmittals, Status: PhaseStatusPending},
	}

	phaseType, status := ResolveCurrentPhase(phases)
	assert.Equal(t, PhasePO, phaseType)
	assert.Equal(t, PhaseStatusCompleted, status)
}

func TestResolveCurrentPhase_StatusPriorityOverOrder(t *testing.T) {
	// A later completed phase beats an earlier received one, but any
	// in-progress phase beats both.
	phases := []Phase{
		{PhaseType: PhaseQuoteConfirmed, Status: PhaseStatusReceived},
		{PhaseType: PhaseCloseouts, Status: PhaseStatusCompleted},
	}
	phaseType, status := ResolveCurrentPhase(phases)
	assert.Equal(t, PhaseCloseouts, phaseType)
	assert.Equal(t, PhaseStatusCompleted, status)

	phases = append(phases, Phase{PhaseType: PhaseSubmittals, Status: PhaseStatusInProgress})
	phaseType, status = ResolveCurrentPhase(phases)
	assert.Equal(t, PhaseSubmittals, phaseType)
	assert.Equal(t, PhaseStatusInProgress, status)
}

func TestResolveCurrentPhase_SameStatusPicksLatestStage(t *testing.T) {
	phases := []Phase{
		{PhaseType: PhaseQuoteConfirmed, Status: PhaseStatusCompleted},
		{PhaseType: PhaseBuyNumber, Status: PhaseStatusCompleted},
		{PhaseType: PhasePO, Status: PhaseStatusCompleted},
	}

	phaseType, status := ResolveCurrentPhase(phases)
	assert.Equal(t, PhasePO, phaseType)
	assert.Equal(t, PhaseStatusCompleted, status)
}

func TestResolveCurrentPhase_UnknownStatusFallsBack(t *testing.T) {
	phases := []Phase{
		{PhaseType: PhaseSubmittals, Status: PhaseStatus("rejected")},
	}

	phaseType, status := ResolveCurrentPhase(phases)
	assert.Equal(t, PhaseSubmittals, phaseType)
	assert.Equal(t, PhaseStatus("rejected"), status)
}

func TestResolveCurrentPhase_DuplicateTypePrefersNewest(t *testing.T) {
	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	phases := []Phase{
		{BaseModel: BaseModel{UpdatedAt: older}, PhaseType: PhasePO, Status: PhaseStatusCompleted},
		{BaseModel: BaseModel{UpdatedAt: newer}, PhaseType: PhasePO, Status: PhaseStatusInProgress},
	}

	phaseType, status := ResolveCurrentPhase(phases)
	assert.Equal(t, PhasePO, phaseType)
	assert.Equal(t, PhaseStatusInProgress, status)
}

func TestPhaseTypeIndex(t *testing.T) {
	assert.Equal(t, 0, PhaseQuoteConfirmed.Index())
	assert.Equal(t, 1, PhaseBuyNumber.Index())
	assert.Equal(t, 6, PhaseCloseouts.Index())
	assert.Equal(t, -1, PhaseType("bogus").Index())
}

func TestSyntheticFollowUpDate(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		phaseType PhaseType
		wantDays  int
	}{
		{PhaseQuoteConfirmed, 1},
		{PhaseBuyNumber, 1},
		{PhasePO, 4},
		{PhaseSubmittals, 7},
		{PhaseRevisedPlans, 10},
		{PhaseEquipmentRelease, 13},
		{PhaseCloseouts, 16},
	}

	for _, tt := range tests {
		t.Run(string(tt.phaseType), func(t *testing.T) {
			got := SyntheticFollowUpDate(tt.phaseType, today)
			assert.Equal(t, today.AddDate(0, 0, tt.wantDays), got)
		})
	}
}

func TestSyntheticFollowUpDate_UnknownTypeDefaultsToNextDay(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := SyntheticFollowUpDate(PhaseType("bogus"), today)
	assert.Equal(t, today.AddDate(0, 0, 1), got)
}

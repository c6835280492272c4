package mapper

import (
	"testing"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func floatPtr(f float64) *float64 { return &f }

func TestToNormalized_SplitsPopulatedPhases(t *testing.T) {
	relID := uuid.New()
	legacy := &domain.LegacyBidVendor{
		ID:            relID,
		ProjectID:     uuid.New(),
		VendorID:      uuid.New(),
		CurrentPhase:  domain.PhasePO,
		CurrentStatus: domain.PhaseStatusInProgress,

		QuoteConfirmedCompletedDate: datePtr(2026, 1, 10),
		QuoteConfirmedNotes:         "confirmed by phone",
		BuyNumberCompletedDate:      datePtr(2026, 1, 20),
		PORequestedDate:             datePtr(2026, 2, 1),
	}

	n := ToNormalized(legacy)

	require.Len(t, n.Phases, 3)
	byType := map[domain.PhaseType]domain.Phase{}
	for _, p := range n.Phases {
		assert.Equal(t, relID, p.ProjectVendorID)
		byType[p.PhaseType] = p
	}

	assert.Equal(t, domain.PhaseStatusCompleted, byType[domain.PhaseQuoteConfirmed].Status)
	assert.Equal(t, "confirmed by phone", byType[domain.PhaseQuoteConfirmed].Notes)
	assert.Equal(t, domain.PhaseStatusCompleted, byType[domain.PhaseBuyNumber].Status)
	assert.Equal(t, domain.PhaseStatusInProgress, byType[domain.PhasePO].Status)
	assert.Nil(t, n.Financial)
	assert.Nil(t, n.EstResponse)
}

func TestToNormalized_EmptyRecordProducesNoRows(t *testing.T) {
	legacy := &domain.LegacyBidVendor{
		ID:            uuid.New(),
		ProjectID:     uuid.New(),
		VendorID:      uuid.New(),
		CurrentPhase:  domain.PhaseQuoteConfirmed,
		CurrentStatus: domain.PhaseStatusPending,
	}

	n := ToNormalized(legacy)
	assert.Empty(t, n.Phases)
	assert.Nil(t, n.Financial)
	assert.Nil(t, n.EstResponse)
}

func TestToNormalized_InvalidStatusDegradesToPending(t *testing.T) {
	legacy := &domain.LegacyBidVendor{
		ID:            uuid.New(),
		CurrentPhase:  domain.PhaseSubmittals,
		CurrentStatus: domain.PhaseStatus("rejected"),
	}

	n := ToNormalized(legacy)
	require.Len(t, n.Phases, 1)
	assert.Equal(t, domain.PhaseSubmittals, n.Phases[0].PhaseType)
	assert.Equal(t, domain.PhaseStatusPending, n.Phases[0].Status)
}

func TestLegacyRoundTrip(t *testing.T) {
	relID := uuid.New()
	userID := uuid.New()
	assignedAt := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	followUp := datePtr(2026, 2, 10)

	original := domain.LegacyBidVendor{
		ID:               relID,
		ProjectID:        uuid.New(),
		VendorID:         uuid.New(),
		AssignedUserID:   &userID,
		AssignedUserName: "Sam Estimator",
		AssignedDate:     &assignedAt,
		IsPriority:       true,

		CurrentPhase:  domain.PhasePO,
		CurrentStatus: domain.PhaseStatusInProgress,
		FollowUpDate:  followUp,

		CostEstimate: floatPtr(125000),
		FinalQuote:   floatPtr(118500.50),
		BuyNumber:    "BN-2231",
		PONumber:     "PO-88410",

		EstStatus:       domain.EstResponseWillBid,
		EstFollowUpDate: datePtr(2026, 1, 15),
		EstNotes:        "waiting on revised drawings",

		QuoteConfirmedCompletedDate: datePtr(2026, 1, 10),
		QuoteConfirmedNotes:         "confirmed by phone",
		BuyNumberCompletedDate:      datePtr(2026, 1, 20),
		PORequestedDate:             datePtr(2026, 2, 1),
		POFollowUpDate:              followUp,
		PONotes:                     "expediting",
	}

	n := ToNormalized(&original)
	require.NotNil(t, n.Financial)
	require.NotNil(t, n.EstResponse)

	restored := ToLegacyAt(&n.Relationship, n.Phases, n.Financial, []domain.EstResponse{*n.EstResponse}, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, original, restored)
}

func TestToLegacyAt_EmptyPhasesSynthesizesFollowUp(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	rel := &domain.ProjectVendor{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ProjectID: uuid.New(),
		VendorID:  uuid.New(),
	}

	legacy := ToLegacyAt(rel, nil, nil, nil, today)

	assert.Equal(t, domain.PhaseQuoteConfirmed, legacy.CurrentPhase)
	assert.Equal(t, domain.PhaseStatusPending, legacy.CurrentStatus)
	require.NotNil(t, legacy.FollowUpDate)
	assert.Equal(t, today.AddDate(0, 0, 1), *legacy.FollowUpDate)
}

func TestToLegacyAt_VendorDenormalization(t *testing.T) {
	rel := &domain.ProjectVendor{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Vendor: &domain.Vendor{
			CompanyName: "Apex Mechanical",
			Specialty:   "HVAC",
		},
	}

	legacy := ToLegacyAt(rel, nil, nil, nil, time.Now())
	assert.Equal(t, "Apex Mechanical", legacy.VendorName)
	assert.Equal(t, "HVAC", legacy.Specialty)
}

func TestToLegacyAt_LatestEstResponseWins(t *testing.T) {
	rel := &domain.ProjectVendor{BaseModel: domain.BaseModel{ID: uuid.New()}}
	responses := []domain.EstResponse{
		{
			BaseModel: domain.BaseModel{CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			Status:    domain.EstResponseNoResponse,
			Notes:     "left voicemail",
		},
		{
			BaseModel: domain.BaseModel{CreatedAt: time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)},
			Status:    domain.EstResponseBidReceived,
			Notes:     "bid in hand",
		},
	}

	legacy := ToLegacyAt(rel, nil, nil, responses, time.Now())
	assert.Equal(t, domain.EstResponseBidReceived, legacy.EstStatus)
	assert.Equal(t, "bid in hand", legacy.EstNotes)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"github.com/crestline-build/bidtrack-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newBidVendorService(t *testing.T) (*service.BidVendorService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewBidVendorService(
		repository.NewProjectVendorRepository(db),
		repository.NewVendorRepository(db),
		repository.NewProjectRepository(db),
		repository.NewPhaseRepository(db),
		repository.NewFinancialRepository(db),
		repository.NewEstResponseRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestBidVendorService_AssignVendorCreatesGraph(t *testing.T) {
	svc, db := newBidVendorService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex Mechanical")

	cost := 125000.0
	legacy, err := svc.AssignVendor(ctx, project.ID, &domain.AssignVendorRequest{
		VendorID: vendor.ID,
		Phases: []domain.CreatePhaseRequest{
			{PhaseType: "quote_confirmed", Status: "completed"},
			{PhaseType: "buy_number", Status: "in_progress"},
		},
		CostEstimate: &cost,
		BuyNumber:    "BN-42",
	})
	require.NoError(t, err)
	assert.Equal(t, project.ID, legacy.ProjectID)
	assert.Equal(t, vendor.ID, legacy.VendorID)
	assert.Equal(t, "Apex Mechanical", legacy.VendorName)
	assert.Equal(t, "buy_number", string(legacy.CurrentPhase))
	assert.Equal(t, "BN-42", legacy.BuyNumber)

	var phases []domain.Phase
	require.NoError(t, db.Where("project_vendor_id = ?", legacy.ID).Find(&phases).Error)
	assert.Len(t, phases, 2)

	var financial domain.ProjectFinancial
	require.NoError(t, db.First(&financial, "project_vendor_id = ?", legacy.ID).Error)
	require.NotNil(t, financial.CostEstimate)
	assert.Equal(t, cost, *financial.CostEstimate)
}

func TestBidVendorService_AssignVendorIsReenterable(t *testing.T) {
	svc, db := newBidVendorService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex")

	req := &domain.AssignVendorRequest{
		VendorID: vendor.ID,
		Phases: []domain.CreatePhaseRequest{
			{PhaseType: "quote_confirmed", Status: "completed"},
		},
		BuyNumber: "BN-1",
	}

	first, err := svc.AssignVendor(ctx, project.ID, req)
	require.NoError(t, err)

	// Re-submitting the same request reuses the relationship and skips
	// rows that already exist
	second, err := svc.AssignVendor(ctx, project.ID, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var relCount, phaseCount, finCount int64
	require.NoError(t, db.Model(&domain.ProjectVendor{}).Where("project_id = ?", project.ID).Count(&relCount).Error)
	require.NoError(t, db.Model(&domain.Phase{}).Where("project_vendor_id = ?", first.ID).Count(&phaseCount).Error)
	require.NoError(t, db.Model(&domain.ProjectFinancial{}).Where("project_vendor_id = ?", first.ID).Count(&finCount).Error)
	assert.Equal(t, int64(1), relCount)
	assert.Equal(t, int64(1), phaseCount)
	assert.Equal(t, int64(1), finCount)
}

func TestBidVendorService_AssignVendorMissingProject(t *testing.T) {
	svc, db := newBidVendorService(t)
	vendor := testutil.CreateTestVendor(t, db, "Apex")

	_, err := svc.AssignVendor(context.Background(), uuid.New(), &domain.AssignVendorRequest{VendorID: vendor.ID})
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestBidVendorService_UpdatePhaseStampsCompletedDate(t *testing.T) {
	svc, db := newBidVendorService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)

	status := "completed"
	dto, err := svc.UpdatePhase(ctx, rel.ID, domain.PhasePO, &domain.UpdatePhaseRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseStatusCompleted, dto.Status)
	require.NotNil(t, dto.CompletedDate)
	assert.WithinDuration(t, time.Now().UTC(), *dto.CompletedDate, time.Minute)
}

func TestBidVendorService_UpdatePhaseRejectsUnknownType(t *testing.T) {
	svc, db := newBidVendorService(t)

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)

	status := "completed"
	_, err := svc.UpdatePhase(context.Background(), rel.ID, domain.PhaseType("demolition"), &domain.UpdatePhaseRequest{Status: &status})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestBidVendorService_SaveLegacyDeduplicatesEstResponse(t *testing.T) {
	svc, db := newBidVendorService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)

	legacy := &domain.LegacyBidVendor{
		CurrentPhase:  domain.PhaseQuoteConfirmed,
		CurrentStatus: domain.PhaseStatusInProgress,
		EstStatus:     domain.EstResponseWillBid,
		EstNotes:      "will submit Friday",
	}

	_, err := svc.SaveLegacy(ctx, rel.ID, legacy)
	require.NoError(t, err)
	_, err = svc.SaveLegacy(ctx, rel.ID, legacy)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.EstResponse{}).Where("project_vendor_id = ?", rel.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "identical saves must not append duplicate responses")

	legacy.EstStatus = domain.EstResponseBidReceived
	_, err = svc.SaveLegacy(ctx, rel.ID, legacy)
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.EstResponse{}).Where("project_vendor_id = ?", rel.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestBidVendorService_UnassignDeletesLeafFirst(t *testing.T) {
	svc, db := newBidVendorService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)
	require.NoError(t, db.Create(&domain.Phase{ProjectVendorID: rel.ID, PhaseType: domain.PhasePO, Status: domain.PhaseStatusPending}).Error)
	require.NoError(t, db.Create(&domain.ProjectFinancial{ProjectVendorID: rel.ID, BuyNumber: "BN-1"}).Error)
	require.NoError(t, db.Create(&domain.EstResponse{ProjectVendorID: rel.ID, Status: domain.EstResponseWillBid}).Error)

	require.NoError(t, svc.Unassign(ctx, rel.ID))

	for _, model := range []interface{}{&domain.Phase{}, &domain.ProjectFinancial{}, &domain.EstResponse{}} {
		var count int64
		require.NoError(t, db.Model(model).Where("project_vendor_id = ?", rel.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
	var relCount int64
	require.NoError(t, db.Model(&domain.ProjectVendor{}).Where("id = ?", rel.ID).Count(&relCount).Error)
	assert.Equal(t, int64(0), relCount)

	assert.ErrorIs(t, svc.Unassign(ctx, rel.ID), service.ErrRelationshipNotFound)
}

func TestBidVendorService_AddEstResponseAppends(t *testing.T) {
	svc, db := newBidVendorService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)

	require.NoError(t, svc.AddEstResponse(ctx, rel.ID, &domain.UpsertEstResponseRequest{Status: "declined"}))
	require.NoError(t, svc.AddEstResponse(ctx, rel.ID, &domain.UpsertEstResponseRequest{Status: "will_bid"}))

	var count int64
	require.NoError(t, db.Model(&domain.EstResponse{}).Where("project_vendor_id = ?", rel.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

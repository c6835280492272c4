package service_test

import (
	"context"
	"testing"

	"github.com/crestline-build/bidtrack-api/internal/auth"
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

func newProjectService(t *testing.T) (*service.ProjectService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewProjectVendorRepository(db),
		repository.NewPhaseRepository(db),
		repository.NewFinancialRepository(db),
		repository.NewEstResponseRepository(db),
		repository.NewNoteRepository(db),
		repository.NewProjectDataRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestProjectService_CreateDefaults(t *testing.T) {
	svc, _ := newProjectService(t)

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Jordan Smith",
	})

	dto, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: "North Tower"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusBidding, dto.Status)
	assert.Equal(t, domain.DepartmentEstimating, dto.Department)
	assert.Equal(t, domain.CycleActive, dto.EstimatingCycle)
	assert.Equal(t, domain.CycleActive, dto.APMCycle)
	assert.False(t, dto.Archived)
	assert.False(t, dto.OnHold)
	assert.Equal(t, "Jordan Smith", dto.CreatedByName)
}

func TestProjectService_UpdateCycleFieldsWinOverLegacyPair(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")

	// When a cycle field is present the boolean pair is ignored entirely
	dto, err := svc.Update(ctx, project.ID, &domain.UpdateProjectRequest{
		EstimatingCycle: strPtr("on_hold"),
		Archived:        boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CycleOnHold, dto.EstimatingCycle)
	assert.False(t, dto.Archived)
	assert.True(t, dto.OnHold)
}

func TestProjectService_UpdateLegacyPairMapsToDepartmentCycle(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")

	dto, err := svc.Update(ctx, project.ID, &domain.UpdateProjectRequest{OnHold: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, domain.CycleOnHold, dto.EstimatingCycle)
	assert.Equal(t, domain.CycleActive, dto.APMCycle)

	// Archived takes precedence when both flags end up set
	dto, err = svc.Update(ctx, project.ID, &domain.UpdateProjectRequest{Archived: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, domain.CycleArchived, dto.EstimatingCycle)
	assert.True(t, dto.Archived)
	assert.False(t, dto.OnHold)
}

func TestProjectService_UpdateLegacyPairFollowsDepartment(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")
	_, err := svc.Update(ctx, project.ID, &domain.UpdateProjectRequest{Department: strPtr("apm")})
	require.NoError(t, err)

	dto, err := svc.Update(ctx, project.ID, &domain.UpdateProjectRequest{Archived: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, domain.CycleArchived, dto.APMCycle)
	assert.Equal(t, domain.CycleActive, dto.EstimatingCycle)
}

func TestProjectService_DeleteCascades(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "Doomed")
	vendor := testutil.CreateTestVendor(t, db, "Apex")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)
	require.NoError(t, db.Create(&domain.Phase{ProjectVendorID: rel.ID, PhaseType: domain.PhasePO, Status: domain.PhaseStatusPending}).Error)
	require.NoError(t, db.Create(&domain.ProjectFinancial{ProjectVendorID: rel.ID, BuyNumber: "BN-1"}).Error)
	require.NoError(t, db.Create(&domain.EstResponse{ProjectVendorID: rel.ID, Status: domain.EstResponseWillBid}).Error)
	require.NoError(t, db.Create(&domain.ProjectNote{ProjectID: project.ID, Body: "call back Monday"}).Error)

	require.NoError(t, svc.Delete(ctx, project.ID))

	for _, check := range []struct {
		model interface{}
		where string
		arg   uuid.UUID
	}{
		{&domain.EstResponse{}, "project_vendor_id = ?", rel.ID},
		{&domain.ProjectFinancial{}, "project_vendor_id = ?", rel.ID},
		{&domain.Phase{}, "project_vendor_id = ?", rel.ID},
		{&domain.ProjectVendor{}, "project_id = ?", project.ID},
		{&domain.ProjectNote{}, "project_id = ?", project.ID},
		{&domain.Project{}, "id = ?", project.ID},
	} {
		var count int64
		require.NoError(t, db.Model(check.model).Where(check.where, check.arg).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}

	// Untouched vendor survives the cascade
	var vendorCount int64
	require.NoError(t, db.Model(&domain.Vendor{}).Where("id = ?", vendor.ID).Count(&vendorCount).Error)
	assert.Equal(t, int64(1), vendorCount)

	assert.ErrorIs(t, svc.Delete(ctx, project.ID), service.ErrProjectNotFound)
}

func TestProjectService_GetByIDIncludesBidVendors(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex Mechanical")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)
	require.NoError(t, db.Create(&domain.Phase{
		ProjectVendorID: rel.ID,
		PhaseType:       domain.PhaseBuyNumber,
		Status:          domain.PhaseStatusInProgress,
	}).Error)

	dto, err := svc.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dto.VendorCount)
	require.Len(t, dto.BidVendors, 1)
	assert.Equal(t, "Apex Mechanical", dto.BidVendors[0].VendorName)
	assert.Equal(t, domain.PhaseBuyNumber, dto.BidVendors[0].CurrentPhase)
}

func TestProjectService_GetMissing(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

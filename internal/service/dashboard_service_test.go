package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/realtime"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"github.com/crestline-build/bidtrack-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardService_SummaryCountsFromStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := realtime.NewStore(nil, zap.NewNop())

	store.Projects.Insert(domain.Project{
		BaseModel:       domain.BaseModel{ID: uuid.New()},
		Name:            "North Tower",
		Status:          domain.ProjectStatusBidding,
		Department:      domain.DepartmentEstimating,
		EstimatingCycle: domain.CycleActive,
		APMCycle:        domain.CycleActive,
	})
	store.Projects.Insert(domain.Project{
		BaseModel:       domain.BaseModel{ID: uuid.New()},
		Name:            "Old Depot",
		Status:          domain.ProjectStatusCompleted,
		Department:      domain.DepartmentEstimating,
		EstimatingCycle: domain.CycleArchived,
		APMCycle:        domain.CycleActive,
	})
	store.Vendors.Insert(domain.Vendor{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		CompanyName: "Apex Mechanical",
		IsPriority:  true,
	})
	store.Vendors.Insert(domain.Vendor{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		CompanyName: "Summit Electric",
	})
	store.Relationships.Insert(domain.ProjectVendor{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ProjectID: uuid.New(),
		VendorID:  uuid.New(),
	})

	svc := service.NewDashboardService(store, repository.NewPhaseRepository(db), zap.NewNop())
	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ProjectCount)
	assert.Equal(t, 1, summary.ActiveProjectCount)
	assert.Equal(t, 1, summary.ArchivedProjectCount)
	assert.Equal(t, 2, summary.VendorCount)
	assert.Equal(t, 1, summary.PriorityVendorCount)
	assert.Equal(t, 1, summary.AssignmentCount)
	assert.Equal(t, 1, summary.ProjectsByStatus[domain.ProjectStatusBidding])
	assert.Equal(t, 1, summary.ProjectsByStatus[domain.ProjectStatusCompleted])
	assert.Empty(t, summary.DueFollowUps)
}

func TestDashboardService_DueFollowUpsResolveNamesFromStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := realtime.NewStore(nil, zap.NewNop())

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex Mechanical")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)

	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	phase := &domain.Phase{
		ProjectVendorID: rel.ID,
		PhaseType:       domain.PhasePO,
		Status:          domain.PhaseStatusPending,
		FollowUpDate:    &yesterday,
	}
	require.NoError(t, db.Create(phase).Error)

	store.Projects.Insert(*project)
	store.Vendors.Insert(*vendor)
	store.Relationships.Insert(*rel)

	svc := service.NewDashboardService(store, repository.NewPhaseRepository(db), zap.NewNop())
	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.DueFollowUps, 1)
	due := summary.DueFollowUps[0]
	assert.Equal(t, phase.ID, due.PhaseID)
	assert.Equal(t, domain.PhasePO, due.PhaseType)
	assert.Equal(t, "North Tower", due.ProjectName)
	assert.Equal(t, "Apex Mechanical", due.VendorName)
	require.NotNil(t, due.ProjectID)
	assert.Equal(t, project.ID, *due.ProjectID)
}

func TestDashboardService_DueFollowUpSurvivesMissingRelationship(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := realtime.NewStore(nil, zap.NewNop())

	project := testutil.CreateTestProject(t, db, "North Tower")
	vendor := testutil.CreateTestVendor(t, db, "Apex")
	rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)

	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	require.NoError(t, db.Create(&domain.Phase{
		ProjectVendorID: rel.ID,
		PhaseType:       domain.PhaseSubmittals,
		Status:          domain.PhaseStatusRequested,
		FollowUpDate:    &yesterday,
	}).Error)

	// Store never saw the relationship; names stay empty
	svc := service.NewDashboardService(store, repository.NewPhaseRepository(db), zap.NewNop())
	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.DueFollowUps, 1)
	assert.Empty(t, summary.DueFollowUps[0].ProjectName)
	assert.Nil(t, summary.DueFollowUps[0].ProjectID)
}

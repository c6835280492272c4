package repository_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// queryCounter counts SQL statements issued through the session it is
// attached to
type queryCounter struct {
	gormlogger.Interface
	count int64
}

func (c *queryCounter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	atomic.AddInt64(&c.count, 1)
	c.Interface.Trace(ctx, begin, fc, err)
}

func (c *queryCounter) Count() int64 {
	return atomic.LoadInt64(&c.count)
}

func seedProjectWithVendors(t *testing.T, db *gorm.DB, vendorCount int) *domain.Project {
	t.Helper()
	project := testutil.CreateTestProject(t, db, "Project "+time.Now().String())
	for i := 0; i < vendorCount; i++ {
		vendor := testutil.CreateTestVendor(t, db, "Vendor")
		rel := testutil.CreateTestAssignment(t, db, project.ID, vendor.ID)
		require.NoError(t, db.Create(&domain.Phase{
			ProjectVendorID: rel.ID,
			PhaseType:       domain.PhaseQuoteConfirmed,
			Status:          domain.PhaseStatusCompleted,
		}).Error)
		require.NoError(t, db.Create(&domain.ProjectFinancial{
			ProjectVendorID: rel.ID,
			BuyNumber:       "BN-1",
		}).Error)
		require.NoError(t, db.Create(&domain.EstResponse{
			ProjectVendorID: rel.ID,
			Status:          domain.EstResponseWillBid,
		}).Error)
	}
	return project
}

func TestProjectDataRepository_ListWithVendorData(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seedProjectWithVendors(t, db, 2)
	seedProjectWithVendors(t, db, 1)
	testutil.CreateTestProject(t, db, "Empty Project")

	repo := repository.NewProjectDataRepository(db)
	data, total, err := repo.ListWithVendorData(context.Background(), 1, 20, &repository.ProjectFilters{}, repository.DefaultSortConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, data, 3)

	counts := map[string]int{}
	for _, pd := range data {
		require.NotNil(t, pd.Vendors, "vendor list must never be nil")
		counts[pd.Project.Name] = len(pd.Vendors)
		for _, vd := range pd.Vendors {
			assert.Equal(t, pd.Project.ID, vd.Relationship.ProjectID)
			require.NotNil(t, vd.Relationship.Vendor, "vendor must be hydrated")
			assert.Len(t, vd.Phases, 1)
			require.NotNil(t, vd.Financial)
			assert.Len(t, vd.EstResponses, 1)
		}
	}
	assert.Equal(t, 0, counts["Empty Project"])
}

func TestProjectDataRepository_QueryCountIndependentOfPageSize(t *testing.T) {
	db := testutil.SetupTestDB(t)

	for i := 0; i < 8; i++ {
		seedProjectWithVendors(t, db, 2)
	}

	counter := &queryCounter{Interface: gormlogger.Default.LogMode(gormlogger.Silent)}
	counted := db.Session(&gorm.Session{Logger: counter})

	repo := repository.NewProjectDataRepository(counted)
	_, _, err := repo.ListWithVendorData(context.Background(), 1, 20, &repository.ProjectFilters{}, repository.DefaultSortConfig())
	require.NoError(t, err)

	// One count + one page query for projects, then one batched query per
	// child table. Never one query per project.
	assert.LessOrEqual(t, counter.Count(), int64(7))
}

func TestProjectDataRepository_GetWithVendorData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	project := seedProjectWithVendors(t, db, 2)

	repo := repository.NewProjectDataRepository(db)
	data, err := repo.GetWithVendorData(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, data.Project.ID)
	assert.Len(t, data.Vendors, 2)
}

func TestProjectDataRepository_GetMissingProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectDataRepository(db)

	_, err := repo.GetWithVendorData(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory sqlite database migrated to the current
// schema. Each call gets its own isolated database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory test database")

	err = db.AutoMigrate(
		&domain.Vendor{},
		&domain.VendorContact{},
		&domain.Project{},
		&domain.ProjectVendor{},
		&domain.Phase{},
		&domain.ProjectFinancial{},
		&domain.EstResponse{},
		&domain.ProjectNote{},
		&domain.User{},
		&domain.Notification{},
		&domain.File{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// CreateTestVendor inserts a vendor with the given name
func CreateTestVendor(t *testing.T, db *gorm.DB, name string) *domain.Vendor {
	t.Helper()
	vendor := &domain.Vendor{
		CompanyName: name,
		Specialty:   "Electrical",
	}
	require.NoError(t, db.Create(vendor).Error)
	return vendor
}

// CreateTestProject inserts a project with the given name
func CreateTestProject(t *testing.T, db *gorm.DB, name string) *domain.Project {
	t.Helper()
	project := &domain.Project{
		Name:            name,
		Status:          domain.ProjectStatusBidding,
		Department:      domain.DepartmentEstimating,
		EstimatingCycle: domain.CycleActive,
		APMCycle:        domain.CycleActive,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// CreateTestAssignment links a project and vendor
func CreateTestAssignment(t *testing.T, db *gorm.DB, projectID, vendorID uuid.UUID) *domain.ProjectVendor {
	t.Helper()
	now := time.Now().UTC()
	rel := &domain.ProjectVendor{
		ProjectID:  projectID,
		VendorID:   vendorID,
		AssignedAt: &now,
	}
	require.NoError(t, db.Create(rel).Error)
	return rel
}

// DatePtr builds a *time.Time for a calendar date
func DatePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

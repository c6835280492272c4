package repository

import (
	"context"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectVendorRepository handles project-vendor relationship data access
type ProjectVendorRepository struct {
	db *gorm.DB
}

// NewProjectVendorRepository creates a new project-vendor repository instance
func NewProjectVendorRepository(db *gorm.DB) *ProjectVendorRepository {
	return &ProjectVendorRepository{db: db}
}

// Create creates a new relationship row
func (r *ProjectVendorRepository) Create(ctx context.Context, rel *domain.ProjectVendor) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

// GetByID retrieves a relationship with its vendor
func (r *ProjectVendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectVendor, error) {
	var rel domain.ProjectVendor
	err := r.db.WithContext(ctx).Preload("Vendor").Where("id = ?", id).First(&rel).Error
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// GetByProjectAndVendor finds the relationship linking one project to one
// vendor, or nil when the vendor is not assigned
func (r *ProjectVendorRepository) GetByProjectAndVendor(ctx context.Context, projectID, vendorID uuid.UUID) (*domain.ProjectVendor, error) {
	var rel domain.ProjectVendor
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND vendor_id = ?", projectID, vendorID).
		First(&rel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

// ListByProjectIDs returns relationship rows for a batched project id set
func (r *ProjectVendorRepository) ListByProjectIDs(ctx context.Context, projectIDs []uuid.UUID) ([]domain.ProjectVendor, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var rels []domain.ProjectVendor
	err := r.db.WithContext(ctx).Where("project_id IN ?", projectIDs).Find(&rels).Error
	return rels, err
}

// Update updates an existing relationship
func (r *ProjectVendorRepository) Update(ctx context.Context, rel *domain.ProjectVendor) error {
	return r.db.WithContext(ctx).Save(rel).Error
}

// Delete removes a relationship row
func (r *ProjectVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectVendor{}, "id = ?", id).Error
}

// DeleteByProject removes all relationship rows for a project
func (r *ProjectVendorRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectVendor{}, "project_id = ?", projectID).Error
}

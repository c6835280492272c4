package repository

import (
	"context"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancialRepository handles project financial data access operations
type FinancialRepository struct {
	db *gorm.DB
}

// NewFinancialRepository creates a new financial repository instance
func NewFinancialRepository(db *gorm.DB) *FinancialRepository {
	return &FinancialRepository{db: db}
}

// Create creates a new financial row
func (r *FinancialRepository) Create(ctx context.Context, financial *domain.ProjectFinancial) error {
	return r.db.WithContext(ctx).Create(financial).Error
}

// GetByRelationship finds the single financial row for a relationship,
// or nil when none exists
func (r *FinancialRepository) GetByRelationship(ctx context.Context, relID uuid.UUID) (*domain.ProjectFinancial, error) {
	var financial domain.ProjectFinancial
	err := r.db.WithContext(ctx).Where("project_vendor_id = ?", relID).First(&financial).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &financial, nil
}

// ListByRelationshipIDs returns financial rows for a batched relationship id set
func (r *FinancialRepository) ListByRelationshipIDs(ctx context.Context, relIDs []uuid.UUID) ([]domain.ProjectFinancial, error) {
	if len(relIDs) == 0 {
		return nil, nil
	}
	var financials []domain.ProjectFinancial
	err := r.db.WithContext(ctx).Where("project_vendor_id IN ?", relIDs).Find(&financials).Error
	return financials, err
}

// Update updates an existing financial row
func (r *FinancialRepository) Update(ctx context.Context, financial *domain.ProjectFinancial) error {
	return r.db.WithContext(ctx).Save(financial).Error
}

// DeleteByRelationships removes financial rows for a batched relationship id set
func (r *FinancialRepository) DeleteByRelationships(ctx context.Context, relIDs []uuid.UUID) error {
	if len(relIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&domain.ProjectFinancial{}, "project_vendor_id IN ?", relIDs).Error
}

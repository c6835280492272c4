package repository

import (
	"context"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EstResponseRepository handles estimating response data access operations
type EstResponseRepository struct {
	db *gorm.DB
}

// NewEstResponseRepository creates a new estimating response repository instance
func NewEstResponseRepository(db *gorm.DB) *EstResponseRepository {
	return &EstResponseRepository{db: db}
}

// Create creates a new estimating response row
func (r *EstResponseRepository) Create(ctx context.Context, response *domain.EstResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

// ListByRelationship returns all responses for one relationship, newest first
func (r *EstResponseRepository) ListByRelationship(ctx context.Context, relID uuid.UUID) ([]domain.EstResponse, error) {
	var responses []domain.EstResponse
	err := r.db.WithContext(ctx).
		Where("project_vendor_id = ?", relID).
		Order("created_at DESC").
		Find(&responses).Error
	return responses, err
}

// ListByRelationshipIDs returns responses for a batched relationship id set
func (r *EstResponseRepository) ListByRelationshipIDs(ctx context.Context, relIDs []uuid.UUID) ([]domain.EstResponse, error) {
	if len(relIDs) == 0 {
		return nil, nil
	}
	var responses []domain.EstResponse
	err := r.db.WithContext(ctx).Where("project_vendor_id IN ?", relIDs).Find(&responses).Error
	return responses, err
}

// DeleteByRelationships removes responses for a batched relationship id set
func (r *EstResponseRepository) DeleteByRelationships(ctx context.Context, relIDs []uuid.UUID) error {
	if len(relIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&domain.EstResponse{}, "project_vendor_id IN ?", relIDs).Error
}

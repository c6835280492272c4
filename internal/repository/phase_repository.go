package repository

import (
	"context"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhaseRepository handles phase data access operations
type PhaseRepository struct {
	db *gorm.DB
}

// NewPhaseRepository creates a new phase repository instance
func NewPhaseRepository(db *gorm.DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// Create creates a new phase row
func (r *PhaseRepository) Create(ctx context.Context, phase *domain.Phase) error {
	return r.db.WithContext(ctx).Create(phase).Error
}

// GetByID retrieves a phase by its ID
func (r *PhaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Phase, error) {
	var phase domain.Phase
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&phase).Error
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

// GetByRelationshipAndType finds the single phase row of one type for a
// relationship, or nil when it does not exist yet
func (r *PhaseRepository) GetByRelationshipAndType(ctx context.Context, relID uuid.UUID, phaseType domain.PhaseType) (*domain.Phase, error) {
	var phase domain.Phase
	err := r.db.WithContext(ctx).
		Where("project_vendor_id = ? AND phase_type = ?", relID, phaseType).
		First(&phase).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &phase, nil
}

// ListByRelationship returns all phases for one relationship
func (r *PhaseRepository) ListByRelationship(ctx context.Context, relID uuid.UUID) ([]domain.Phase, error) {
	var phases []domain.Phase
	err := r.db.WithContext(ctx).Where("project_vendor_id = ?", relID).Find(&phases).Error
	return phases, err
}

// ListByRelationshipIDs returns phase rows for a batched relationship id set
func (r *PhaseRepository) ListByRelationshipIDs(ctx context.Context, relIDs []uuid.UUID) ([]domain.Phase, error) {
	if len(relIDs) == 0 {
		return nil, nil
	}
	var phases []domain.Phase
	err := r.db.WithContext(ctx).Where("project_vendor_id IN ?", relIDs).Find(&phases).Error
	return phases, err
}

// ListDueFollowUps returns pending or requested phases whose follow-up
// date falls on or before the given day
func (r *PhaseRepository) ListDueFollowUps(ctx context.Context, day time.Time) ([]domain.Phase, error) {
	var phases []domain.Phase
	err := r.db.WithContext(ctx).
		Where("follow_up_date IS NOT NULL AND follow_up_date <= ?", day).
		Where("status IN ?", []domain.PhaseStatus{domain.PhaseStatusPending, domain.PhaseStatusRequested}).
		Find(&phases).Error
	return phases, err
}

// Update updates an existing phase
func (r *PhaseRepository) Update(ctx context.Context, phase *domain.Phase) error {
	return r.db.WithContext(ctx).Save(phase).Error
}

// Delete removes a phase row
func (r *PhaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Phase{}, "id = ?", id).Error
}

// DeleteByRelationships removes all phases for a batched relationship id set
func (r *PhaseRepository) DeleteByRelationships(ctx context.Context, relIDs []uuid.UUID) error {
	if len(relIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&domain.Phase{}, "project_vendor_id IN ?", relIDs).Error
}

package repository

import (
	"context"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository handles vendor contact data access operations
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository instance
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a new contact
func (r *ContactRepository) Create(ctx context.Context, contact *domain.VendorContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// GetByID retrieves a contact by its ID
func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VendorContact, error) {
	var contact domain.VendorContact
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListByVendor returns all contacts for one vendor, primary first
func (r *ContactRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.VendorContact, error) {
	var contacts []domain.VendorContact
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("is_primary DESC, name ASC").
		Find(&contacts).Error
	return contacts, err
}

// Update updates an existing contact
func (r *ContactRepository) Update(ctx context.Context, contact *domain.VendorContact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete removes a contact
func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.VendorContact{}, "id = ?", id).Error
}

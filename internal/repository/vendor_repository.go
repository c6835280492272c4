package repository

import (
	"context"
	"strings"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorFilters defines filter options for vendor listing
type VendorFilters struct {
	Search    string
	Specialty string
	Priority  *bool
}

// vendorSortableFields maps API field names to database column names.
// Only fields in this map can be used for sorting (whitelist approach).
var vendorSortableFields = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"companyName": "company_name",
	"specialty":   "specialty",
}

// VendorRepository handles vendor data access operations
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create creates a new vendor in the database
func (r *VendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// GetByID retrieves a vendor by its ID with the resolved primary contact
func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.db.WithContext(ctx).Preload("PrimaryContact").Where("id = ?", id).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetWithContacts retrieves a vendor with all of its contacts
func (r *VendorRepository) GetWithContacts(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.db.WithContext(ctx).
		Preload("PrimaryContact").
		Preload("Contacts").
		Where("id = ?", id).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByIDs retrieves vendors for a batched id set
func (r *VendorRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Vendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var vendors []domain.Vendor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&vendors).Error
	return vendors, err
}

// Update updates an existing vendor in the database
func (r *VendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// Delete removes a vendor; contacts cascade at the database level
func (r *VendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Vendor{}, "id = ?", id).Error
}

// List returns a paginated list of vendors with filter and sort options
func (r *VendorRepository) List(ctx context.Context, page, pageSize int, filters *VendorFilters, sort SortConfig) ([]domain.Vendor, int64, error) {
	var vendors []domain.Vendor
	var total int64

	page, pageSize = normalizePage(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.Vendor{})

	if filters != nil {
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("LOWER(company_name) LIKE ? OR LOWER(specialty) LIKE ?", searchPattern, searchPattern)
		}
		if filters.Specialty != "" {
			query = query.Where("LOWER(specialty) = LOWER(?)", filters.Specialty)
		}
		if filters.Priority != nil {
			query = query.Where("is_priority = ?", *filters.Priority)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("PrimaryContact").
		Order(sort.OrderClause(vendorSortableFields)).
		Offset(offset).Limit(pageSize).
		Find(&vendors).Error

	return vendors, total, err
}

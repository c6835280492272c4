package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/mapper"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VendorService handles business logic for vendors and their contacts.
// It owns the primary-contact invariant: a vendor has at most one primary
// contact, and the vendor's primary_contact_id always points at the
// contact row flagged is_primary.
type VendorService struct {
	db          *gorm.DB
	vendorRepo  *repository.VendorRepository
	contactRepo *repository.ContactRepository
	logger      *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(
	db *gorm.DB,
	vendorRepo *repository.VendorRepository,
	contactRepo *repository.ContactRepository,
	logger *zap.Logger,
) *VendorService {
	return &VendorService{
		db:          db,
		vendorRepo:  vendorRepo,
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, req *domain.CreateVendorRequest) (*domain.VendorDTO, error) {
	vendor := &domain.Vendor{
		CompanyName: req.CompanyName,
		Specialty:   req.Specialty,
		IsPriority:  req.IsPriority,
		Notes:       req.Notes,
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	dto := mapper.VendorToDTO(vendor)
	return &dto, nil
}

// GetByID retrieves a vendor with its primary contact resolved
func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VendorDTO, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	dto := mapper.VendorToDTO(vendor)
	return &dto, nil
}

// GetWithContacts retrieves a vendor with its full contact list
func (s *VendorService) GetWithContacts(ctx context.Context, id uuid.UUID) (*domain.VendorDTO, error) {
	vendor, err := s.vendorRepo.GetWithContacts(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	dto := mapper.VendorToDTO(vendor)
	return &dto, nil
}

// List returns a paginated vendor list
func (s *VendorService) List(ctx context.Context, page, pageSize int, filters *repository.VendorFilters, sort repository.SortConfig) ([]domain.VendorDTO, int64, error) {
	vendors, total, err := s.vendorRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}

	dtos := make([]domain.VendorDTO, len(vendors))
	for i := range vendors {
		dtos[i] = mapper.VendorToDTO(&vendors[i])
	}
	return dtos, total, nil
}

// Update applies a partial update to a vendor
func (s *VendorService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateVendorRequest) (*domain.VendorDTO, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	if req.CompanyName != nil {
		vendor.CompanyName = *req.CompanyName
	}
	if req.Specialty != nil {
		vendor.Specialty = *req.Specialty
	}
	if req.IsPriority != nil {
		vendor.IsPriority = *req.IsPriority
	}
	if req.Notes != nil {
		vendor.Notes = *req.Notes
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}

	dto := mapper.VendorToDTO(vendor)
	return &dto, nil
}

// Delete removes a vendor and, via the FK constraint, its contacts
func (s *VendorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.vendorRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendorNotFound
		}
		return fmt.Errorf("failed to get vendor: %w", err)
	}

	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	return nil
}

// AddContact creates a contact for a vendor. A contact created with
// isPrimary set becomes the vendor's primary contact, demoting any other.
func (s *VendorService) AddContact(ctx context.Context, vendorID uuid.UUID, req *domain.CreateVendorContactRequest) (*domain.VendorContactDTO, error) {
	if _, err := s.vendorRepo.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	contact := &domain.VendorContact{
		VendorID:  vendorID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Title:     req.Title,
		IsPrimary: req.IsPrimary,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contact).Error; err != nil {
			return err
		}
		if contact.IsPrimary {
			return promoteContactTx(tx, vendorID, contact.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	dto := mapper.VendorContactToDTO(contact)
	return &dto, nil
}

// ListContacts returns all contacts for a vendor, primary first
func (s *VendorService) ListContacts(ctx context.Context, vendorID uuid.UUID) ([]domain.VendorContactDTO, error) {
	contacts, err := s.contactRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	dtos := make([]domain.VendorContactDTO, len(contacts))
	for i := range contacts {
		dtos[i] = mapper.VendorContactToDTO(&contacts[i])
	}
	return dtos, nil
}

// UpdateContact applies a partial update to a contact
func (s *VendorService) UpdateContact(ctx context.Context, vendorID, contactID uuid.UUID, req *domain.UpdateVendorContactRequest) (*domain.VendorContactDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.VendorID != vendorID {
		return nil, ErrContactVendorMismatch
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Title != nil {
		contact.Title = *req.Title
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	dto := mapper.VendorContactToDTO(contact)
	return &dto, nil
}

// SetPrimaryContact promotes one contact to primary, demoting every other
// contact of the vendor in the same transaction
func (s *VendorService) SetPrimaryContact(ctx context.Context, vendorID, contactID uuid.UUID) error {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.VendorID != vendorID {
		return ErrContactVendorMismatch
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return promoteContactTx(tx, vendorID, contactID)
	})
	if err != nil {
		return fmt.Errorf("failed to set primary contact: %w", err)
	}
	return nil
}

// DeleteContact removes a contact. Deleting the primary contact clears the
// vendor's primary pointer rather than silently electing another contact.
func (s *VendorService) DeleteContact(ctx context.Context, vendorID, contactID uuid.UUID) error {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.VendorID != vendorID {
		return ErrContactVendorMismatch
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.VendorContact{}, "id = ?", contactID).Error; err != nil {
			return err
		}
		if contact.IsPrimary {
			return tx.Model(&domain.Vendor{}).
				Where("id = ?", vendorID).
				Update("primary_contact_id", nil).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// promoteContactTx makes contactID the single primary contact of the
// vendor: all other contacts are demoted and the vendor row is updated,
// all inside the caller's transaction.
func promoteContactTx(tx *gorm.DB, vendorID, contactID uuid.UUID) error {
	if err := tx.Model(&domain.VendorContact{}).
		Where("vendor_id = ? AND id <> ?", vendorID, contactID).
		Update("is_primary", false).Error; err != nil {
		return err
	}
	if err := tx.Model(&domain.VendorContact{}).
		Where("id = ?", contactID).
		Update("is_primary", true).Error; err != nil {
		return err
	}
	return tx.Model(&domain.Vendor{}).
		Where("id = ?", vendorID).
		Update("primary_contact_id", contactID).Error
}

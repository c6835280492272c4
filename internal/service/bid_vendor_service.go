package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/mapper"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BidVendorService handles the project-vendor relationship and everything
// hanging off it: phase rows, the financial row, and estimating responses.
// It also owns both directions of the legacy projection.
type BidVendorService struct {
	relRepo       *repository.ProjectVendorRepository
	vendorRepo    *repository.VendorRepository
	projectRepo   *repository.ProjectRepository
	phaseRepo     *repository.PhaseRepository
	financialRepo *repository.FinancialRepository
	estRepo       *repository.EstResponseRepository
	logger        *zap.Logger
}

// NewBidVendorService creates a new BidVendorService
func NewBidVendorService(
	relRepo *repository.ProjectVendorRepository,
	vendorRepo *repository.VendorRepository,
	projectRepo *repository.ProjectRepository,
	phaseRepo *repository.PhaseRepository,
	financialRepo *repository.FinancialRepository,
	estRepo *repository.EstResponseRepository,
	logger *zap.Logger,
) *BidVendorService {
	return &BidVendorService{
		relRepo:       relRepo,
		vendorRepo:    vendorRepo,
		projectRepo:   projectRepo,
		phaseRepo:     phaseRepo,
		financialRepo: financialRepo,
		estRepo:       estRepo,
		logger:        logger,
	}
}

// AssignVendor attaches a vendor to a project, creating the relationship,
// any initial phase rows, and the financial row in sequence. There is no
// wrapping transaction: each step skips what already exists, so a failed
// run can be re-submitted and picks up where it stopped.
func (s *BidVendorService) AssignVendor(ctx context.Context, projectID uuid.UUID, req *domain.AssignVendorRequest) (*domain.LegacyBidVendor, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if _, err := s.vendorRepo.GetByID(ctx, req.VendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	rel, err := s.relRepo.GetByProjectAndVendor(ctx, projectID, req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing assignment: %w", err)
	}
	if rel == nil {
		now := time.Now().UTC()
		rel = &domain.ProjectVendor{
			ProjectID:        projectID,
			VendorID:         req.VendorID,
			AssignedUserID:   req.AssignedUserID,
			AssignedUserName: req.AssignedUserName,
			AssignedAt:       &now,
			IsPriority:       req.IsPriority,
		}
		if err := s.relRepo.Create(ctx, rel); err != nil {
			return nil, fmt.Errorf("failed to create assignment: %w", err)
		}
	}

	for i := range req.Phases {
		pr := &req.Phases[i]
		phaseType := domain.PhaseType(pr.PhaseType)
		existing, err := s.phaseRepo.GetByRelationshipAndType(ctx, rel.ID, phaseType)
		if err != nil {
			return nil, fmt.Errorf("failed to check phase %s: %w", phaseType, err)
		}
		if existing != nil {
			continue
		}
		phase := &domain.Phase{
			ProjectVendorID: rel.ID,
			PhaseType:       phaseType,
			Status:          domain.PhaseStatusPending,
			RequestedDate:   pr.RequestedDate,
			FollowUpDate:    pr.FollowUpDate,
			CompletedDate:   pr.CompletedDate,
			Notes:           pr.Notes,
			IsPriority:      pr.IsPriority,
		}
		if pr.Status != "" {
			phase.Status = domain.PhaseStatus(pr.Status)
		}
		if err := s.phaseRepo.Create(ctx, phase); err != nil {
			return nil, fmt.Errorf("failed to create phase %s: %w", phaseType, err)
		}
	}

	if req.CostEstimate != nil || req.FinalQuote != nil || req.BuyNumber != "" || req.PONumber != "" {
		existing, err := s.financialRepo.GetByRelationship(ctx, rel.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check financial row: %w", err)
		}
		if existing == nil {
			financial := &domain.ProjectFinancial{
				ProjectVendorID: rel.ID,
				CostEstimate:    req.CostEstimate,
				FinalQuote:      req.FinalQuote,
				BuyNumber:       req.BuyNumber,
				PONumber:        req.PONumber,
			}
			if err := s.financialRepo.Create(ctx, financial); err != nil {
				return nil, fmt.Errorf("failed to create financial row: %w", err)
			}
		}
	}

	return s.GetLegacy(ctx, rel.ID)
}

// GetLegacy returns one relationship flattened to the legacy projection
func (s *BidVendorService) GetLegacy(ctx context.Context, relID uuid.UUID) (*domain.LegacyBidVendor, error) {
	rel, err := s.relRepo.GetByID(ctx, relID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	phases, err := s.phaseRepo.ListByRelationship(ctx, relID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}
	financial, err := s.financialRepo.GetByRelationship(ctx, relID)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial row: %w", err)
	}
	responses, err := s.estRepo.ListByRelationship(ctx, relID)
	if err != nil {
		return nil, fmt.Errorf("failed to list est responses: %w", err)
	}

	legacy := mapper.ToLegacy(rel, phases, financial, responses)
	return &legacy, nil
}

// SaveLegacy accepts a flat legacy record for an existing relationship and
// writes it back as normalized rows: phase rows and the financial row are
// upserted, and a changed estimating response is appended
func (s *BidVendorService) SaveLegacy(ctx context.Context, relID uuid.UUID, legacy *domain.LegacyBidVendor) (*domain.LegacyBidVendor, error) {
	rel, err := s.relRepo.GetByID(ctx, relID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	legacy.ID = rel.ID
	legacy.ProjectID = rel.ProjectID
	legacy.VendorID = rel.VendorID
	normalized := mapper.ToNormalized(legacy)

	rel.AssignedUserID = normalized.Relationship.AssignedUserID
	rel.AssignedUserName = normalized.Relationship.AssignedUserName
	rel.AssignedAt = normalized.Relationship.AssignedAt
	rel.IsPriority = normalized.Relationship.IsPriority
	if err := s.relRepo.Update(ctx, rel); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	for i := range normalized.Phases {
		p := &normalized.Phases[i]
		existing, err := s.phaseRepo.GetByRelationshipAndType(ctx, rel.ID, p.PhaseType)
		if err != nil {
			return nil, fmt.Errorf("failed to check phase %s: %w", p.PhaseType, err)
		}
		if existing == nil {
			if err := s.phaseRepo.Create(ctx, p); err != nil {
				return nil, fmt.Errorf("failed to create phase %s: %w", p.PhaseType, err)
			}
			continue
		}
		existing.Status = p.Status
		existing.RequestedDate = p.RequestedDate
		existing.FollowUpDate = p.FollowUpDate
		existing.CompletedDate = p.CompletedDate
		existing.Notes = p.Notes
		if err := s.phaseRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update phase %s: %w", p.PhaseType, err)
		}
	}

	if normalized.Financial != nil {
		existing, err := s.financialRepo.GetByRelationship(ctx, rel.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get financial row: %w", err)
		}
		if existing == nil {
			if err := s.financialRepo.Create(ctx, normalized.Financial); err != nil {
				return nil, fmt.Errorf("failed to create financial row: %w", err)
			}
		} else {
			existing.CostEstimate = normalized.Financial.CostEstimate
			existing.FinalQuote = normalized.Financial.FinalQuote
			existing.BuyNumber = normalized.Financial.BuyNumber
			existing.PONumber = normalized.Financial.PONumber
			if err := s.financialRepo.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("failed to update financial row: %w", err)
			}
		}
	}

	if normalized.EstResponse != nil {
		responses, err := s.estRepo.ListByRelationship(ctx, rel.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list est responses: %w", err)
		}
		if estResponseChanged(responses, normalized.EstResponse) {
			if err := s.estRepo.Create(ctx, normalized.EstResponse); err != nil {
				return nil, fmt.Errorf("failed to create est response: %w", err)
			}
		}
	}

	return s.GetLegacy(ctx, rel.ID)
}

// UpdatePhase upserts one phase row on a relationship. Completing a phase
// without an explicit completed date stamps today.
func (s *BidVendorService) UpdatePhase(ctx context.Context, relID uuid.UUID, phaseType domain.PhaseType, req *domain.UpdatePhaseRequest) (*domain.PhaseDTO, error) {
	if !phaseType.IsValid() {
		return nil, ErrInvalidInput
	}
	if _, err := s.relRepo.GetByID(ctx, relID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	phase, err := s.phaseRepo.GetByRelationshipAndType(ctx, relID, phaseType)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase: %w", err)
	}

	isNew := phase == nil
	if isNew {
		phase = &domain.Phase{
			ProjectVendorID: relID,
			PhaseType:       phaseType,
			Status:          domain.PhaseStatusPending,
		}
	}

	if req.Status != nil {
		phase.Status = domain.PhaseStatus(*req.Status)
	}
	if req.RequestedDate != nil {
		phase.RequestedDate = req.RequestedDate
	}
	if req.FollowUpDate != nil {
		phase.FollowUpDate = req.FollowUpDate
	}
	if req.CompletedDate != nil {
		phase.CompletedDate = req.CompletedDate
	}
	if req.Notes != nil {
		phase.Notes = *req.Notes
	}
	if req.IsPriority != nil {
		phase.IsPriority = *req.IsPriority
	}

	if phase.Status == domain.PhaseStatusCompleted && phase.CompletedDate == nil {
		now := time.Now().UTC()
		phase.CompletedDate = &now
	}

	if isNew {
		err = s.phaseRepo.Create(ctx, phase)
	} else {
		err = s.phaseRepo.Update(ctx, phase)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save phase: %w", err)
	}

	dto := mapper.PhaseToDTO(phase)
	return &dto, nil
}

// ListPhases returns all phase rows for a relationship
func (s *BidVendorService) ListPhases(ctx context.Context, relID uuid.UUID) ([]domain.PhaseDTO, error) {
	phases, err := s.phaseRepo.ListByRelationship(ctx, relID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}

	dtos := make([]domain.PhaseDTO, len(phases))
	for i := range phases {
		dtos[i] = mapper.PhaseToDTO(&phases[i])
	}
	return dtos, nil
}

// AddEstResponse appends a new estimating response; the newest row wins in
// the legacy projection
func (s *BidVendorService) AddEstResponse(ctx context.Context, relID uuid.UUID, req *domain.UpsertEstResponseRequest) error {
	if _, err := s.relRepo.GetByID(ctx, relID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRelationshipNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	response := &domain.EstResponse{
		ProjectVendorID: relID,
		Status:          domain.EstResponseStatus(req.Status),
		FollowUpDate:    req.FollowUpDate,
		Notes:           req.Notes,
	}
	if err := s.estRepo.Create(ctx, response); err != nil {
		return fmt.Errorf("failed to create est response: %w", err)
	}
	return nil
}

// Unassign removes a relationship and all rows hanging off it, leaf-first
func (s *BidVendorService) Unassign(ctx context.Context, relID uuid.UUID) error {
	if _, err := s.relRepo.GetByID(ctx, relID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRelationshipNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	relIDs := []uuid.UUID{relID}
	if err := s.estRepo.DeleteByRelationships(ctx, relIDs); err != nil {
		return fmt.Errorf("failed to delete est responses: %w", err)
	}
	if err := s.financialRepo.DeleteByRelationships(ctx, relIDs); err != nil {
		return fmt.Errorf("failed to delete financial row: %w", err)
	}
	if err := s.phaseRepo.DeleteByRelationships(ctx, relIDs); err != nil {
		return fmt.Errorf("failed to delete phases: %w", err)
	}
	if err := s.relRepo.Delete(ctx, relID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

// estResponseChanged reports whether the incoming response differs from
// the newest stored one; identical saves do not append duplicate rows
func estResponseChanged(existing []domain.EstResponse, incoming *domain.EstResponse) bool {
	var latest *domain.EstResponse
	for i := range existing {
		r := &existing[i]
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return true
	}
	if latest.Status != incoming.Status || latest.Notes != incoming.Notes {
		return true
	}
	switch {
	case latest.FollowUpDate == nil && incoming.FollowUpDate == nil:
		return false
	case latest.FollowUpDate == nil || incoming.FollowUpDate == nil:
		return true
	default:
		return !latest.FollowUpDate.Equal(*incoming.FollowUpDate)
	}
}

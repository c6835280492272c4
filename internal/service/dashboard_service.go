package service

import (
	"context"
	"fmt"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/realtime"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"go.uber.org/zap"
)

// DashboardService builds the summary read model from the realtime
// store's in-memory collections. Phase rows are not mirrored, so the due
// follow-up list is the one piece read from the database.
type DashboardService struct {
	store     *realtime.Store
	phaseRepo *repository.PhaseRepository
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(store *realtime.Store, phaseRepo *repository.PhaseRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:     store,
		phaseRepo: phaseRepo,
		logger:    logger,
	}
}

// GetSummary returns live project and vendor counts plus the phases
// currently due for follow-up
func (s *DashboardService) GetSummary(ctx context.Context) (*domain.DashboardSummaryDTO, error) {
	projects := s.store.Projects.Items()
	vendors := s.store.Vendors.Items()

	summary := &domain.DashboardSummaryDTO{
		ProjectCount:     len(projects),
		VendorCount:      len(vendors),
		AssignmentCount:  s.store.Relationships.Len(),
		ProjectsByStatus: make(map[domain.ProjectStatus]int),
	}

	for i := range projects {
		p := &projects[i]
		summary.ProjectsByStatus[p.Status]++

		cycle := p.EstimatingCycle
		if p.Department == domain.DepartmentAPM {
			cycle = p.APMCycle
		}
		if archived, _ := cycle.Flags(); archived {
			summary.ArchivedProjectCount++
		} else {
			summary.ActiveProjectCount++
		}
	}

	for i := range vendors {
		if vendors[i].IsPriority {
			summary.PriorityVendorCount++
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	due, err := s.phaseRepo.ListDueFollowUps(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list due follow-ups: %w", err)
	}

	summary.DueFollowUps = make([]domain.DueFollowUpDTO, 0, len(due))
	for i := range due {
		summary.DueFollowUps = append(summary.DueFollowUps, s.toDueFollowUp(&due[i]))
	}

	return summary, nil
}

// toDueFollowUp resolves the phase's project and vendor names from the
// store. A relationship missing from the mirror leaves the names empty
// rather than failing the whole summary.
func (s *DashboardService) toDueFollowUp(phase *domain.Phase) domain.DueFollowUpDTO {
	dto := domain.DueFollowUpDTO{
		PhaseID:         phase.ID,
		ProjectVendorID: phase.ProjectVendorID,
		PhaseType:       phase.PhaseType,
		Status:          phase.Status,
		FollowUpDate:    phase.FollowUpDate,
	}

	rel, ok := s.store.Relationships.Get(phase.ProjectVendorID)
	if !ok {
		return dto
	}
	projectID := rel.ProjectID
	vendorID := rel.VendorID
	dto.ProjectID = &projectID
	dto.VendorID = &vendorID

	if project, ok := s.store.Projects.Get(rel.ProjectID); ok {
		dto.ProjectName = project.Name
	}
	if vendor, ok := s.store.Vendors.Get(rel.VendorID); ok {
		dto.VendorName = vendor.CompanyName
	}
	return dto
}

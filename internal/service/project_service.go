package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crestline-build/bidtrack-api/internal/auth"
	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/mapper"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo   *repository.ProjectRepository
	relRepo       *repository.ProjectVendorRepository
	phaseRepo     *repository.PhaseRepository
	financialRepo *repository.FinancialRepository
	estRepo       *repository.EstResponseRepository
	noteRepo      *repository.NoteRepository
	dataRepo      *repository.ProjectDataRepository
	logger        *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	relRepo *repository.ProjectVendorRepository,
	phaseRepo *repository.PhaseRepository,
	financialRepo *repository.FinancialRepository,
	estRepo *repository.EstResponseRepository,
	noteRepo *repository.NoteRepository,
	dataRepo *repository.ProjectDataRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		relRepo:       relRepo,
		phaseRepo:     phaseRepo,
		financialRepo: financialRepo,
		estRepo:       estRepo,
		noteRepo:      noteRepo,
		dataRepo:      dataRepo,
		logger:        logger,
	}
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	project := &domain.Project{
		Name:            req.Name,
		Address:         req.Address,
		Description:     req.Description,
		DueDate:         req.DueDate,
		Status:          domain.ProjectStatusBidding,
		Department:      domain.DepartmentEstimating,
		EstimatingCycle: domain.CycleActive,
		APMCycle:        domain.CycleActive,
	}
	if req.Status != "" {
		project.Status = domain.ProjectStatus(req.Status)
	}
	if req.Department != "" {
		project.Department = domain.Department(req.Department)
	}

	if userCtx, ok := auth.FromContext(ctx); ok {
		project.CreatedByID = &userCtx.UserID
		project.CreatedByName = userCtx.DisplayName
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	dto := mapper.ProjectToDTO(project)
	return &dto, nil
}

// GetByID returns one project with its vendor rows in the legacy projection
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectWithVendorsDTO, error) {
	data, err := s.dataRepo.GetWithVendorData(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	dto := s.toProjectWithVendors(data)
	return &dto, nil
}

// List returns a page of projects, each carrying its vendor rows in the
// legacy projection
func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters *repository.ProjectFilters, sort repository.SortConfig) ([]domain.ProjectWithVendorsDTO, int64, error) {
	data, total, err := s.dataRepo.ListWithVendorData(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectWithVendorsDTO, len(data))
	for i := range data {
		dtos[i] = s.toProjectWithVendors(&data[i])
	}
	return dtos, total, nil
}

// Search returns projects matching the query by name or address
func (s *ProjectService) Search(ctx context.Context, query string, limit int) ([]domain.ProjectDTO, error) {
	projects, err := s.projectRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ProjectToDTO(&projects[i])
	}
	return dtos, nil
}

// Update applies a partial update to a project. The tri-state cycle fields
// win over the legacy archived/onHold booleans: the boolean pair is only
// honored when neither cycle field is present, and it maps onto the cycle
// of the project's current department.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Address != nil {
		project.Address = *req.Address
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}
	if req.Status != nil {
		project.Status = domain.ProjectStatus(*req.Status)
	}
	if req.Department != nil {
		project.Department = domain.Department(*req.Department)
	}

	switch {
	case req.EstimatingCycle != nil || req.APMCycle != nil:
		if req.EstimatingCycle != nil {
			project.EstimatingCycle = domain.ActivityCycle(*req.EstimatingCycle)
		}
		if req.APMCycle != nil {
			project.APMCycle = domain.ActivityCycle(*req.APMCycle)
		}
	case req.Archived != nil || req.OnHold != nil:
		cycle := project.EstimatingCycle
		if project.Department == domain.DepartmentAPM {
			cycle = project.APMCycle
		}
		archived, onHold := cycle.Flags()
		if req.Archived != nil {
			archived = *req.Archived
		}
		if req.OnHold != nil {
			onHold = *req.OnHold
		}
		cycle = domain.CycleFromFlags(archived, onHold)
		if project.Department == domain.DepartmentAPM {
			project.APMCycle = cycle
		} else {
			project.EstimatingCycle = cycle
		}
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	dto := mapper.ProjectToDTO(project)
	return &dto, nil
}

// Delete removes a project and all rows hanging off it. Children are
// removed leaf-first without a wrapping transaction, so a failed run
// leaves a state the next run can finish from.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	rels, err := s.relRepo.ListByProjectIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("failed to list project relationships: %w", err)
	}

	if len(rels) > 0 {
		relIDs := make([]uuid.UUID, len(rels))
		for i := range rels {
			relIDs[i] = rels[i].ID
		}
		if err := s.estRepo.DeleteByRelationships(ctx, relIDs); err != nil {
			return fmt.Errorf("failed to delete est responses: %w", err)
		}
		if err := s.financialRepo.DeleteByRelationships(ctx, relIDs); err != nil {
			return fmt.Errorf("failed to delete financials: %w", err)
		}
		if err := s.phaseRepo.DeleteByRelationships(ctx, relIDs); err != nil {
			return fmt.Errorf("failed to delete phases: %w", err)
		}
		if err := s.relRepo.DeleteByProject(ctx, id); err != nil {
			return fmt.Errorf("failed to delete relationships: %w", err)
		}
	}

	if err := s.noteRepo.DeleteByProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("project deleted",
		zap.String("project_id", id.String()),
		zap.Int("relationships", len(rels)))
	return nil
}

func (s *ProjectService) toProjectWithVendors(data *repository.ProjectData) domain.ProjectWithVendorsDTO {
	dto := domain.ProjectWithVendorsDTO{
		ProjectDTO: mapper.ProjectToDTO(&data.Project),
		BidVendors: make([]domain.LegacyBidVendor, len(data.Vendors)),
	}
	dto.VendorCount = len(data.Vendors)
	for i := range data.Vendors {
		vd := data.Vendors[i]
		dto.BidVendors[i] = mapper.ToLegacy(&vd.Relationship, vd.Phases, vd.Financial, vd.EstResponses)
	}
	return dto
}

package repository

import (
	"context"
	"strings"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectFilters defines filter options for project listing
type ProjectFilters struct {
	Search     string
	Status     *domain.ProjectStatus
	Department *domain.Department
	Cycle      *domain.ActivityCycle
}

var projectSortableFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"dueDate":   "due_date",
	"status":    "status",
}

// ProjectRepository handles project data access operations
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID retrieves a project by its ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates an existing project
func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project row. Child rows are removed by the service
// beforehand so a partial cascade failure is visible to the caller.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

// List returns a paginated project list with filter and sort options.
// The cycle filter matches against the cycle of the project's department.
func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, filters *ProjectFilters, sort SortConfig) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	page, pageSize = normalizePage(page, pageSize)

	query := r.applyFilters(r.db.WithContext(ctx).Model(&domain.Project{}), filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order(sort.OrderClause(projectSortableFields)).
		Offset(offset).Limit(pageSize).
		Find(&projects).Error

	return projects, total, err
}

// Search finds projects by name or address
func (r *ProjectRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Project, error) {
	var projects []domain.Project
	searchPattern := "%" + strings.ToLower(searchQuery) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", searchPattern, searchPattern).
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// CountActive counts projects whose estimating cycle is active
func (r *ProjectRepository) CountActive(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("estimating_cycle = ? OR apm_cycle = ?", domain.CycleActive, domain.CycleActive).
		Count(&count).Error
	return int(count), err
}

func (r *ProjectRepository) applyFilters(query *gorm.DB, filters *ProjectFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Search != "" {
		searchPattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", searchPattern, searchPattern)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.Cycle != nil {
		query = query.Where(
			"(department = ? AND estimating_cycle = ?) OR (department = ? AND apm_cycle = ?)",
			domain.DepartmentEstimating, *filters.Cycle,
			domain.DepartmentAPM, *filters.Cycle,
		)
	}
	return query
}

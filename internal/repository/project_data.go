package repository

import (
	"context"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorData bundles one relationship with its satellite rows
type VendorData struct {
	Relationship domain.ProjectVendor
	Phases       []domain.Phase
	Financial    *domain.ProjectFinancial
	EstResponses []domain.EstResponse
}

// ProjectData bundles one project with its vendor rows
type ProjectData struct {
	Project domain.Project
	Vendors []VendorData
}

// ProjectDataRepository assembles project pages together with all nested
// vendor/phase/financial data in a bounded number of queries: one page
// query for projects, then one batched "id IN (...)" query per child
// table, regrouped by parent id in memory. The query count never depends
// on how many projects the page holds.
type ProjectDataRepository struct {
	db *gorm.DB
}

// NewProjectDataRepository creates a new project data repository instance
func NewProjectDataRepository(db *gorm.DB) *ProjectDataRepository {
	return &ProjectDataRepository{db: db}
}

// ListWithVendorData returns a page of projects with fully hydrated vendor data
func (r *ProjectDataRepository) ListWithVendorData(ctx context.Context, page, pageSize int, filters *ProjectFilters, sort SortConfig) ([]ProjectData, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	projectRepo := NewProjectRepository(r.db)
	projects, total, err := projectRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, 0, err
	}

	data, err := r.hydrate(ctx, projects)
	if err != nil {
		return nil, 0, err
	}
	return data, total, nil
}

// GetWithVendorData returns one project with fully hydrated vendor data
func (r *ProjectDataRepository) GetWithVendorData(ctx context.Context, id uuid.UUID) (*ProjectData, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}

	data, err := r.hydrate(ctx, []domain.Project{project})
	if err != nil {
		return nil, err
	}
	return &data[0], nil
}

// hydrate loads all child rows for the given projects with one batched
// query per table and regroups them under their parents. Projects with
// no relationships come back with an empty vendor list.
func (r *ProjectDataRepository) hydrate(ctx context.Context, projects []domain.Project) ([]ProjectData, error) {
	data := make([]ProjectData, len(projects))
	for i := range projects {
		data[i] = ProjectData{Project: projects[i], Vendors: []VendorData{}}
	}
	if len(projects) == 0 {
		return data, nil
	}

	projectIDs := make([]uuid.UUID, len(projects))
	for i := range projects {
		projectIDs[i] = projects[i].ID
	}

	var rels []domain.ProjectVendor
	if err := r.db.WithContext(ctx).Where("project_id IN ?", projectIDs).Find(&rels).Error; err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return data, nil
	}

	relIDs := make([]uuid.UUID, len(rels))
	vendorIDSet := make(map[uuid.UUID]struct{}, len(rels))
	for i := range rels {
		relIDs[i] = rels[i].ID
		vendorIDSet[rels[i].VendorID] = struct{}{}
	}
	vendorIDs := make([]uuid.UUID, 0, len(vendorIDSet))
	for id := range vendorIDSet {
		vendorIDs = append(vendorIDs, id)
	}

	var vendors []domain.Vendor
	if err := r.db.WithContext(ctx).Where("id IN ?", vendorIDs).Find(&vendors).Error; err != nil {
		return nil, err
	}
	vendorsByID := make(map[uuid.UUID]*domain.Vendor, len(vendors))
	for i := range vendors {
		vendorsByID[vendors[i].ID] = &vendors[i]
	}

	var phases []domain.Phase
	if err := r.db.WithContext(ctx).Where("project_vendor_id IN ?", relIDs).Find(&phases).Error; err != nil {
		return nil, err
	}
	phasesByRel := make(map[uuid.UUID][]domain.Phase)
	for _, p := range phases {
		phasesByRel[p.ProjectVendorID] = append(phasesByRel[p.ProjectVendorID], p)
	}

	var financials []domain.ProjectFinancial
	if err := r.db.WithContext(ctx).Where("project_vendor_id IN ?", relIDs).Find(&financials).Error; err != nil {
		return nil, err
	}
	financialsByRel := make(map[uuid.UUID]*domain.ProjectFinancial, len(financials))
	for i := range financials {
		financialsByRel[financials[i].ProjectVendorID] = &financials[i]
	}

	var responses []domain.EstResponse
	if err := r.db.WithContext(ctx).Where("project_vendor_id IN ?", relIDs).Find(&responses).Error; err != nil {
		return nil, err
	}
	responsesByRel := make(map[uuid.UUID][]domain.EstResponse)
	for _, er := range responses {
		responsesByRel[er.ProjectVendorID] = append(responsesByRel[er.ProjectVendorID], er)
	}

	vendorDataByProject := make(map[uuid.UUID][]VendorData)
	for i := range rels {
		rel := rels[i]
		rel.Vendor = vendorsByID[rel.VendorID]
		vendorDataByProject[rel.ProjectID] = append(vendorDataByProject[rel.ProjectID], VendorData{
			Relationship: rel,
			Phases:       phasesByRel[rel.ID],
			Financial:    financialsByRel[rel.ID],
			EstResponses: responsesByRel[rel.ID],
		})
	}

	for i := range data {
		if vd, ok := vendorDataByProject[data[i].Project.ID]; ok {
			data[i].Vendors = vd
		}
	}

	return data, nil
}

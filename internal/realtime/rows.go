package realtime

import (
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
)

// Row images arrive from the notify triggers as row_to_json output, so
// the decode targets carry the column names rather than the Go field
// names of the domain models.

type projectRow struct {
	ID              uuid.UUID            `json:"id"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Name            string               `json:"name"`
	Address         string               `json:"address"`
	Description     string               `json:"description"`
	DueDate         *time.Time           `json:"due_date"`
	Status          domain.ProjectStatus `json:"status"`
	Department      domain.Department    `json:"department"`
	EstimatingCycle domain.ActivityCycle `json:"estimating_cycle"`
	APMCycle        domain.ActivityCycle `json:"apm_cycle"`
	CreatedByID     *uuid.UUID           `json:"created_by_id"`
	CreatedByName   string               `json:"created_by_name"`
}

func (r projectRow) toDomain() domain.Project {
	return domain.Project{
		BaseModel:       domain.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Name:            r.Name,
		Address:         r.Address,
		Description:     r.Description,
		DueDate:         r.DueDate,
		Status:          r.Status,
		Department:      r.Department,
		EstimatingCycle: r.EstimatingCycle,
		APMCycle:        r.APMCycle,
		CreatedByID:     r.CreatedByID,
		CreatedByName:   r.CreatedByName,
	}
}

type vendorRow struct {
	ID               uuid.UUID  `json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	CompanyName      string     `json:"company_name"`
	Specialty        string     `json:"specialty"`
	IsPriority       bool       `json:"is_priority"`
	PrimaryContactID *uuid.UUID `json:"primary_contact_id"`
	Notes            string     `json:"notes"`
}

func (r vendorRow) toDomain() domain.Vendor {
	return domain.Vendor{
		BaseModel:        domain.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		CompanyName:      r.CompanyName,
		Specialty:        r.Specialty,
		IsPriority:       r.IsPriority,
		PrimaryContactID: r.PrimaryContactID,
		Notes:            r.Notes,
	}
}

type relationshipRow struct {
	ID               uuid.UUID  `json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ProjectID        uuid.UUID  `json:"project_id"`
	VendorID         uuid.UUID  `json:"vendor_id"`
	AssignedUserID   *uuid.UUID `json:"assigned_user_id"`
	AssignedUserName string     `json:"assigned_user_name"`
	AssignedAt       *time.Time `json:"assigned_at"`
	IsPriority       bool       `json:"is_priority"`
}

func (r relationshipRow) toDomain() domain.ProjectVendor {
	return domain.ProjectVendor{
		BaseModel:        domain.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		ProjectID:        r.ProjectID,
		VendorID:         r.VendorID,
		AssignedUserID:   r.AssignedUserID,
		AssignedUserName: r.AssignedUserName,
		AssignedAt:       r.AssignedAt,
		IsPriority:       r.IsPriority,
	}
}

type noteRow struct {
	ID         uuid.UUID  `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ProjectID  uuid.UUID  `json:"project_id"`
	AuthorID   *uuid.UUID `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Body       string     `json:"body"`
}

func (r noteRow) toDomain() domain.ProjectNote {
	return domain.ProjectNote{
		BaseModel:  domain.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		ProjectID:  r.ProjectID,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
		Body:       r.Body,
	}
}

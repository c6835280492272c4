package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaginatedResponse wraps list endpoints
type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

type VendorDTO struct {
	ID               uuid.UUID          `json:"id"`
	CompanyName      string             `json:"companyName"`
	Specialty        string             `json:"specialty,omitempty"`
	IsPriority       bool               `json:"isPriority"`
	PrimaryContactID *uuid.UUID         `json:"primaryContactId,omitempty"`
	PrimaryContact   *VendorContactDTO  `json:"primaryContact,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	Contacts         []VendorContactDTO `json:"contacts,omitempty"`
	CreatedAt        string             `json:"createdAt"` // ISO 8601
	UpdatedAt        string             `json:"updatedAt"` // ISO 8601
}

type VendorContactDTO struct {
	ID        uuid.UUID `json:"id"`
	VendorID  uuid.UUID `json:"vendorId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Title     string    `json:"title,omitempty"`
	IsPrimary bool      `json:"isPrimary"`
}

type ProjectDTO struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Address         string        `json:"address,omitempty"`
	Description     string        `json:"description,omitempty"`
	DueDate         *time.Time    `json:"dueDate,omitempty"`
	Status          ProjectStatus `json:"status"`
	Department      Department    `json:"department"`
	EstimatingCycle ActivityCycle `json:"estimatingCycle"`
	APMCycle        ActivityCycle `json:"apmCycle"`
	// Legacy boolean pair, derived from the department's cycle
	Archived      bool   `json:"archived"`
	OnHold        bool   `json:"onHold"`
	CreatedByName string `json:"createdByName,omitempty"`
	VendorCount   int    `json:"vendorCount"`
	CreatedAt     string `json:"createdAt"` // ISO 8601
	UpdatedAt     string `json:"updatedAt"` // ISO 8601
}

// ProjectWithVendorsDTO is the backward-compatible read shape: the project
// plus its vendor rows flattened to the legacy projection
type ProjectWithVendorsDTO struct {
	ProjectDTO
	BidVendors []LegacyBidVendor `json:"bidVendors"`
}

type PhaseDTO struct {
	ID              uuid.UUID   `json:"id"`
	ProjectVendorID uuid.UUID   `json:"projectVendorId"`
	PhaseType       PhaseType   `json:"phaseType"`
	Status          PhaseStatus `json:"status"`
	RequestedDate   *time.Time  `json:"requestedDate,omitempty"`
	FollowUpDate    *time.Time  `json:"followUpDate,omitempty"`
	CompletedDate   *time.Time  `json:"completedDate,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	IsPriority      bool        `json:"isPriority"`
}

type ProjectNoteDTO struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	AuthorName string    `json:"authorName,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  string    `json:"createdAt"` // ISO 8601
	UpdatedAt  string    `json:"updatedAt"` // ISO 8601
}

type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	Read       bool       `json:"read"`
	CreatedAt  string     `json:"createdAt"` // ISO 8601
}

type FileDTO struct {
	ID             uuid.UUID `json:"id"`
	EntityType     string    `json:"entityType"`
	EntityID       uuid.UUID `json:"entityId"`
	FileName       string    `json:"fileName"`
	ContentType    string    `json:"contentType,omitempty"`
	Size           int64     `json:"size"`
	UploadedByName string    `json:"uploadedByName,omitempty"`
	CreatedAt      string    `json:"createdAt"` // ISO 8601
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type CreateVendorRequest struct {
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Specialty   string `json:"specialty" validate:"max=200"`
	IsPriority  bool   `json:"isPriority"`
	Notes       string `json:"notes"`
}

type UpdateVendorRequest struct {
	CompanyName *string `json:"companyName" validate:"omitempty,max=200"`
	Specialty   *string `json:"specialty" validate:"omitempty,max=200"`
	IsPriority  *bool   `json:"isPriority"`
	Notes       *string `json:"notes"`
}

type CreateVendorContactRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=50"`
	Title     string `json:"title" validate:"max=100"`
	IsPrimary bool   `json:"isPrimary"`
}

type UpdateVendorContactRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=50"`
	Title *string `json:"title" validate:"omitempty,max=100"`
}

type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Address     string     `json:"address" validate:"max=500"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status" validate:"omitempty,oneof=bidding submitted awarded in_progress completed lost"`
	Department  string     `json:"department" validate:"omitempty,oneof=estimating apm"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=200"`
	Address     *string    `json:"address" validate:"omitempty,max=500"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *string    `json:"status" validate:"omitempty,oneof=bidding submitted awarded in_progress completed lost"`
	Department  *string    `json:"department" validate:"omitempty,oneof=estimating apm"`
	// Tri-state cycle per department
	EstimatingCycle *string `json:"estimatingCycle" validate:"omitempty,oneof=active on_hold archived"`
	APMCycle        *string `json:"apmCycle" validate:"omitempty,oneof=active on_hold archived"`
	// Legacy boolean pair; honored only when the cycle fields are absent
	Archived *bool `json:"archived"`
	OnHold   *bool `json:"onHold"`
}

// AssignVendorRequest attaches a vendor to a project. Initial phases and
// the financial row are created in the same request.
type AssignVendorRequest struct {
	VendorID         uuid.UUID            `json:"vendorId" validate:"required"`
	AssignedUserID   *uuid.UUID           `json:"assignedUserId"`
	AssignedUserName string               `json:"assignedUserName" validate:"max=200"`
	IsPriority       bool                 `json:"isPriority"`
	Phases           []CreatePhaseRequest `json:"phases" validate:"dive"`
	CostEstimate     *float64             `json:"costEstimate"`
	FinalQuote       *float64             `json:"finalQuote"`
	BuyNumber        string               `json:"buyNumber" validate:"max=100"`
	PONumber         string               `json:"poNumber" validate:"max=100"`
}

type CreatePhaseRequest struct {
	PhaseType     string     `json:"phaseType" validate:"required,oneof=quote_confirmed buy_number po submittals revised_plans equipment_release closeouts"`
	Status        string     `json:"status" validate:"omitempty,oneof=pending requested in_progress completed received approved"`
	RequestedDate *time.Time `json:"requestedDate"`
	FollowUpDate  *time.Time `json:"followUpDate"`
	CompletedDate *time.Time `json:"completedDate"`
	Notes         string     `json:"notes"`
	IsPriority    bool       `json:"isPriority"`
}

type UpdatePhaseRequest struct {
	Status        *string    `json:"status" validate:"omitempty,oneof=pending requested in_progress completed received approved"`
	RequestedDate *time.Time `json:"requestedDate"`
	FollowUpDate  *time.Time `json:"followUpDate"`
	CompletedDate *time.Time `json:"completedDate"`
	Notes         *string    `json:"notes"`
	IsPriority    *bool      `json:"isPriority"`
}

type UpsertEstResponseRequest struct {
	Status       string     `json:"status" validate:"required,oneof=no_response declined will_bid bid_received"`
	FollowUpDate *time.Time `json:"followUpDate"`
	Notes        string     `json:"notes"`
}

type CreateNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

type UpdateNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

type SetPrimaryContactRequest struct {
	ContactID uuid.UUID `json:"contactId" validate:"required"`
}

// DashboardSummaryDTO is the live dashboard read model, served from the
// in-memory mirror the change feed keeps in sync
type DashboardSummaryDTO struct {
	ProjectCount         int                   `json:"projectCount"`
	ActiveProjectCount   int                   `json:"activeProjectCount"`
	ArchivedProjectCount int                   `json:"archivedProjectCount"`
	VendorCount          int                   `json:"vendorCount"`
	PriorityVendorCount  int                   `json:"priorityVendorCount"`
	AssignmentCount      int                   `json:"assignmentCount"`
	ProjectsByStatus     map[ProjectStatus]int `json:"projectsByStatus"`
	DueFollowUps         []DueFollowUpDTO      `json:"dueFollowUps"`
}

// DueFollowUpDTO is one phase whose follow-up date has arrived, with the
// project and vendor names resolved for display
type DueFollowUpDTO struct {
	PhaseID         uuid.UUID   `json:"phaseId"`
	ProjectVendorID uuid.UUID   `json:"projectVendorId"`
	ProjectID       *uuid.UUID  `json:"projectId,omitempty"`
	ProjectName     string      `json:"projectName,omitempty"`
	VendorID        *uuid.UUID  `json:"vendorId,omitempty"`
	VendorName      string      `json:"vendorName,omitempty"`
	PhaseType       PhaseType   `json:"phaseType"`
	Status          PhaseStatus `json:"status"`
	FollowUpDate    *time.Time  `json:"followUpDate,omitempty"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an id when the client did not supply one.
// Generating ids application-side keeps the models portable across
// the Postgres and sqlite (test) drivers.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Department identifies which workflow owns a project at a point in time
type Department string

const (
	DepartmentEstimating Department = "estimating"
	DepartmentAPM        Department = "apm"
)

// IsValid checks if the Department is a valid enum value
func (d Department) IsValid() bool {
	return d == DepartmentEstimating || d == DepartmentAPM
}

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusBidding    ProjectStatus = "bidding"
	ProjectStatusSubmitted  ProjectStatus = "submitted"
	ProjectStatusAwarded    ProjectStatus = "awarded"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusLost       ProjectStatus = "lost"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusBidding, ProjectStatusSubmitted, ProjectStatusAwarded,
		ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusLost:
		return true
	}
	return false
}

// Vendor represents a subcontractor or supplier company
type Vendor struct {
	BaseModel
	CompanyName      string          `gorm:"type:varchar(200);not null;index;column:company_name"`
	Specialty        string          `gorm:"type:varchar(200);index"`
	IsPriority       bool            `gorm:"not null;default:false;column:is_priority"`
	PrimaryContactID *uuid.UUID      `gorm:"type:uuid;column:primary_contact_id"`
	PrimaryContact   *VendorContact  `gorm:"foreignKey:PrimaryContactID"`
	Notes            string          `gorm:"type:text"`
	Contacts         []VendorContact `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

// VendorContact represents a person at a vendor company.
// At most one contact per vendor carries IsPrimary = true; the service
// layer enforces this when contacts are created, promoted, or deleted.
type VendorContact struct {
	BaseModel
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index;column:vendor_id"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Title     string    `gorm:"type:varchar(100)"`
	IsPrimary bool      `gorm:"not null;default:false;column:is_primary"`
}

// Project represents a construction bid / job being tracked
type Project struct {
	BaseModel
	Name            string        `gorm:"type:varchar(200);not null;index"`
	Address         string        `gorm:"type:varchar(500)"`
	Description     string        `gorm:"type:text"`
	DueDate         *time.Time    `gorm:"type:date;column:due_date"`
	Status          ProjectStatus `gorm:"type:varchar(50);not null;default:'bidding';index"`
	Department      Department    `gorm:"type:varchar(50);not null;default:'estimating';index"`
	EstimatingCycle ActivityCycle `gorm:"type:varchar(20);not null;default:'active';column:estimating_cycle"`
	APMCycle        ActivityCycle `gorm:"type:varchar(20);not null;default:'active';column:apm_cycle"`
	CreatedByID     *uuid.UUID    `gorm:"type:uuid;column:created_by_id"`
	CreatedByName   string        `gorm:"type:varchar(200);column:created_by_name"`
	Vendors         []ProjectVendor `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Notes           []ProjectNote   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ProjectVendor links one project to one assigned vendor and carries
// the assignment metadata. Phases, the financial row, and estimating
// responses all hang off this relationship.
type ProjectVendor struct {
	BaseModel
	ProjectID        uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_project_vendor;column:project_id"`
	VendorID         uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_project_vendor;column:vendor_id"`
	Project          *Project          `gorm:"foreignKey:ProjectID"`
	Vendor           *Vendor           `gorm:"foreignKey:VendorID"`
	AssignedUserID   *uuid.UUID        `gorm:"type:uuid;column:assigned_user_id"`
	AssignedUserName string            `gorm:"type:varchar(200);column:assigned_user_name"`
	AssignedAt       *time.Time        `gorm:"column:assigned_at"`
	IsPriority       bool              `gorm:"not null;default:false;column:is_priority"`
	Phases           []Phase           `gorm:"foreignKey:ProjectVendorID;constraint:OnDelete:CASCADE"`
	Financial        *ProjectFinancial `gorm:"foreignKey:ProjectVendorID;constraint:OnDelete:CASCADE"`
	EstResponses     []EstResponse     `gorm:"foreignKey:ProjectVendorID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name to match the migrations
func (ProjectVendor) TableName() string {
	return "project_vendors"
}

// Phase represents one workflow stage for a project-vendor relationship.
// A relationship holds at most one phase row per phase type.
type Phase struct {
	BaseModel
	ProjectVendorID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_phase_type;column:project_vendor_id"`
	PhaseType       PhaseType   `gorm:"type:varchar(50);not null;uniqueIndex:idx_phase_type;column:phase_type"`
	Status          PhaseStatus `gorm:"type:varchar(50);not null;default:'pending'"`
	RequestedDate   *time.Time  `gorm:"type:date;column:requested_date"`
	FollowUpDate    *time.Time  `gorm:"type:date;column:follow_up_date"`
	CompletedDate   *time.Time  `gorm:"type:date;column:completed_date"`
	Notes           string      `gorm:"type:text"`
	IsPriority      bool        `gorm:"not null;default:false;column:is_priority"`
}

// TableName overrides the default table name to match the migrations
func (Phase) TableName() string {
	return "apm_phases"
}

// ProjectFinancial holds the money fields for one project-vendor relationship
type ProjectFinancial struct {
	BaseModel
	ProjectVendorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:project_vendor_id"`
	CostEstimate    *float64  `gorm:"type:decimal(15,2);column:cost_estimate"`
	FinalQuote      *float64  `gorm:"type:decimal(15,2);column:final_quote"`
	BuyNumber       string    `gorm:"type:varchar(100);column:buy_number"`
	PONumber        string    `gorm:"type:varchar(100);column:po_number"`
}

// TableName overrides the default table name to match the migrations
func (ProjectFinancial) TableName() string {
	return "project_financials"
}

// EstResponseStatus represents a vendor's estimating-stage answer
type EstResponseStatus string

const (
	EstResponseNoResponse  EstResponseStatus = "no_response"
	EstResponseDeclined    EstResponseStatus = "declined"
	EstResponseWillBid     EstResponseStatus = "will_bid"
	EstResponseBidReceived EstResponseStatus = "bid_received"
)

// EstResponse records an estimating follow-up for a project-vendor relationship
type EstResponse struct {
	BaseModel
	ProjectVendorID uuid.UUID         `gorm:"type:uuid;not null;index;column:project_vendor_id"`
	Status          EstResponseStatus `gorm:"type:varchar(50);not null;default:'no_response'"`
	FollowUpDate    *time.Time        `gorm:"type:date;column:follow_up_date"`
	Notes           string            `gorm:"type:text"`
}

// TableName overrides the default table name to match the migrations
func (EstResponse) TableName() string {
	return "est_responses"
}

// ProjectNote is a free-text note attached to a project
type ProjectNote struct {
	BaseModel
	ProjectID  uuid.UUID  `gorm:"type:uuid;not null;index;column:project_id"`
	AuthorID   *uuid.UUID `gorm:"type:uuid;column:author_id"`
	AuthorName string     `gorm:"type:varchar(200);column:author_name"`
	Body       string     `gorm:"type:text;not null"`
}

// TableName overrides the default table name to match the migrations
func (ProjectNote) TableName() string {
	return "project_notes"
}

// User represents an application user (identity is provisioned externally)
type User struct {
	BaseModel
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName string `gorm:"type:varchar(200);column:display_name"`
	Role        string `gorm:"type:varchar(50);not null;default:'member'"`
	IsActive    bool   `gorm:"not null;default:true;column:is_active"`
}

// NotificationType represents the kind of notification
type NotificationType string

const (
	NotificationTypeFollowUpDue    NotificationType = "follow_up_due"
	NotificationTypePhaseCompleted NotificationType = "phase_completed"
	NotificationTypeVendorAssigned NotificationType = "vendor_assigned"
	NotificationTypeProjectUpdate  NotificationType = "project_update"
)

// Notification is an in-app message for one user
type Notification struct {
	BaseModel
	UserID     uuid.UUID        `gorm:"type:uuid;not null;index;column:user_id"`
	Type       NotificationType `gorm:"type:varchar(50);not null"`
	Title      string           `gorm:"type:varchar(200);not null"`
	Message    string           `gorm:"type:text"`
	EntityType string           `gorm:"type:varchar(50);column:entity_type"`
	EntityID   *uuid.UUID       `gorm:"type:uuid;column:entity_id"`
	Read       bool             `gorm:"not null;default:false"`
	ReadAt     *time.Time       `gorm:"column:read_at"`
}

// File holds metadata for an uploaded attachment; bytes live in Storage
type File struct {
	BaseModel
	EntityType     string     `gorm:"type:varchar(50);not null;index;column:entity_type"`
	EntityID       uuid.UUID  `gorm:"type:uuid;not null;index;column:entity_id"`
	FileName       string     `gorm:"type:varchar(255);not null;column:file_name"`
	ContentType    string     `gorm:"type:varchar(100);column:content_type"`
	StoragePath    string     `gorm:"type:varchar(500);not null;column:storage_path"`
	Size           int64      `gorm:"not null;default:0"`
	UploadedByID   *uuid.UUID `gorm:"type:uuid;column:uploaded_by_id"`
	UploadedByName string     `gorm:"type:varchar(200);column:uploaded_by_name"`
}

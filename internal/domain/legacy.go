package domain

import (
	"time"

	"github.com/google/uuid"
)

// LegacyBidVendor is the wide, flat projection of one project-vendor
// relationship that the original UI still consumes: assignment metadata,
// the resolved current phase, the financial row, the latest estimating
// response, and a requested/follow-up/completed/notes quadruple per phase
// type. It is constructed on read and never persisted.
type LegacyBidVendor struct {
	ID               uuid.UUID  `json:"id"`
	ProjectID        uuid.UUID  `json:"projectId"`
	VendorID         uuid.UUID  `json:"vendorId"`
	VendorName       string     `json:"vendorName,omitempty"`
	Specialty        string     `json:"specialty,omitempty"`
	AssignedUserID   *uuid.UUID `json:"assignedUserId,omitempty"`
	AssignedUserName string     `json:"assignedUserName,omitempty"`
	AssignedDate     *time.Time `json:"assignedDate,omitempty"`
	IsPriority       bool       `json:"isPriority"`

	// Current-phase fields, derived via phase resolution
	CurrentPhase  PhaseType   `json:"currentPhase"`
	CurrentStatus PhaseStatus `json:"currentStatus"`
	FollowUpDate  *time.Time  `json:"followUpDate,omitempty"`

	// Financial fields
	CostEstimate *float64 `json:"costEstimate,omitempty"`
	FinalQuote   *float64 `json:"finalQuote,omitempty"`
	BuyNumber    string   `json:"buyNumber,omitempty"`
	PONumber     string   `json:"poNumber,omitempty"`

	// Estimating response fields (latest response wins)
	EstStatus       EstResponseStatus `json:"estStatus,omitempty"`
	EstFollowUpDate *time.Time        `json:"estFollowUpDate,omitempty"`
	EstNotes        string            `json:"estNotes,omitempty"`

	QuoteConfirmedRequestedDate *time.Time `json:"quoteConfirmedRequestedDate,omitempty"`
	QuoteConfirmedFollowUpDate  *time.Time `json:"quoteConfirmedFollowUpDate,omitempty"`
	QuoteConfirmedCompletedDate *time.Time `json:"quoteConfirmedCompletedDate,omitempty"`
	QuoteConfirmedNotes         string     `json:"quoteConfirmedNotes,omitempty"`

	BuyNumberRequestedDate *time.Time `json:"buyNumberRequestedDate,omitempty"`
	BuyNumberFollowUpDate  *time.Time `json:"buyNumberFollowUpDate,omitempty"`
	BuyNumberCompletedDate *time.Time `json:"buyNumberCompletedDate,omitempty"`
	BuyNumberNotes         string     `json:"buyNumberNotes,omitempty"`

	PORequestedDate *time.Time `json:"poRequestedDate,omitempty"`
	POFollowUpDate  *time.Time `json:"poFollowUpDate,omitempty"`
	POCompletedDate *time.Time `json:"poCompletedDate,omitempty"`
	PONotes         string     `json:"poNotes,omitempty"`

	SubmittalsRequestedDate *time.Time `json:"submittalsRequestedDate,omitempty"`
	SubmittalsFollowUpDate  *time.Time `json:"submittalsFollowUpDate,omitempty"`
	SubmittalsCompletedDate *time.Time `json:"submittalsCompletedDate,omitempty"`
	SubmittalsNotes         string     `json:"submittalsNotes,omitempty"`

	RevisedPlansRequestedDate *time.Time `json:"revisedPlansRequestedDate,omitempty"`
	RevisedPlansFollowUpDate  *time.Time `json:"revisedPlansFollowUpDate,omitempty"`
	RevisedPlansCompletedDate *time.Time `json:"revisedPlansCompletedDate,omitempty"`
	RevisedPlansNotes         string     `json:"revisedPlansNotes,omitempty"`

	EquipmentReleaseRequestedDate *time.Time `json:"equipmentReleaseRequestedDate,omitempty"`
	EquipmentReleaseFollowUpDate  *time.Time `json:"equipmentReleaseFollowUpDate,omitempty"`
	EquipmentReleaseCompletedDate *time.Time `json:"equipmentReleaseCompletedDate,omitempty"`
	EquipmentReleaseNotes         string     `json:"equipmentReleaseNotes,omitempty"`

	CloseoutsRequestedDate *time.Time `json:"closeoutsRequestedDate,omitempty"`
	CloseoutsFollowUpDate  *time.Time `json:"closeoutsFollowUpDate,omitempty"`
	CloseoutsCompletedDate *time.Time `json:"closeoutsCompletedDate,omitempty"`
	CloseoutsNotes         string     `json:"closeoutsNotes,omitempty"`
}

// PhaseFields is one phase's slice of the legacy record
type PhaseFields struct {
	RequestedDate *time.Time
	FollowUpDate  *time.Time
	CompletedDate *time.Time
	Notes         string
}

// IsEmpty reports whether no field of the quadruple is populated
func (f PhaseFields) IsEmpty() bool {
	return f.RequestedDate == nil && f.FollowUpDate == nil && f.CompletedDate == nil && f.Notes == ""
}

// PhaseFields returns the quadruple for the given phase type
func (b *LegacyBidVendor) PhaseFields(t PhaseType) PhaseFields {
	switch t {
	case PhaseQuoteConfirmed:
		return PhaseFields{b.QuoteConfirmedRequestedDate, b.QuoteConfirmedFollowUpDate, b.QuoteConfirmedCompletedDate, b.QuoteConfirmedNotes}
	case PhaseBuyNumber:
		return PhaseFields{b.BuyNumberRequestedDate, b.BuyNumberFollowUpDate, b.BuyNumberCompletedDate, b.BuyNumberNotes}
	case PhasePO:
		return PhaseFields{b.PORequestedDate, b.POFollowUpDate, b.POCompletedDate, b.PONotes}
	case PhaseSubmittals:
		return PhaseFields{b.SubmittalsRequestedDate, b.SubmittalsFollowUpDate, b.SubmittalsCompletedDate, b.SubmittalsNotes}
	case PhaseRevisedPlans:
		return PhaseFields{b.RevisedPlansRequestedDate, b.RevisedPlansFollowUpDate, b.RevisedPlansCompletedDate, b.RevisedPlansNotes}
	case PhaseEquipmentRelease:
		return PhaseFields{b.EquipmentReleaseRequestedDate, b.EquipmentReleaseFollowUpDate, b.EquipmentReleaseCompletedDate, b.EquipmentReleaseNotes}
	case PhaseCloseouts:
		return PhaseFields{b.CloseoutsRequestedDate, b.CloseoutsFollowUpDate, b.CloseoutsCompletedDate, b.CloseoutsNotes}
	}
	return PhaseFields{}
}

// SetPhaseFields writes the quadruple for the given phase type
func (b *LegacyBidVendor) SetPhaseFields(t PhaseType, f PhaseFields) {
	switch t {
	case PhaseQuoteConfirmed:
		b.QuoteConfirmedRequestedDate, b.QuoteConfirmedFollowUpDate, b.QuoteConfirmedCompletedDate, b.QuoteConfirmedNotes = f.RequestedDate, f.FollowUpDate, f.CompletedDate, f.Notes
	case PhaseBuyNumber:
		b.BuyNumberRequestedDate, b.BuyNumberFollowUpDate, b.BuyNumberCompletedDate, b.BuyNumberNotes = f.RequestedDate, f.FollowUpDate, f.CompletedDate, f.Notes
	case PhasePO:
		b.PORequestedDate, b.POFollowUpDate, b.POCompletedDate, b.PONotes = f.RequestedDate, f.FollowUpDate, f.CompletedDate, f.Notes
	case PhaseSubmittals:
		b.SubmittalsRequestedDate, b.SubmittalsFollowUpDate, b.SubmittalsCompletedDate, b.SubmittalsNotes = f.RequestedDate, f.FollowUpDate, f.CompletedDate, f.Notes
	case PhaseRevisedPlans:
		b.RevisedPlansRequestedDate, b.RevisedPlansFollowUpDate, b.RevisedPlansCompletedDate, b.RevisedPlansNotes = f.RequestedDate, f.FollowUpDate, f.CompletedDate, f.Notes
	case PhaseEquipmentRelease:
		b.EquipmentReleaseRequestedDate, b.EquipmentReleaseFollowUpDate, b.EquipmentReleaseCompletedDate, b.EquipmentReleaseNotes = f.RequestedDate, f.FollowUpDate, f.CompletedDate, f.Notes
	case PhaseCloseouts:
		b.CloseoutsRequestedDate, b.CloseoutsFollowUpDate, b.CloseoutsCompletedDate, b.CloseoutsNotes = f.RequestedDate, f.FollowUpDate, f.CompletedDate, f.Notes
	}
}

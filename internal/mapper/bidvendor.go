package mapper

import (
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
)

// NormalizedBidVendor groups the rows a legacy bid-vendor record
// decomposes into: the relationship itself, its phase rows, and the
// optional financial and estimating-response rows.
type NormalizedBidVendor struct {
	Relationship domain.ProjectVendor
	Phases       []domain.Phase
	Financial    *domain.ProjectFinancial
	EstResponse  *domain.EstResponse
}

// ToNormalized splits one flat legacy record into its normalized parts.
// A phase row is produced for each phase type that is actually populated
// on the legacy record; the current phase always yields a row when it
// carries non-default state, so the resolved phase survives the split.
func ToNormalized(legacy *domain.LegacyBidVendor) NormalizedBidVendor {
	out := NormalizedBidVendor{
		Relationship: domain.ProjectVendor{
			BaseModel:        domain.BaseModel{ID: legacy.ID},
			ProjectID:        legacy.ProjectID,
			VendorID:         legacy.VendorID,
			AssignedUserID:   legacy.AssignedUserID,
			AssignedUserName: legacy.AssignedUserName,
			AssignedAt:       legacy.AssignedDate,
			IsPriority:       legacy.IsPriority,
		},
	}

	currentType := legacy.CurrentPhase
	currentStatus := legacy.CurrentStatus
	if !currentStatus.IsValid() {
		// Statuses the normalized vocabulary dropped (e.g. "rejected")
		// degrade to pending instead of failing the conversion.
		currentStatus = domain.PhaseStatusPending
	}

	for _, t := range domain.PhaseOrder {
		f := legacy.PhaseFields(t)
		isCurrent := t == currentType
		if f.IsEmpty() && !isCurrent {
			continue
		}
		if f.IsEmpty() && isCurrent &&
			t == domain.PhaseQuoteConfirmed && currentStatus == domain.PhaseStatusPending {
			// The all-default current phase is what resolution returns for
			// an empty set anyway; emitting a row would not add information.
			continue
		}

		status := domain.PhaseStatusPending
		switch {
		case isCurrent:
			status = currentStatus
		case f.CompletedDate != nil:
			status = domain.PhaseStatusCompleted
		case f.RequestedDate != nil:
			status = domain.PhaseStatusRequested
		}

		followUp := f.FollowUpDate
		if isCurrent && followUp == nil {
			followUp = legacy.FollowUpDate
		}

		out.Phases = append(out.Phases, domain.Phase{
			ProjectVendorID: legacy.ID,
			PhaseType:       t,
			Status:          status,
			RequestedDate:   f.RequestedDate,
			FollowUpDate:    followUp,
			CompletedDate:   f.CompletedDate,
			Notes:           f.Notes,
		})
	}

	if legacy.CostEstimate != nil || legacy.FinalQuote != nil ||
		legacy.BuyNumber != "" || legacy.PONumber != "" {
		out.Financial = &domain.ProjectFinancial{
			ProjectVendorID: legacy.ID,
			CostEstimate:    legacy.CostEstimate,
			FinalQuote:      legacy.FinalQuote,
			BuyNumber:       legacy.BuyNumber,
			PONumber:        legacy.PONumber,
		}
	}

	if legacy.EstStatus != "" || legacy.EstFollowUpDate != nil || legacy.EstNotes != "" {
		status := legacy.EstStatus
		if status == "" {
			status = domain.EstResponseNoResponse
		}
		out.EstResponse = &domain.EstResponse{
			ProjectVendorID: legacy.ID,
			Status:          status,
			FollowUpDate:    legacy.EstFollowUpDate,
			Notes:           legacy.EstNotes,
		}
	}

	return out
}

// ToLegacy flattens one relationship and its satellite rows into the wide
// legacy projection, resolving the current phase on the way.
func ToLegacy(rel *domain.ProjectVendor, phases []domain.Phase, financial *domain.ProjectFinancial, estResponses []domain.EstResponse) domain.LegacyBidVendor {
	return ToLegacyAt(rel, phases, financial, estResponses, time.Now())
}

// ToLegacyAt is ToLegacy with an explicit "today" for follow-up synthesis
func ToLegacyAt(rel *domain.ProjectVendor, phases []domain.Phase, financial *domain.ProjectFinancial, estResponses []domain.EstResponse, today time.Time) domain.LegacyBidVendor {
	legacy := domain.LegacyBidVendor{
		ID:               rel.ID,
		ProjectID:        rel.ProjectID,
		VendorID:         rel.VendorID,
		AssignedUserID:   rel.AssignedUserID,
		AssignedUserName: rel.AssignedUserName,
		AssignedDate:     rel.AssignedAt,
		IsPriority:       rel.IsPriority,
	}

	if rel.Vendor != nil {
		legacy.VendorName = rel.Vendor.CompanyName
		legacy.Specialty = rel.Vendor.Specialty
	}

	byType := phasesByType(phases)
	for t, p := range byType {
		legacy.SetPhaseFields(t, domain.PhaseFields{
			RequestedDate: p.RequestedDate,
			FollowUpDate:  p.FollowUpDate,
			CompletedDate: p.CompletedDate,
			Notes:         p.Notes,
		})
	}

	currentType, currentStatus := domain.ResolveCurrentPhase(phases)
	legacy.CurrentPhase = currentType
	legacy.CurrentStatus = currentStatus

	if current, ok := byType[currentType]; ok {
		legacy.FollowUpDate = current.FollowUpDate
	}
	if legacy.FollowUpDate == nil && currentStatus == domain.PhaseStatusPending {
		d := domain.SyntheticFollowUpDate(currentType, today)
		legacy.FollowUpDate = &d
	}

	if financial != nil {
		legacy.CostEstimate = financial.CostEstimate
		legacy.FinalQuote = financial.FinalQuote
		legacy.BuyNumber = financial.BuyNumber
		legacy.PONumber = financial.PONumber
	}

	if latest := latestEstResponse(estResponses); latest != nil {
		legacy.EstStatus = latest.Status
		legacy.EstFollowUpDate = latest.FollowUpDate
		legacy.EstNotes = latest.Notes
	}

	return legacy
}

// phasesByType collapses the phase list to one row per type, preferring
// the most recently updated row when duplicates slip in
func phasesByType(phases []domain.Phase) map[domain.PhaseType]*domain.Phase {
	byType := make(map[domain.PhaseType]*domain.Phase, len(phases))
	for i := range phases {
		p := &phases[i]
		if existing, ok := byType[p.PhaseType]; ok && !p.UpdatedAt.After(existing.UpdatedAt) {
			continue
		}
		byType[p.PhaseType] = p
	}
	return byType
}

func latestEstResponse(responses []domain.EstResponse) *domain.EstResponse {
	var latest *domain.EstResponse
	for i := range responses {
		r := &responses[i]
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	return latest
}

package domain

import "time"

// PhaseType represents one approval stage in the vendor workflow
type PhaseType string

const (
	PhaseQuoteConfirmed   PhaseType = "quote_confirmed"
	PhaseBuyNumber        PhaseType = "buy_number"
	PhasePO               PhaseType = "po"
	PhaseSubmittals       PhaseType = "submittals"
	PhaseRevisedPlans     PhaseType = "revised_plans"
	PhaseEquipmentRelease PhaseType = "equipment_release"
	PhaseCloseouts        PhaseType = "closeouts"
)

// PhaseOrder is the fixed workflow ordering, earliest stage first.
// Resolution walks this slice; do not reorder it.
var PhaseOrder = []PhaseType{
	PhaseQuoteConfirmed,
	PhaseBuyNumber,
	PhasePO,
	PhaseSubmittals,
	PhaseRevisedPlans,
	PhaseEquipmentRelease,
	PhaseCloseouts,
}

// Index returns the position of the phase type in the fixed workflow
// ordering, or -1 for an unknown type.
func (p PhaseType) Index() int {
	for i, t := range PhaseOrder {
		if t == p {
			return i
		}
	}
	return -1
}

// IsValid checks if the PhaseType is a valid enum value
func (p PhaseType) IsValid() bool {
	return p.Index() >= 0
}

// PhaseStatus represents the state of a single phase
type PhaseStatus string

const (
	PhaseStatusPending    PhaseStatus = "pending"
	PhaseStatusRequested  PhaseStatus = "requested"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusCompleted  PhaseStatus = "completed"
	PhaseStatusReceived   PhaseStatus = "received"
	PhaseStatusApproved   PhaseStatus = "approved"
)

// IsValid checks if the PhaseStatus is a valid enum value
func (s PhaseStatus) IsValid() bool {
	switch s {
	case PhaseStatusPending, PhaseStatusRequested, PhaseStatusInProgress,
		PhaseStatusCompleted, PhaseStatusReceived, PhaseStatusApproved:
		return true
	}
	return false
}

// statusPriority is the tie-break order used when no single phase is
// unambiguously current: an in-progress phase always wins, then the
// most-advanced phase per status going down this list.
var statusPriority = []PhaseStatus{
	PhaseStatusInProgress,
	PhaseStatusCompleted,
	PhaseStatusReceived,
	PhaseStatusRequested,
	PhaseStatusPending,
}

// ResolveCurrentPhase reduces the phase rows of one project-vendor
// relationship to the single "current" phase and its status.
//
// For each status in priority order, the workflow ordering is walked from
// the last stage backward and the most-advanced phase with that status is
// taken. A phase with an unrecognized status is skipped; if nothing
// matches, the first phase of the input wins. An empty input defaults to
// quote_confirmed / pending.
func ResolveCurrentPhase(phases []Phase) (PhaseType, PhaseStatus) {
	if len(phases) == 0 {
		return PhaseQuoteConfirmed, PhaseStatusPending
	}

	byType := make(map[PhaseType]*Phase, len(phases))
	for i := range phases {
		p := &phases[i]
		if existing, ok := byType[p.PhaseType]; ok {
			// Duplicate rows per type should not exist; prefer the newer one.
			if p.UpdatedAt.After(existing.UpdatedAt) {
				byType[p.PhaseType] = p
			}
			continue
		}
		byType[p.PhaseType] = p
	}

	for _, status := range statusPriority {
		for i := len(PhaseOrder) - 1; i >= 0; i-- {
			if p, ok := byType[PhaseOrder[i]]; ok && p.Status == status {
				return p.PhaseType, p.Status
			}
		}
	}

	return phases[0].PhaseType, phases[0].Status
}

// SyntheticFollowUpDate staggers follow-up dates for pending phases that
// have no explicit one: next day for the first two workflow stages, then
// progressively further out for later stages.
//
// This is a display heuristic inherited from the legacy schema, kept
// byte-for-byte for compatibility. Candidate for removal once the legacy
// consumers stop depending on it.
func SyntheticFollowUpDate(t PhaseType, today time.Time) time.Time {
	idx := t.Index()
	if idx < 0 {
		idx = 0
	}
	days := 1
	if idx > 1 {
		days = (idx-1)*3 + 1
	}
	return today.AddDate(0, 0, days)
}

package domain

// ActivityCycle is the tri-state lifecycle flag tracked per department.
// It replaces the legacy archived/on-hold boolean pair.
type ActivityCycle string

const (
	CycleActive   ActivityCycle = "active"
	CycleOnHold   ActivityCycle = "on_hold"
	CycleArchived ActivityCycle = "archived"
)

// IsValid checks if the ActivityCycle is a valid enum value
func (c ActivityCycle) IsValid() bool {
	switch c {
	case CycleActive, CycleOnHold, CycleArchived:
		return true
	}
	return false
}

// CycleFromFlags converts the legacy boolean pair to the tri-state cycle.
// Archived takes precedence over on-hold when both are set.
func CycleFromFlags(archived, onHold bool) ActivityCycle {
	switch {
	case archived:
		return CycleArchived
	case onHold:
		return CycleOnHold
	default:
		return CycleActive
	}
}

// Flags converts the cycle back to the legacy boolean pair
func (c ActivityCycle) Flags() (archived, onHold bool) {
	switch c {
	case CycleArchived:
		return true, false
	case CycleOnHold:
		return false, true
	default:
		return false, false
	}
}

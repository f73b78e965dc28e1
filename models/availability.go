package models

// AvailabilitySlot is the derived free/busy view for one candidate slot.
// Not persisted.
type AvailabilitySlot struct {
	Date     string          `json:"date"`
	Start    int             `json:"start"`    // minutes from midnight
	Duration int             `json:"duration"` // minutes
	Free     map[string]bool `json:"free"`     // resource id -> free
	// Degraded is set when a busy-interval source failed and the engine
	// fell open to "available" for one or more resources.
	Degraded bool `json:"degraded,omitempty"`
}

// AnyFree reports whether at least one resource is free in the slot.
func (s AvailabilitySlot) AnyFree() bool {
	for _, free := range s.Free {
		if free {
			return true
		}
	}
	return false
}

// ResourceRanges is the compressed display view of a resource's free time.
type ResourceRanges struct {
	ResourceName string   `json:"resource_name"`
	Ranges       []string `json:"ranges"` // e.g. "10:00 - 14:30"
}

// DaySummary is the whole-day availability answer for one resource class.
type DaySummary struct {
	Date     string           `json:"date"`
	Class    ResourceClass    `json:"class"`
	Duration int              `json:"duration"` // minutes the ranges were computed for
	Ranges   []ResourceRanges `json:"ranges"`
	// Fallback is set when the requested duration had zero availability and
	// the summary was recomputed for the fallback duration instead.
	Fallback bool `json:"fallback,omitempty"`
	Degraded bool `json:"degraded,omitempty"`
}

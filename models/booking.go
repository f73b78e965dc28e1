package models

import "time"

// ResourceClass is a category of bookable capacity.
type ResourceClass string

const (
	// ClassBay is a standard multi-occupant simulator bay.
	ClassBay ResourceClass = "bay"
	// ClassSim is the analytics-equipped bay with limited occupancy.
	ClassSim ResourceClass = "sim"
	// ClassCoach is a bookable coach.
	ClassCoach ResourceClass = "coach"
)

// ValidResourceClass reports whether c names a known resource class.
func ValidResourceClass(c ResourceClass) bool {
	switch c {
	case ClassBay, ClassSim, ClassCoach:
		return true
	}
	return false
}

// Resource is one bookable unit of capacity.
type Resource struct {
	ID           string        `bson:"id" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Class        ResourceClass `bson:"class" json:"class"`
	MaxOccupants int           `bson:"maxOccupants" json:"maxOccupants"`
}

// Resources is the venue's fixed resource catalogue.
var Resources = []Resource{
	{ID: "bay-1", Name: "Bay 1", Class: ClassBay, MaxOccupants: 5},
	{ID: "bay-2", Name: "Bay 2", Class: ClassBay, MaxOccupants: 5},
	{ID: "bay-3", Name: "Bay 3", Class: ClassBay, MaxOccupants: 5},
	{ID: "sim-1", Name: "Sim 1", Class: ClassSim, MaxOccupants: 2},
	{ID: "sim-2", Name: "Sim 2", Class: ClassSim, MaxOccupants: 2},
	{ID: "coach-boss", Name: "Coach Boss", Class: ClassCoach, MaxOccupants: 1},
	{ID: "coach-ratchavin", Name: "Coach Ratchavin", Class: ClassCoach, MaxOccupants: 1},
}

// ResourcesByClass returns the catalogue entries for a class, in fixed order.
func ResourcesByClass(class ResourceClass) []Resource {
	var out []Resource
	for _, r := range Resources {
		if r.Class == class {
			out = append(out, r)
		}
	}
	return out
}

// MaxOccupantsFor returns the occupancy cap for a class (0 when unknown).
func MaxOccupantsFor(class ResourceClass) int {
	for _, r := range Resources {
		if r.Class == class {
			return r.MaxOccupants
		}
	}
	return 0
}

// BookingStatus is the lifecycle state of a booking row.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingType distinguishes plain simulator sessions from coaching sessions.
type BookingType string

const (
	TypeSimulator BookingType = "simulator"
	TypeCoaching  BookingType = "coaching"
)

// Booking represents a confirmed booking record.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	CustomerID    string        `bson:"customer_id" json:"customer_id"`
	CustomerName  string        `bson:"customer_name" json:"customer_name"`
	Phone         string        `bson:"phone" json:"phone"`
	Date          string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start         int           `bson:"start" json:"start"`       // minutes from midnight
	Duration      int           `bson:"duration" json:"duration"` // minutes
	ResourceID    string        `bson:"resource_id" json:"resource_id"`
	ResourceClass ResourceClass `bson:"resource_class" json:"resource_class"`
	Occupants     int           `bson:"occupants" json:"occupants"`
	Status        BookingStatus `bson:"status" json:"status"`
	Type          BookingType   `bson:"type" json:"type"`
	CoachName     string        `bson:"coach_name,omitempty" json:"coach_name,omitempty"`
	RateCategory  string        `bson:"rate_category" json:"rate_category"` // package name or "walk-in"
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// End returns the exclusive end minute of the booking.
func (b Booking) End() int { return b.Start + b.Duration }

// BusyInterval is a half-open time range [Start, End) during which a resource
// is already committed on a given date. Source of truth for conflict checks.
type BusyInterval struct {
	ResourceID string `bson:"resource_id" json:"resource_id"`
	Date       string `bson:"date" json:"date"`
	Start      int    `bson:"start" json:"start"`
	End        int    `bson:"end" json:"end"`
}

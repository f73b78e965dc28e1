package models

import "time"

// PackageCategory classifies what an active package can pay for.
type PackageCategory string

const (
	PackageCoaching  PackageCategory = "coaching"
	PackageSimulator PackageCategory = "simulator"
	PackageAny       PackageCategory = "any"
)

// ActivePackage is a customer's usable package at snapshot time.
type ActivePackage struct {
	Name           string          `bson:"name" json:"name"`
	Category       PackageCategory `bson:"category" json:"category"`
	RemainingHours float64         `bson:"remaining_hours" json:"remaining_hours"`
	Unlimited      bool            `bson:"unlimited" json:"unlimited"`
	ExpiresAt      string          `bson:"expires_at" json:"expires_at"` // "YYYY-MM-DD"
}

// CoversCoaching reports whether the package can pay for a coaching session.
func (p ActivePackage) CoversCoaching() bool {
	return p.Category == PackageCoaching || p.Category == PackageAny
}

// CoversSimulator reports whether the package can pay for a bay/sim session.
func (p ActivePackage) CoversSimulator() bool {
	return p.Category == PackageSimulator || p.Category == PackageAny
}

// Customer is the persisted customer record.
type Customer struct {
	ID            string          `bson:"id" json:"id"`
	Name          string          `bson:"name" json:"name"`
	Phone         string          `bson:"phone" json:"phone"`
	Email         string          `bson:"email,omitempty" json:"email,omitempty"`
	TotalVisits   int             `bson:"total_visits" json:"total_visits"`
	LifetimeValue float64         `bson:"lifetime_value" json:"lifetime_value"`
	Packages      []ActivePackage `bson:"packages" json:"packages"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
}

// BookingDigest is the compact booking view carried in customer context.
type BookingDigest struct {
	ID            string        `bson:"id" json:"id"`
	Date          string        `bson:"date" json:"date"`
	Start         int           `bson:"start" json:"start"`
	Duration      int           `bson:"duration" json:"duration"`
	ResourceClass ResourceClass `bson:"resource_class" json:"resource_class"`
	Coaching      bool          `bson:"coaching" json:"coaching"`
	CoachName     string        `bson:"coach_name,omitempty" json:"coach_name,omitempty"`
	Status        BookingStatus `bson:"status" json:"status"`
}

// CustomerProfile is the identified-ness classification used only to steer
// instruction text, never validation.
type CustomerProfile string

const (
	ProfileNew        CustomerProfile = "new customer"
	ProfileIdentified CustomerProfile = "first-time but identified"
	ProfileExisting   CustomerProfile = "existing"
)

// CustomerContext is the read-only customer snapshot assembled per turn.
type CustomerContext struct {
	Customer *Customer       `json:"customer,omitempty"`
	Upcoming []BookingDigest `json:"upcoming"`
	Recent   []BookingDigest `json:"recent"`
	Profile  CustomerProfile `json:"profile"`
}

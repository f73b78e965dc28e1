package models

// ActionName enumerates the capabilities the model may invoke.
type ActionName string

const (
	ActionCheckAvailability ActionName = "check_availability"
	ActionCreateBooking     ActionName = "create_booking"
	ActionModifyBooking     ActionName = "modify_booking"
	ActionCancelBooking     ActionName = "cancel_booking"
	ActionLookupBooking     ActionName = "lookup_booking"
	ActionLookupCustomer    ActionName = "lookup_customer"
)

// Mutating reports whether the action changes booking state. Mutating actions
// never execute without an approved ApprovalRequest.
func (a ActionName) Mutating() bool {
	switch a {
	case ActionCreateBooking, ActionModifyBooking, ActionCancelBooking:
		return true
	}
	return false
}

// ValidAction reports whether a names a known action.
func ValidAction(a ActionName) bool {
	switch a {
	case ActionCheckAvailability, ActionCreateBooking, ActionModifyBooking,
		ActionCancelBooking, ActionLookupBooking, ActionLookupCustomer:
		return true
	}
	return false
}

// FunctionCall is a structured action request produced by the model.
// Params are raw until validated and decoded into the typed per-action
// parameter records below.
type FunctionCall struct {
	Name   ActionName     `bson:"name" json:"name"`
	Params map[string]any `bson:"params" json:"params"`
}

// FunctionResult is the outcome of dispatching one FunctionCall.
type FunctionResult struct {
	Success          bool           `bson:"success" json:"success"`
	Payload          map[string]any `bson:"payload,omitempty" json:"payload,omitempty"`
	Error            string         `bson:"error,omitempty" json:"error,omitempty"`
	RequiresApproval bool           `bson:"requires_approval" json:"requires_approval"`
	ApprovalSummary  string         `bson:"approval_summary,omitempty" json:"approval_summary,omitempty"`
	ApprovalID       string         `bson:"approval_id,omitempty" json:"approval_id,omitempty"`
}

// CheckAvailabilityParams are the validated parameters for check_availability.
type CheckAvailabilityParams struct {
	Date          string        // "YYYY-MM-DD"
	Start         int           // minutes from midnight; -1 when no time requested
	Duration      int           // minutes
	ResourceClass ResourceClass
}

// CreateBookingParams are the validated parameters for create_booking.
type CreateBookingParams struct {
	Date          string
	Start         int
	Duration      int
	ResourceClass ResourceClass
	Occupants     int
	CustomerID    string
	CustomerName  string
	Phone         string
	CoachName     string // non-empty implies a coaching booking
	Notes         string
}

// ModifyBookingParams are the validated parameters for modify_booking.
// Zero values leave the corresponding field untouched.
type ModifyBookingParams struct {
	BookingID string
	Date      string
	Start     int // -1 when unchanged
	Duration  int // 0 when unchanged
	Notes     string
}

// CancelBookingParams are the validated parameters for cancel_booking.
type CancelBookingParams struct {
	BookingID string
	Reason    string
}

// LookupBookingParams are the validated parameters for lookup_booking.
type LookupBookingParams struct {
	BookingID  string
	CustomerID string
	Date       string
}

// LookupCustomerParams are the validated parameters for lookup_customer.
type LookupCustomerParams struct {
	Phone string
	Name  string
}

package models

import "time"

// ApprovalState is the resolution state of an ApprovalRequest.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalDeclined ApprovalState = "declined"
)

// ApprovalRequest is the mandatory human checkpoint for a mutating action.
// Created when a gated FunctionResult carries requires_approval; terminal on
// a staff decision; never auto-resolves.
type ApprovalRequest struct {
	ID             string        `bson:"id" json:"id"`
	ConversationID string        `bson:"conversation_id" json:"conversation_id"`
	Channel        Channel       `bson:"channel" json:"channel"`
	CustomerID     string        `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	Call           FunctionCall  `bson:"call" json:"call"`
	Summary        string        `bson:"summary" json:"summary"`
	State          ApprovalState `bson:"state" json:"state"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	ResolvedAt     *time.Time    `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
	ResolvedBy     string        `bson:"resolved_by,omitempty" json:"resolved_by,omitempty"`
	// BookingID of the committed side effect, set on the execute path.
	BookingID string `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
}

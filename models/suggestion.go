package models

import "time"

// Suggestion is the orchestrator's final output for one customer message,
// persisted for audit and feedback.
type Suggestion struct {
	ID             string         `bson:"id" json:"id"`
	ConversationID string         `bson:"conversation_id" json:"conversation_id"`
	CustomerID     string         `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	MessageText    string         `bson:"message_text" json:"message_text"`
	ResponseText   string         `bson:"response_text" json:"response_text"`
	Confidence     float64        `bson:"confidence" json:"confidence"` // always within [0, 0.95]
	Calls          []FunctionCall `bson:"calls,omitempty" json:"calls,omitempty"`
	ApprovalID     string         `bson:"approval_id,omitempty" json:"approval_id,omitempty"`
	RetrievedIDs   []string       `bson:"retrieved_ids,omitempty" json:"retrieved_ids,omitempty"`
	NeedsHumanHelp bool           `bson:"needs_human_help" json:"needs_human_help"`
	Iterations     int            `bson:"iterations" json:"iterations"`
	LatencyMS      int64          `bson:"latency_ms" json:"latency_ms"`
	Feedback       string         `bson:"feedback,omitempty" json:"feedback,omitempty"` // "accepted" | "edited" | "rejected"
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
}

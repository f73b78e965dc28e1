package models

import "time"

// Exchange is one persisted customer message with its embedding and derived
// metadata, the unit of retrieval-augmented context.
type Exchange struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversation_id"`
	Channel        Channel   `bson:"channel" json:"channel"`
	Content        string    `bson:"content" json:"content"`
	Reply          string    `bson:"reply,omitempty" json:"reply,omitempty"`
	Vector         []float32 `bson:"vector" json:"-"`
	Language       string    `bson:"language" json:"language"` // "th" | "en" | "other"
	Intent         string    `bson:"intent" json:"intent"`     // "booking" | "availability" | "cancellation" | "general"
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// SimilarExchange is a retrieval hit ranked by cosine similarity.
type SimilarExchange struct {
	Exchange
	Score float64 `json:"score"`
}

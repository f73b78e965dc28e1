package models

import "time"

// Channel identifies the messaging platform a conversation lives on.
type Channel string

const (
	ChannelLine      Channel = "line"
	ChannelFacebook  Channel = "facebook"
	ChannelInstagram Channel = "instagram"
	ChannelWebsite   Channel = "website"
)

// ValidChannel reports whether c is a supported messaging channel.
func ValidChannel(c Channel) bool {
	switch c {
	case ChannelLine, ChannelFacebook, ChannelInstagram, ChannelWebsite:
		return true
	}
	return false
}

// Role is the author of a conversation message.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleAssistant Role = "assistant"
	RoleStaff     Role = "staff"
)

// Message is a single prior turn in a conversation.
type Message struct {
	Role      Role      `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ConversationContext is the immutable per-turn view of a conversation.
// It is rebuilt from storage at the start of every orchestration run and
// never mutated by the orchestrator.
type ConversationContext struct {
	ConversationID string    `json:"conversationId"`
	Channel        Channel   `json:"channel"`
	CustomerID     string    `json:"customerId,omitempty"`
	Messages       []Message `json:"messages"`
}

// File: services/assistant/interface.go
package assistant

import (
	"context"
	"time"

	bookingRepo "lengolf/database/repository/booking"
	customerRepo "lengolf/database/repository/customer"
	suggestionRepo "lengolf/database/repository/suggestion"
	"lengolf/models"
	ai "lengolf/services/intelligence"
	"lengolf/services/notification"
	"lengolf/services/retrieval"
)

// DefaultMaxIterations caps completion round-trips per turn.
const DefaultMaxIterations = 5

// IncomingMessage is one customer message entering the orchestrator.
type IncomingMessage struct {
	ConversationID string         `json:"conversationId" binding:"required"`
	Channel        models.Channel `json:"channel" binding:"required"`
	CustomerID     string         `json:"customerId"`
	Text           string         `json:"text" binding:"required"`
}

// AssistantService processes one customer message end to end and returns the
// persisted suggestion describing the outcome.
type AssistantService interface {
	HandleMessage(ctx context.Context, msg IncomingMessage) (*models.Suggestion, error)
}

// DefaultAssistantService implements AssistantService as a bounded
// tool-calling loop around the completion service.
type DefaultAssistantService struct {
	Completion    ai.CompletionClient
	Retrieval     retrieval.RetrievalService
	History       ConversationStore
	Customers     customerRepo.CustomerRepository
	Bookings      bookingRepo.BookingRepository
	Executor      FunctionExecutor
	Suggestions   suggestionRepo.SuggestionRepository
	Notifier      notification.Service
	MaxIterations int
	Now           func() time.Time
	Loc           *time.Location
}

// File: services/assistant/orchestrator.go
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
	"lengolf/utils"

	"go.uber.org/zap"
)

const fallbackReply = "Sorry, I wasn't able to finish handling that. A member of our staff will get back to you shortly."

// NewDefaultAssistantService wires the orchestrator with production defaults.
func NewDefaultAssistantService(
	completion ai.CompletionClient,
	retrievalSvc retrieval.RetrievalService,
	history ConversationStore,
	customers customerRepo.CustomerRepository,
	bookings bookingRepo.BookingRepository,
	executor FunctionExecutor,
	suggestions suggestionRepo.SuggestionRepository,
	notifier notification.Service,
	loc *time.Location,
) *DefaultAssistantService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultAssistantService{
		Completion:    completion,
		Retrieval:     retrievalSvc,
		History:       history,
		Customers:     customers,
		Bookings:      bookings,
		Executor:      executor,
		Suggestions:   suggestions,
		Notifier:      notifier,
		MaxIterations: DefaultMaxIterations,
		Now:           time.Now,
		Loc:           loc,
	}
}

// HandleMessage runs one full orchestration turn: context assembly, the
// bounded model/executor loop, persistence and reply dispatch. The returned
// suggestion always carries a reply text, even on degraded paths.
func (s *DefaultAssistantService) HandleMessage(ctx context.Context, msg IncomingMessage) (*models.Suggestion, error) {
	logger := utils.GetLogger()
	started := s.Now()

	prior, err := s.History.Get(ctx, msg.ConversationID)
	if err != nil {
		logger.Warn("orchestrator: failed to load history, continuing with none",
			zap.String("conversationID", msg.ConversationID), zap.Error(err))
		prior = nil
	}

	custCtx := s.assembleCustomer(ctx, msg.CustomerID)
	exchangeID, similar := s.Retrieval.Retrieve(ctx, msg.ConversationID, msg.Channel, msg.Text)

	conv := models.ConversationContext{
		ConversationID: msg.ConversationID,
		Channel:        msg.Channel,
		CustomerID:     msg.CustomerID,
		Messages:       prior,
	}
	system, chat := AssembleContext(started, s.Loc, conv, custCtx, similar, msg.Text)

	meta := CallMeta{ConversationID: msg.ConversationID, Channel: msg.Channel, CustomerID: msg.CustomerID}
	schemas := toolSchemas()

	var (
		reply            string
		allCalls         []models.FunctionCall
		approvalID       string
		approvalPending  bool
		needsHuman       bool
		successfulRounds int
		iterations       int
	)

loop:
	for iterations = 1; iterations <= s.MaxIterations; iterations++ {
		resp, err := s.Completion.Complete(ctx, ai.ChatRequest{
			System:   system,
			Messages: chat,
			Tools:    schemas,
		})
		if err != nil {
			logger.Error("orchestrator: completion call failed",
				zap.String("conversationID", msg.ConversationID),
				zap.Int("iteration", iterations), zap.Error(err))
			reply = fallbackReply
			needsHuman = true
			break
		}

		if len(resp.ToolCalls) == 0 {
			reply = resp.Text
			break
		}

		chat = append(chat, ai.ChatMessage{Role: ai.ChatModel, Text: resp.Text, ToolCalls: resp.ToolCalls})

		roundOK := true
		for _, call := range resp.ToolCalls {
			allCalls = append(allCalls, call)
			result := s.Executor.Execute(ctx, call, meta)

			if result.RequiresApproval {
				// One approval per turn. Remaining requested actions are
				// dropped, not executed.
				reply = result.ApprovalSummary
				approvalID = result.ApprovalID
				approvalPending = true
				break loop
			}

			if !result.Success {
				roundOK = false
			}
			chat = append(chat, ai.ChatMessage{
				Role:       ai.ChatTool,
				ToolResult: &ai.ToolResult{Name: call.Name, Response: toolResponse(result)},
			})
		}
		if roundOK {
			successfulRounds++
		}
	}

	if iterations > s.MaxIterations {
		iterations = s.MaxIterations
	}
	if reply == "" {
		logger.Warn("orchestrator: iteration ceiling reached without a final reply",
			zap.String("conversationID", msg.ConversationID), zap.Int("ceiling", s.MaxIterations))
		reply = fallbackReply
		needsHuman = true
	}

	confidence := scoreConfidence(successfulRounds, len(similar) > 0, needsHuman)

	suggestion := models.Suggestion{
		ConversationID: msg.ConversationID,
		CustomerID:     msg.CustomerID,
		MessageText:    msg.Text,
		ResponseText:   reply,
		Confidence:     confidence,
		Calls:          allCalls,
		ApprovalID:     approvalID,
		RetrievedIDs:   retrievedIDs(similar),
		NeedsHumanHelp: needsHuman,
		Iterations:     iterations,
		LatencyMS:      s.Now().Sub(started).Milliseconds(),
	}
	if id, err := s.Suggestions.Create(ctx, suggestion); err != nil {
		logger.Error("orchestrator: failed to persist suggestion",
			zap.String("conversationID", msg.ConversationID), zap.Error(err))
	} else {
		suggestion.ID = id
	}

	if err := s.History.Append(ctx, msg.ConversationID,
		models.Message{Role: models.RoleCustomer, Content: msg.Text, Timestamp: started},
		models.Message{Role: models.RoleAssistant, Content: reply, Timestamp: s.Now()},
	); err != nil {
		logger.Warn("orchestrator: failed to append history",
			zap.String("conversationID", msg.ConversationID), zap.Error(err))
	}

	s.Retrieval.RecordReply(ctx, exchangeID, reply)

	// Approval-pending turns hold the customer reply until staff decide; the
	// summary above is staff-facing. Final replies go straight out.
	if !approvalPending && s.Notifier != nil {
		if err := s.Notifier.NotifyCustomer(ctx, msg.Channel, msg.ConversationID, reply); err != nil {
			logger.Warn("orchestrator: reply dispatch failed",
				zap.String("conversationID", msg.ConversationID), zap.Error(err))
		}
	}

	logger.Info("orchestrator: turn complete",
		zap.String("conversationID", msg.ConversationID),
		zap.Int("iterations", iterations),
		zap.Int("toolCalls", len(allCalls)),
		zap.Bool("approvalPending", approvalPending),
		zap.Float64("confidence", confidence))

	return &suggestion, nil
}

// assembleCustomer loads the read-only customer snapshot. Missing or failed
// lookups degrade to the anonymous profile.
func (s *DefaultAssistantService) assembleCustomer(ctx context.Context, customerID string) models.CustomerContext {
	out := models.CustomerContext{Profile: models.ProfileNew}
	if customerID == "" {
		return out
	}

	cust, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		utils.GetLogger().Warn("orchestrator: customer lookup failed",
			zap.String("customerID", customerID), zap.Error(err))
		return out
	}
	out.Customer = cust
	out.Profile = ClassifyProfile(cust)
	if cust == nil {
		return out
	}

	today := s.Now().In(s.Loc).Format("2006-01-02")
	if upcoming, err := s.Bookings.UpcomingByCustomer(ctx, customerID, today, 5); err == nil {
		out.Upcoming = digests(upcoming)
	}
	if recent, err := s.Bookings.RecentByCustomer(ctx, customerID, today, 3); err == nil {
		out.Recent = digests(recent)
	}
	return out
}

func digests(bookings []models.Booking) []models.BookingDigest {
	out := make([]models.BookingDigest, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, models.BookingDigest{
			ID:            b.ID,
			Date:          b.Date,
			Start:         b.Start,
			Duration:      b.Duration,
			ResourceClass: b.ResourceClass,
			Coaching:      b.Type == models.TypeCoaching,
			CoachName:     b.CoachName,
			Status:        b.Status,
		})
	}
	return out
}

func toolResponse(r models.FunctionResult) map[string]any {
	if r.Success {
		if r.Payload != nil {
			return r.Payload
		}
		return map[string]any{"success": true}
	}
	return map[string]any{"success": false, "error": r.Error}
}

func retrievedIDs(similar []models.SimilarExchange) []string {
	if len(similar) == 0 {
		return nil
	}
	ids := make([]string, 0, len(similar))
	for _, s := range similar {
		ids = append(ids, s.ID)
	}
	return ids
}

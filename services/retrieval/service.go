// File: services/retrieval/service.go
package retrieval

import (
	"context"

	exchangeRepo "lengolf/database/repository/exchange"
	"lengolf/models"
	ai "lengolf/services/intelligence"
	"lengolf/utils"

	"go.uber.org/zap"
)

// DefaultMinScore filters retrieval hits below this cosine similarity.
const DefaultMinScore = 0.7

// DefaultK is how many similar exchanges augment the prompt.
const DefaultK = 5

// RetrievalService finds the historical exchanges most similar to an
// incoming message and records the message for future retrieval.
type RetrievalService interface {
	// Retrieve embeds and persists the message, then returns the stored
	// exchange id and the ranked similar exchanges. It never fails the
	// turn: on any collaborator error it returns an empty set.
	Retrieve(ctx context.Context, conversationID string, channel models.Channel, text string) (string, []models.SimilarExchange)
	// RecordReply attaches the assistant's final reply to a stored exchange.
	RecordReply(ctx context.Context, exchangeID, reply string)
}

// DefaultRetrievalService implements RetrievalService.
type DefaultRetrievalService struct {
	Embedder ai.EmbeddingClient
	Repo     exchangeRepo.ExchangeRepository
	K        int
	MinScore float64
}

func NewDefaultRetrievalService(embedder ai.EmbeddingClient, repo exchangeRepo.ExchangeRepository) *DefaultRetrievalService {
	return &DefaultRetrievalService{
		Embedder: embedder,
		Repo:     repo,
		K:        DefaultK,
		MinScore: DefaultMinScore,
	}
}

func (s *DefaultRetrievalService) Retrieve(ctx context.Context, conversationID string, channel models.Channel, text string) (string, []models.SimilarExchange) {
	logger := utils.GetLogger()

	normalized := Normalize(text)
	if normalized == "" {
		return "", nil
	}

	vector, err := s.Embedder.Embed(ctx, normalized)
	if err != nil {
		logger.Warn("retrieval: embedding failed, continuing without RAG context",
			zap.String("conversationID", conversationID), zap.Error(err))
		return "", nil
	}

	exchangeID, err := s.Repo.Upsert(ctx, models.Exchange{
		ConversationID: conversationID,
		Channel:        channel,
		Content:        normalized,
		Vector:         vector,
		Language:       DetectLanguage(normalized),
		Intent:         DetectIntent(normalized),
	})
	if err != nil {
		logger.Warn("retrieval: failed to persist exchange",
			zap.String("conversationID", conversationID), zap.Error(err))
		// Persisting is best effort; ranking can still proceed.
	}

	hits, err := s.Repo.FindSimilar(ctx, vector, s.K, s.MinScore)
	if err != nil {
		logger.Warn("retrieval: similarity query failed",
			zap.String("conversationID", conversationID), zap.Error(err))
		return exchangeID, nil
	}

	// The message we just stored must not retrieve itself.
	filtered := hits[:0]
	for _, h := range hits {
		if h.ID != exchangeID {
			filtered = append(filtered, h)
		}
	}
	return exchangeID, filtered
}

func (s *DefaultRetrievalService) RecordReply(ctx context.Context, exchangeID, reply string) {
	if exchangeID == "" {
		return
	}
	if err := s.Repo.SetReply(ctx, exchangeID, reply); err != nil {
		utils.GetLogger().Warn("retrieval: failed to record reply",
			zap.String("exchangeID", exchangeID), zap.Error(err))
	}
}

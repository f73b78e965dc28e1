// File: database/repository/exchange/interface.go
package exchangeRepo

import (
	"context"

	"lengolf/database"
	"lengolf/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ExchangeRepository interface {
	Upsert(ctx context.Context, ex models.Exchange) (string, error)
	SetReply(ctx context.Context, id, reply string) error
	// FindSimilar ranks stored exchanges against the query vector by cosine
	// similarity, filters below minScore and returns the top k.
	FindSimilar(ctx context.Context, vector []float32, k int, minScore float64) ([]models.SimilarExchange, error)
}

type mongoExchangeRepo struct {
	coll *mongo.Collection
	// candidateWindow caps how many recent exchanges are pulled for
	// in-process ranking.
	candidateWindow int64
}

// NewMongoExchangeRepo constructs a new MongoDB ExchangeRepository.
func NewMongoExchangeRepo() ExchangeRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoExchangeRepo{
		coll:            db.Collection("exchanges"),
		candidateWindow: 2000,
	}
}

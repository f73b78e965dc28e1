// File: database/repository/suggestion/interface.go
package suggestionRepo

import (
	"context"

	"lengolf/database"
	"lengolf/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SuggestionRepository interface {
	Create(ctx context.Context, s models.Suggestion) (string, error)
	GetByID(ctx context.Context, id string) (*models.Suggestion, error)
	SetFeedback(ctx context.Context, id, feedback string) error
}

type mongoSuggestionRepo struct {
	coll *mongo.Collection
}

// NewMongoSuggestionRepo constructs a new MongoDB SuggestionRepository.
func NewMongoSuggestionRepo() SuggestionRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoSuggestionRepo{
		coll: db.Collection("suggestions"),
	}
}

// File: database/repository/approval/interface.go
package approvalRepo

import (
	"context"

	"lengolf/database"
	"lengolf/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ApprovalRepository interface {
	Create(ctx context.Context, req models.ApprovalRequest) (string, error)
	GetByID(ctx context.Context, id string) (*models.ApprovalRequest, error)
	ListByState(ctx context.Context, state models.ApprovalState, limit int) ([]models.ApprovalRequest, error)
	// ResolvePending atomically moves the request from pending to the given
	// terminal state. Returns (request, true) when this call performed the
	// transition, or (current request, false) when it was already resolved.
	ResolvePending(ctx context.Context, id string, state models.ApprovalState, staffID string) (*models.ApprovalRequest, bool, error)
	SetBookingID(ctx context.Context, id, bookingID string) error
}

type mongoApprovalRepo struct {
	coll *mongo.Collection
}

// NewMongoApprovalRepo constructs a new MongoDB ApprovalRepository.
func NewMongoApprovalRepo() ApprovalRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoApprovalRepo{
		coll: db.Collection("approvals"),
	}
}

// File: database/repository/approval/approval_mongo.go
package approvalRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lengolf/models"
)

func (r *mongoApprovalRepo) Create(ctx context.Context, req models.ApprovalRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.State = models.ApprovalPending
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return "", err
	}
	return req.ID, nil
}

func (r *mongoApprovalRepo) GetByID(ctx context.Context, id string) (*models.ApprovalRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.ApprovalRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *mongoApprovalRepo) ListByState(ctx context.Context, state models.ApprovalState, limit int) ([]models.ApprovalRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"state": state}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []models.ApprovalRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ResolvePending uses a conditional FindOneAndUpdate so that exactly one of
// any number of concurrent resolution attempts wins the pending->terminal
// transition.
func (r *mongoApprovalRepo) ResolvePending(ctx context.Context, id string, state models.ApprovalState, staffID string) (*models.ApprovalRequest, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": id, "state": models.ApprovalPending}
	update := bson.M{"$set": bson.M{
		"state":       state,
		"resolved_at": now,
		"resolved_by": staffID,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.ApprovalRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err == nil {
		return &req, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, err
	}

	// Already resolved (or unknown id): return the current row untouched.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (r *mongoApprovalRepo) SetBookingID(ctx context.Context, id, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"booking_id": bookingID}})
	return err
}

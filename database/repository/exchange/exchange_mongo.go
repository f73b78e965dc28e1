// File: database/repository/exchange/exchange_mongo.go
package exchangeRepo

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lengolf/models"
)

func (r *mongoExchangeRepo) Upsert(ctx context.Context, ex models.Exchange) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": ex.ID}, ex, opts); err != nil {
		return "", err
	}
	return ex.ID, nil
}

func (r *mongoExchangeRepo) SetReply(ctx context.Context, id, reply string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"reply": reply}})
	return err
}

func (r *mongoExchangeRepo) FindSimilar(ctx context.Context, vector []float32, k int, minScore float64) ([]models.SimilarExchange, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(r.candidateWindow)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var candidates []models.Exchange
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, err
	}

	hits := make([]models.SimilarExchange, 0, k)
	for _, c := range candidates {
		score := Cosine(vector, c.Vector)
		if score < minScore {
			continue
		}
		hits = append(hits, models.SimilarExchange{Exchange: c, Score: score})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Cosine computes the cosine similarity of two vectors. Mismatched lengths or
// zero vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

const loginHistoryCollection = "login_history"

// LoginHistoryRepository is the append-only login audit trail backing the
// activity leaderboard.
type LoginHistoryRepository struct {
	coll *mongo.Collection
}

func NewLoginHistoryRepository(db *mongo.Database) *LoginHistoryRepository {
	return &LoginHistoryRepository{coll: db.Collection(loginHistoryCollection)}
}

type mongoLoginRecord struct {
	IdentityID string `bson:"identity_id"`
	LoggedInAt int64  `bson:"logged_in_at"`
}

func (r *LoginHistoryRepository) Record(ctx context.Context, rec *domain.LoginRecord) error {
	doc := mongoLoginRecord{
		IdentityID: rec.IdentityID,
		LoggedInAt: rec.LoggedInAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert login record: %w", err)
	}
	return nil
}

func (r *LoginHistoryRepository) TopLogins(ctx context.Context, limit int64) ([]ports.LoginCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$identity_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate login counts: %w", err)
	}
	defer cur.Close(ctx)

	counts := []ports.LoginCount{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode login count: %w", err)
		}
		counts = append(counts, ports.LoginCount{IdentityID: row.ID, Count: row.Count})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("aggregate login counts: %w", err)
	}
	return counts, nil
}

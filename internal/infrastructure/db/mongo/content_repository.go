package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuslink/student-portal/internal/core/domain"
)

const contentCollection = "content_items"

// ContentRepository reads documents from the content store.
type ContentRepository struct {
	coll *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{coll: db.Collection(contentCollection)}
}

type mongoContentItem struct {
	ID       int64  `bson:"_id"`
	TypeTag  string `bson:"type_tag"`
	Title    string `bson:"title"`
	StreamID *int64 `bson:"stream_id,omitempty"`
}

func (r *ContentRepository) FindByID(ctx context.Context, id int64) (*domain.ContentItem, error) {
	var mc mongoContentItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content item: %w", err)
	}
	return &domain.ContentItem{
		ID:       mc.ID,
		TypeTag:  mc.TypeTag,
		Title:    mc.Title,
		StreamID: mc.StreamID,
	}, nil
}

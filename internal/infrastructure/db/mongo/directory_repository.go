package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuslink/student-portal/internal/core/domain"
)

const streamCollection = "streams"

// DirectoryRepository reads the stream vocabulary from Mongo. Categories are
// owned by the directory store; this repository never writes them.
type DirectoryRepository struct {
	coll *mongo.Collection
}

func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{coll: db.Collection(streamCollection)}
}

type mongoCategory struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

func (r *DirectoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	cats := []domain.Category{}
	for cur.Next(ctx) {
		var mc mongoCategory
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		cats = append(cats, domain.Category{ID: mc.ID, Name: mc.Name})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (r *DirectoryRepository) FindByID(ctx context.Context, id int64) (domain.Category, error) {
	var mc mongoCategory
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, fmt.Errorf("find category: %w", err)
	}
	return domain.Category{ID: mc.ID, Name: mc.Name}, nil
}

func (r *DirectoryRepository) FindByName(ctx context.Context, name string) (domain.Category, error) {
	var mc mongoCategory
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, fmt.Errorf("find category by name: %w", err)
	}
	return domain.Category{ID: mc.ID, Name: mc.Name}, nil
}

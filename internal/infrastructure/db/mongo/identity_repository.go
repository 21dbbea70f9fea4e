package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

const identityCollection = "users"

// IdentityRepository is the Mongo-backed identity store.
type IdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(identityCollection)}
}

// EnsureIndexes creates the unique email index that backs the one-account-
// per-email invariant. Call once at startup.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoIdentity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles"`
	Active       bool               `bson:"active"`
	MobileNumber string             `bson:"mobile_number,omitempty"`
	StreamID     *int64             `bson:"stream_id,omitempty"`
	JoiningYear  int                `bson:"joining_year,omitempty"`
	PassingYear  int                `bson:"passing_year,omitempty"`
	StudentID    string             `bson:"student_id,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *IdentityRepository) FindByName(ctx context.Context, name string) ([]*domain.Identity, error) {
	cur, err := r.coll.Find(ctx, bson.M{"name": name})
	if err != nil {
		return nil, fmt.Errorf("find identities by name: %w", err)
	}
	defer cur.Close(ctx)

	var identities []*domain.Identity
	for cur.Next(ctx) {
		var mi mongoIdentity
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode identity: %w", err)
		}
		identities = append(identities, toDomain(&mi))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find identities by name: %w", err)
	}
	return identities, nil
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var mi mongoIdentity
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity by email: %w", err)
	}
	return toDomain(&mi), nil
}

func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}

	var mi mongoIdentity
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity by id: %w", err)
	}
	return toDomain(&mi), nil
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	doc := fromDomain(identity)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	created := *identity
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *IdentityRepository) Save(ctx context.Context, identity *domain.Identity) error {
	oid, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		return domain.ErrIdentityNotFound
	}

	identity.UpdatedAt = time.Now().UTC()
	doc := fromDomain(identity)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *IdentityRepository) ListInactive(ctx context.Context, from, to time.Time) ([]*domain.Identity, error) {
	filter := bson.M{
		"active":     false,
		"created_at": bson.M{"$gte": from.Unix(), "$lte": to.Unix()},
	}
	return r.list(ctx, filter)
}

func (r *IdentityRepository) ListStudents(ctx context.Context, f ports.IdentityFilter) ([]*domain.Identity, error) {
	filter := bson.M{"roles": domain.RoleStudent}
	if f.StreamID != nil {
		filter["stream_id"] = *f.StreamID
	}
	if f.JoiningYear != 0 {
		filter["joining_year"] = f.JoiningYear
	}
	if f.PassingYear != 0 {
		filter["passing_year"] = f.PassingYear
	}
	if f.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Name), Options: "i"}
	}
	return r.list(ctx, filter)
}

func (r *IdentityRepository) list(ctx context.Context, filter bson.M) ([]*domain.Identity, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer cur.Close(ctx)

	identities := []*domain.Identity{}
	for cur.Next(ctx) {
		var mi mongoIdentity
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode identity: %w", err)
		}
		identities = append(identities, toDomain(&mi))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	return identities, nil
}

func toDomain(mi *mongoIdentity) *domain.Identity {
	return &domain.Identity{
		ID:           mi.ID.Hex(),
		Name:         mi.Name,
		Email:        mi.Email,
		PasswordHash: mi.PasswordHash,
		Roles:        mi.Roles,
		Active:       mi.Active,
		MobileNumber: mi.MobileNumber,
		StreamID:     mi.StreamID,
		JoiningYear:  mi.JoiningYear,
		PassingYear:  mi.PassingYear,
		StudentID:    mi.StudentID,
		CreatedAt:    unixToTime(mi.CreatedAt),
		UpdatedAt:    unixToTime(mi.UpdatedAt),
	}
}

func fromDomain(identity *domain.Identity) mongoIdentity {
	return mongoIdentity{
		Name:         identity.Name,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		Roles:        identity.Roles,
		Active:       identity.Active,
		MobileNumber: identity.MobileNumber,
		StreamID:     identity.StreamID,
		JoiningYear:  identity.JoiningYear,
		PassingYear:  identity.PassingYear,
		StudentID:    identity.StudentID,
		CreatedAt:    identity.CreatedAt.Unix(),
		UpdatedAt:    identity.UpdatedAt.Unix(),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

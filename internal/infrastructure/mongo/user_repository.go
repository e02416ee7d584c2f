package mongo

import (
	"context"
	"errors"
	"fmt"

	domain "talentpool/backend/internal/domain/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository persists identities in the user collection.
type UserRepository struct {
	coll *mongo.Collection
}

var _ domain.UserRepository = (*UserRepository)(nil)

// NewUserRepository constructs a repository over db.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

// Create inserts an identity document and returns its ObjectID in hex.
func (r *UserRepository) Create(ctx context.Context, identity *domain.Identity) (string, error) {
	res, err := r.coll.InsertOne(ctx, identity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrEmailExists
		}
		return "", fmt.Errorf("mongo insert user: %w", err)
	}
	return insertedID(res.InsertedID), nil
}

// GetByEmail fetches an identity by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByUUID fetches an identity by identifier.
func (r *UserRepository) GetByUUID(ctx context.Context, id string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"uuid": id})
}

// List returns every identity in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]*domain.Identity, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find users: %w", err)
	}
	users := []*domain.Identity{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongo decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.Identity, error) {
	var u domain.Identity
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return &u, nil
}

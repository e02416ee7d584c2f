package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	domain "talentpool/backend/internal/domain/candidate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CandidateRepository persists candidates in the candidate collection.
type CandidateRepository struct {
	coll *mongo.Collection
}

var _ domain.Repository = (*CandidateRepository)(nil)

// NewCandidateRepository constructs a repository over db.
func NewCandidateRepository(db *mongo.Database) *CandidateRepository {
	return &CandidateRepository{coll: db.Collection(candidateCollection)}
}

// Create inserts a candidate document and returns its ObjectID in hex.
func (r *CandidateRepository) Create(ctx context.Context, c *domain.Candidate) (string, error) {
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return "", fmt.Errorf("mongo insert candidate: %w", err)
	}
	return insertedID(res.InsertedID), nil
}

// GetByUUID fetches a candidate by UUID.
func (r *CandidateRepository) GetByUUID(ctx context.Context, id string) (*domain.Candidate, error) {
	return r.findOne(ctx, bson.M{"UUID": id})
}

// GetByEmail fetches a candidate by email.
func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// Replace overwrites the document stored under id.
func (r *CandidateRepository) Replace(ctx context.Context, id string, c *domain.Candidate) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"UUID": id}, c)
	if err != nil {
		return fmt.Errorf("mongo replace candidate: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a candidate by UUID.
func (r *CandidateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"UUID": id})
	if err != nil {
		return fmt.Errorf("mongo delete candidate: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns every candidate in insertion order.
func (r *CandidateRepository) List(ctx context.Context) ([]*domain.Candidate, error) {
	return r.find(ctx, bson.M{})
}

// Search matches value as a literal, case-insensitive substring of field.
// Array fields such as skills match when any element matches.
func (r *CandidateRepository) Search(ctx context.Context, field domain.SearchField, value string) ([]*domain.Candidate, error) {
	filter := bson.M{
		string(field): primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"},
	}
	return r.find(ctx, filter)
}

func (r *CandidateRepository) find(ctx context.Context, filter bson.M) ([]*domain.Candidate, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find candidates: %w", err)
	}
	items := []*domain.Candidate{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("mongo decode candidates: %w", err)
	}
	return items, nil
}

func (r *CandidateRepository) findOne(ctx context.Context, filter bson.M) (*domain.Candidate, error) {
	var c domain.Candidate
	if err := r.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find candidate: %w", err)
	}
	return &c, nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ballotportal/election-api/internal/core/domain"
)

const collectionCandidates = "candidates"

type CandidateRepository struct {
	col *mongo.Collection
}

func NewCandidateRepository(db *mongo.Database) *CandidateRepository {
	return &CandidateRepository{col: db.Collection(collectionCandidates)}
}

func (r *CandidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (r *CandidateRepository) FindByID(ctx context.Context, id string) (*domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Candidate
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	return &c, nil
}

func (r *CandidateRepository) ListByPeriod(ctx context.Context, periodID string) ([]*domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"period_id": periodID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	out := []*domain.Candidate{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return out, nil
}

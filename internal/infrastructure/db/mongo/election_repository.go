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

const collectionElections = "elections"

type ElectionRepository struct {
	col *mongo.Collection
}

func NewElectionRepository(db *mongo.Database) *ElectionRepository {
	return &ElectionRepository{col: db.Collection(collectionElections)}
}

func (r *ElectionRepository) Create(ctx context.Context, e *domain.Election) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if e.EligibleVoterIDs == nil {
		e.EligibleVoterIDs = []string{}
	}
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrElectionExists
		}
		return fmt.Errorf("insert election: %w", err)
	}
	return nil
}

func (r *ElectionRepository) FindByID(ctx context.Context, electionID string) (*domain.Election, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Election
	if err := r.col.FindOne(ctx, bson.M{"_id": electionID}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrElectionNotFound
		}
		return nil, fmt.Errorf("find election: %w", err)
	}
	return &e, nil
}

func (r *ElectionRepository) List(ctx context.Context) ([]*domain.Election, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list elections: %w", err)
	}
	out := []*domain.Election{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode elections: %w", err)
	}
	return out, nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ballotportal/election-api/internal/core/domain"
)

const collectionPeriods = "voting_periods"

type PeriodRepository struct {
	col *mongo.Collection
}

func NewPeriodRepository(db *mongo.Database) *PeriodRepository {
	return &PeriodRepository{col: db.Collection(collectionPeriods)}
}

func (r *PeriodRepository) Create(ctx context.Context, p *domain.VotingPeriod) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	return nil
}

func (r *PeriodRepository) FindByID(ctx context.Context, id string) (*domain.VotingPeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.VotingPeriod
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, fmt.Errorf("find period: %w", err)
	}
	return &p, nil
}

// List returns every period ordered by start time.
func (r *PeriodRepository) List(ctx context.Context) ([]*domain.VotingPeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	out := []*domain.VotingPeriod{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode periods: %w", err)
	}
	return out, nil
}

// MarkPublished only touches unpublished periods so the first publication
// time is kept.
func (r *PeriodRepository) MarkPublished(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "published": false}
	update := bson.M{"$set": bson.M{"published": true, "published_at": at.UTC()}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("publish period: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ballotportal/election-api/internal/core/domain"
)

const collectionVotes = "votes"

// VoteRepository relies on the unique (period_id, user_id) index created by
// EnsureIndexes.
type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{col: db.Collection(collectionVotes)}
}

func (r *VoteRepository) Create(ctx context.Context, v *domain.Vote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) HasVoted(ctx context.Context, periodID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"period_id": periodID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("count votes: %w", err)
	}
	return n > 0, nil
}

// CountByCandidate groups the period's ballots by candidate.
func (r *VoteRepository) CountByCandidate(ctx context.Context, periodID string) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"period_id": periodID}}},
		{{Key: "$group", Value: bson.M{"_id": "$candidate_id", "votes": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("tally votes: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			CandidateID string `bson:"_id"`
			Votes       int64  `bson:"votes"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode tally: %w", err)
		}
		counts[row.CandidateID] = row.Votes
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("tally votes: %w", err)
	}
	return counts, nil
}

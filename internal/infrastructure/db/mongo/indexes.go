package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every repository in this package relies
// on. It is safe to call repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	plan := map[string][]mongo.IndexModel{
		collectionAccounts: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionPeriods: {
			{Keys: bson.D{{Key: "start_time", Value: 1}}},
			{Keys: bson.D{{Key: "election_id", Value: 1}}},
		},
		collectionCandidates: {
			{Keys: bson.D{{Key: "period_id", Value: 1}}},
		},
		collectionVotes: {
			{Keys: bson.D{{Key: "period_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "period_id", Value: 1}, {Key: "candidate_id", Value: 1}}},
		},
		collectionVoteAudit: {
			{Keys: bson.D{{Key: "vote_id", Value: 1}}},
			{Keys: bson.D{{Key: "period_id", Value: 1}}},
		},
	}

	for coll, models := range plan {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ballotportal/election-api/internal/core/domain"
)

const collectionVoteAudit = "vote_audit"

// AuditRepository appends to the vote_audit collection.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, rec *domain.VoteAuditRecord) error {
	doc := bson.M{
		"vote_id":      rec.VoteID,
		"period_id":    rec.PeriodID,
		"candidate_id": rec.CandidateID,
		"user_id":      rec.UserID,
		"cast_at":      rec.CastAt.UTC(),
		"source":       rec.Source,
		"processed_at": time.Now().UTC(),
	}

	_, err := r.db.Collection(collectionVoteAudit).InsertOne(ctx, doc)
	return err
}

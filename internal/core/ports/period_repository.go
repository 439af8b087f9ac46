package ports

import (
	"context"
	"time"

	"github.com/ballotportal/election-api/internal/core/domain"
)

// PeriodRepository persists voting periods.
type PeriodRepository interface {
	Create(ctx context.Context, period *domain.VotingPeriod) error
	FindByID(ctx context.Context, id string) (*domain.VotingPeriod, error)
	// List returns all periods ordered by start time.
	List(ctx context.Context) ([]*domain.VotingPeriod, error)
	// MarkPublished flags the period's results as published. It is a no-op
	// for a period that is already published.
	MarkPublished(ctx context.Context, id string, at time.Time) error
}

// CandidateRepository persists the candidates of each period.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	FindByID(ctx context.Context, id string) (*domain.Candidate, error)
	ListByPeriod(ctx context.Context, periodID string) ([]*domain.Candidate, error)
}

// VoteRepository persists ballots. The (period, user) pair is unique.
type VoteRepository interface {
	// Create returns domain.ErrAlreadyVoted when the user already voted in the period.
	Create(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, periodID, userID string) (bool, error)
	// CountByCandidate returns vote totals keyed by candidate id.
	CountByCandidate(ctx context.Context, periodID string) (map[string]int64, error)
}

// AuditRepository stores the vote audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, record *domain.VoteAuditRecord) error
}

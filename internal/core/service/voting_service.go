package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/policy"
	"github.com/ballotportal/election-api/internal/core/ports"
	"github.com/ballotportal/election-api/internal/core/session"
)

// VoteGuard abstracts the short-lived vote claim store (Redis). It rejects
// a repeated submission before it reaches the database; the unique index on
// votes stays authoritative.
type VoteGuard interface {
	Claim(ctx context.Context, periodID, userID string) (bool, error)
	Release(ctx context.Context, periodID, userID string) error
}

// AuditSink accepts audit records for asynchronous persistence. Enqueue
// reports false when the record was dropped.
type AuditSink interface {
	Enqueue(record domain.VoteAuditRecord) bool
}

type votingService struct {
	periods    ports.PeriodRepository
	candidates ports.CandidateRepository
	elections  ports.ElectionRepository
	users      ports.UserRepository
	votes      ports.VoteRepository
	guard      VoteGuard
	audit      AuditSink
	log        zerolog.Logger
	now        func() time.Time
}

// NewVotingService returns a VotingService implementation.
func NewVotingService(
	periods ports.PeriodRepository,
	candidates ports.CandidateRepository,
	elections ports.ElectionRepository,
	users ports.UserRepository,
	votes ports.VoteRepository,
	guard VoteGuard,
	audit AuditSink,
	log zerolog.Logger,
) ports.VotingService {
	return &votingService{
		periods:    periods,
		candidates: candidates,
		elections:  elections,
		users:      users,
		votes:      votes,
		guard:      guard,
		audit:      audit,
		log:        log,
		now:        time.Now,
	}
}

// CastVote checks eligibility and timing, stores the ballot and hands an
// audit record to the audit sink.
func (s *votingService) CastVote(ctx context.Context, in ports.CastVoteInput) (*ports.CastVoteResult, error) {
	// 1. Load the period, its election and the voter.
	period, err := s.periods.FindByID(ctx, in.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("cast vote: %w", err)
	}
	election, err := s.elections.FindByID(ctx, period.ElectionID)
	if err != nil {
		return nil, fmt.Errorf("cast vote: %w", err)
	}
	voter, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("cast vote: %w", err)
	}

	// 2. Eligibility and phase.
	now := s.now().UTC()
	if err := policy.CanVote(voter, election, session.Resolve(period.StartTime, period.EndTime, now)); err != nil {
		return nil, err
	}

	// 3. The candidate must stand in this period.
	candidate, err := s.candidates.FindByID(ctx, in.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("cast vote: %w", err)
	}
	if candidate.PeriodID != period.ID {
		return nil, fmt.Errorf("cast vote: %w", domain.ErrCandidateNotFound)
	}

	// 4. Fast-path duplicate rejection. A guard outage is not fatal.
	claimed, err := s.guard.Claim(ctx, period.ID, in.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("period_id", period.ID).Msg("vote guard unavailable, relying on unique index")
	} else if !claimed {
		return nil, domain.ErrAlreadyVoted
	}

	// 5. Persist.
	vote := &domain.Vote{
		ID:          uuid.NewString(),
		PeriodID:    period.ID,
		CandidateID: candidate.ID,
		UserID:      in.UserID,
		CastAt:      now,
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrAlreadyVoted) {
			return nil, err
		}
		if claimed {
			if relErr := s.guard.Release(ctx, period.ID, in.UserID); relErr != nil {
				s.log.Warn().Err(relErr).Str("period_id", period.ID).Msg("failed to release vote claim")
			}
		}
		return nil, fmt.Errorf("cast vote: store: %w", err)
	}

	// 6. Audit trail (asynchronous, non-fatal).
	if !s.audit.Enqueue(domain.VoteAuditRecord{
		VoteID:      vote.ID,
		PeriodID:    vote.PeriodID,
		CandidateID: vote.CandidateID,
		UserID:      vote.UserID,
		CastAt:      vote.CastAt,
		Source:      in.RequestID,
	}) {
		s.log.Warn().Str("vote_id", vote.ID).Msg("audit queue full, record dropped")
	}

	s.log.Info().
		Str("period_id", vote.PeriodID).
		Str("candidate_id", vote.CandidateID).
		Msg("vote cast")

	return &ports.CastVoteResult{
		VoteID:      vote.ID,
		PeriodID:    vote.PeriodID,
		CandidateID: vote.CandidateID,
		CastAt:      vote.CastAt,
	}, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
	"github.com/ballotportal/election-api/internal/core/validate"
)

type ElectionService struct {
	repo   ports.ElectionRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewElectionService(repo ports.ElectionRepository, logger zerolog.Logger) *ElectionService {
	return &ElectionService{repo: repo, logger: logger, now: time.Now}
}

// CreateElection validates a raw election record and stores it.
func (s *ElectionService) CreateElection(ctx context.Context, raw map[string]any) (*domain.Election, error) {
	election, err := validate.BuildElection(raw)
	if err != nil {
		return nil, err
	}
	election.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, election); err != nil {
		if !errors.Is(err, domain.ErrElectionExists) {
			s.logger.Error().Err(err).Str("election_id", election.ElectionID).Msg("failed to create election")
		}
		return nil, err
	}

	s.logger.Info().
		Str("election_id", election.ElectionID).
		Str("scope", string(election.Scope)).
		Msg("election created")
	return election, nil
}

func (s *ElectionService) ListElections(ctx context.Context) ([]*domain.Election, error) {
	return s.repo.List(ctx)
}

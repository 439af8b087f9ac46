package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/policy"
	"github.com/ballotportal/election-api/internal/core/ports"
)

type ResultsService struct {
	periods    ports.PeriodRepository
	candidates ports.CandidateRepository
	elections  ports.ElectionRepository
	users      ports.UserRepository
	votes      ports.VoteRepository
	logger     zerolog.Logger
}

func NewResultsService(
	periods ports.PeriodRepository,
	candidates ports.CandidateRepository,
	elections ports.ElectionRepository,
	users ports.UserRepository,
	votes ports.VoteRepository,
	logger zerolog.Logger,
) *ResultsService {
	return &ResultsService{
		periods:    periods,
		candidates: candidates,
		elections:  elections,
		users:      users,
		votes:      votes,
		logger:     logger,
	}
}

// PublicResults returns the tally of a period if the viewer is allowed to
// see it; otherwise the flags explain why the results list is empty.
func (s *ResultsService) PublicResults(ctx context.Context, viewer ports.Viewer, periodID string) (*ports.ResultsView, error) {
	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("public results: %w", err)
	}

	profile, err := viewerProfile(ctx, s.users, viewer)
	if err != nil {
		return nil, fmt.Errorf("public results: %w", err)
	}
	if !profile.IsAdmin() {
		election, err := s.elections.FindByID(ctx, period.ElectionID)
		if err != nil {
			return nil, fmt.Errorf("public results: %w", err)
		}
		if !policy.CanViewPeriod(profile, election) {
			return nil, domain.ErrForbidden
		}
	}

	participated, err := s.votes.HasVoted(ctx, period.ID, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("public results: %w", err)
	}

	vis := policy.ResultVisibility(profile.Role, period.Published, participated)
	view := &ports.ResultsView{
		PeriodID:        period.ID,
		NoParticipation: vis.NoParticipation,
		Published:       vis.Published,
		Results:         []domain.CandidateResult{},
	}
	if !vis.Visible {
		return view, nil
	}

	if view.Results, err = s.tally(ctx, period.ID); err != nil {
		return nil, fmt.Errorf("public results: %w", err)
	}
	return view, nil
}

// AdminResults returns the full tally regardless of publication.
func (s *ResultsService) AdminResults(ctx context.Context, periodID string) (*ports.ResultsView, error) {
	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("admin results: %w", err)
	}
	results, err := s.tally(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("admin results: %w", err)
	}
	return &ports.ResultsView{PeriodID: period.ID, Published: period.Published, Results: results}, nil
}

// tally joins candidates with their vote counts, most votes first. Candidates
// without votes are listed with zero.
func (s *ResultsService) tally(ctx context.Context, periodID string) ([]domain.CandidateResult, error) {
	candidates, err := s.candidates.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	counts, err := s.votes.CountByCandidate(ctx, periodID)
	if err != nil {
		return nil, err
	}

	results := make([]domain.CandidateResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, domain.CandidateResult{
			CandidateID: c.ID,
			Name:        c.Name,
			LGA:         c.LGA,
			PhotoURL:    c.PhotoURL,
			Votes:       counts[c.ID],
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Votes != results[j].Votes {
			return results[i].Votes > results[j].Votes
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/policy"
	"github.com/ballotportal/election-api/internal/core/ports"
	"github.com/ballotportal/election-api/internal/core/session"
	"github.com/ballotportal/election-api/internal/core/validate"
)

type PeriodService struct {
	periods    ports.PeriodRepository
	candidates ports.CandidateRepository
	elections  ports.ElectionRepository
	users      ports.UserRepository
	logger     zerolog.Logger
	now        func() time.Time
}

func NewPeriodService(
	periods ports.PeriodRepository,
	candidates ports.CandidateRepository,
	elections ports.ElectionRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *PeriodService {
	return &PeriodService{
		periods:    periods,
		candidates: candidates,
		elections:  elections,
		users:      users,
		logger:     logger,
		now:        time.Now,
	}
}

// CreatePeriod opens a voting period for an existing election. The end may
// not precede the start.
func (s *PeriodService) CreatePeriod(ctx context.Context, in ports.CreatePeriodInput) (*ports.PeriodView, error) {
	electionID, err := validate.AsString(in.ElectionID, "electionId")
	if err != nil {
		return nil, err
	}
	title, err := validate.AsString(in.Title, "title")
	if err != nil {
		return nil, err
	}
	if in.StartTime.IsZero() {
		return nil, domain.NewValidationError(domain.CodeMissingField, "startTime is required")
	}
	if in.EndTime.IsZero() {
		return nil, domain.NewValidationError(domain.CodeMissingField, "endTime is required")
	}
	if in.EndTime.Before(in.StartTime) {
		return nil, domain.NewValidationError(domain.CodeInvalidPeriod, "endTime must not be before startTime")
	}

	if _, err := s.elections.FindByID(ctx, electionID); err != nil {
		return nil, fmt.Errorf("create period: %w", err)
	}

	period := &domain.VotingPeriod{
		ID:         uuid.NewString(),
		ElectionID: electionID,
		Title:      title,
		StartTime:  in.StartTime.UTC(),
		EndTime:    in.EndTime.UTC(),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.periods.Create(ctx, period); err != nil {
		s.logger.Error().Err(err).Str("election_id", electionID).Msg("failed to create period")
		return nil, err
	}

	s.logger.Info().Str("period_id", period.ID).Str("election_id", electionID).Msg("voting period created")
	view := s.view(period)
	return &view, nil
}

// ListVisiblePeriods returns the periods the viewer may see, each with its
// current timing.
func (s *PeriodService) ListVisiblePeriods(ctx context.Context, viewer ports.Viewer) ([]ports.PeriodView, error) {
	profile, err := viewerProfile(ctx, s.users, viewer)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}

	periods, err := s.periods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}

	elections := make(map[string]*domain.Election)
	out := make([]ports.PeriodView, 0, len(periods))
	for _, p := range periods {
		election, ok := elections[p.ElectionID]
		if !ok {
			election, err = s.elections.FindByID(ctx, p.ElectionID)
			if err != nil {
				if !errors.Is(err, domain.ErrElectionNotFound) {
					return nil, fmt.Errorf("list periods: %w", err)
				}
				s.logger.Warn().Str("period_id", p.ID).Str("election_id", p.ElectionID).Msg("period references unknown election")
			}
			elections[p.ElectionID] = election
		}
		if election == nil || !policy.CanViewPeriod(profile, election) {
			continue
		}
		out = append(out, s.view(p))
	}
	return out, nil
}

// GetPeriod returns a single visible period with its timing.
func (s *PeriodService) GetPeriod(ctx context.Context, viewer ports.Viewer, periodID string) (*ports.PeriodView, error) {
	period, err := s.visiblePeriod(ctx, viewer, periodID)
	if err != nil {
		return nil, err
	}
	view := s.view(period)
	return &view, nil
}

// AddCandidate registers a candidate on an existing period.
func (s *PeriodService) AddCandidate(ctx context.Context, in ports.AddCandidateInput) (*domain.Candidate, error) {
	name, err := validate.AsString(in.Name, "name")
	if err != nil {
		return nil, err
	}
	lga, err := validate.AsString(in.LGA, "lga")
	if err != nil {
		return nil, err
	}
	photo, err := validate.AsString(in.PhotoURL, "photoUrl")
	if err != nil {
		return nil, err
	}
	if !validate.IsHTTPURL(photo) {
		return nil, domain.NewValidationError(domain.CodeURLValidationFailed, "photoUrl must be a valid http(s) URL")
	}

	if _, err := s.periods.FindByID(ctx, in.PeriodID); err != nil {
		return nil, fmt.Errorf("add candidate: %w", err)
	}

	candidate := &domain.Candidate{
		ID:        uuid.NewString(),
		PeriodID:  in.PeriodID,
		Name:      name,
		LGA:       lga,
		PhotoURL:  photo,
		CreatedAt: s.now().UTC(),
	}
	if err := s.candidates.Create(ctx, candidate); err != nil {
		s.logger.Error().Err(err).Str("period_id", in.PeriodID).Msg("failed to create candidate")
		return nil, err
	}

	s.logger.Info().Str("period_id", in.PeriodID).Str("candidate_id", candidate.ID).Msg("candidate added")
	return candidate, nil
}

// ListCandidates returns the candidates of a period visible to the viewer.
func (s *PeriodService) ListCandidates(ctx context.Context, viewer ports.Viewer, periodID string) ([]*domain.Candidate, error) {
	if _, err := s.visiblePeriod(ctx, viewer, periodID); err != nil {
		return nil, err
	}
	return s.candidates.ListByPeriod(ctx, periodID)
}

// PublishResults makes a closed period's results visible to participants.
// Publishing an already published period returns it unchanged.
func (s *PeriodService) PublishResults(ctx context.Context, periodID string) (*ports.PeriodView, error) {
	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("publish results: %w", err)
	}

	if !period.Published {
		now := s.now().UTC()
		if session.Resolve(period.StartTime, period.EndTime, now).Phase != session.PhaseClosed {
			return nil, domain.ErrPeriodNotClosed
		}
		if err := s.periods.MarkPublished(ctx, periodID, now); err != nil {
			return nil, fmt.Errorf("publish results: %w", err)
		}
		period.Published = true
		period.PublishedAt = &now
		s.logger.Info().Str("period_id", periodID).Msg("results published")
	}

	view := s.view(period)
	return &view, nil
}

func (s *PeriodService) visiblePeriod(ctx context.Context, viewer ports.Viewer, periodID string) (*domain.VotingPeriod, error) {
	if strings.TrimSpace(periodID) == "" {
		return nil, domain.NewValidationError(domain.CodeMissingField, "periodId is required")
	}
	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	profile, err := viewerProfile(ctx, s.users, viewer)
	if err != nil {
		return nil, err
	}
	if profile.IsAdmin() {
		return period, nil
	}
	election, err := s.elections.FindByID(ctx, period.ElectionID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewPeriod(profile, election) {
		return nil, domain.ErrForbidden
	}
	return period, nil
}

func (s *PeriodService) view(p *domain.VotingPeriod) ports.PeriodView {
	timing := session.Resolve(p.StartTime, p.EndTime, s.now())
	return ports.PeriodView{
		ID:          p.ID,
		ElectionID:  p.ElectionID,
		Title:       p.Title,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Published:   p.Published,
		Phase:       string(timing.Phase),
		CountdownMs: timing.CountdownMs,
		Countdown:   session.FormatCountdown(timing.CountdownMs),
	}
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
	"github.com/ballotportal/election-api/internal/core/validate"
)

type ProfileService struct {
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProfileService(users ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger, now: time.Now}
}

// SaveProfile validates a raw profile record and upserts it.
func (s *ProfileService) SaveProfile(ctx context.Context, raw map[string]any) (*domain.UserProfile, error) {
	profile, err := validate.BuildUserProfile(raw)
	if err != nil {
		return nil, err
	}
	profile.UpdatedAt = s.now().UTC()

	if err := s.users.Upsert(ctx, profile); err != nil {
		s.logger.Error().Err(err).Str("user_id", profile.UserID).Msg("failed to save profile")
		return nil, err
	}

	s.logger.Info().Str("user_id", profile.UserID).Str("role", profile.Role).Msg("profile saved")
	return profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.users.FindByID(ctx, userID)
}

package service

import (
	"context"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

// viewerProfile returns the profile the access policy is evaluated against.
// Administrators need no stored profile.
func viewerProfile(ctx context.Context, users ports.UserRepository, viewer ports.Viewer) (*domain.UserProfile, error) {
	if viewer.IsAdmin() {
		return &domain.UserProfile{UserID: viewer.UserID, Role: domain.RoleAdmin}, nil
	}
	profile, err := users.FindByID(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	scoped := *profile
	scoped.Role = domain.RoleUser
	return &scoped, nil
}

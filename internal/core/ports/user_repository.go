package ports

import (
	"context"

	"github.com/ballotportal/election-api/internal/core/domain"
)

// AccountRepository persists login credentials. Usernames are unique and
// double as the profile userId.
type AccountRepository interface {
	// Create returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// FindByUsername returns domain.ErrUserNotFound for an unknown username.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// UserRepository persists voter profiles keyed by userId.
type UserRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	FindByID(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// ElectionRepository persists elections keyed by electionId.
type ElectionRepository interface {
	// Create returns domain.ErrElectionExists when the id is taken.
	Create(ctx context.Context, election *domain.Election) error
	FindByID(ctx context.Context, electionID string) (*domain.Election, error)
	List(ctx context.Context) ([]*domain.Election, error)
}

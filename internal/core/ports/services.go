package ports

import (
	"context"
	"time"

	"github.com/ballotportal/election-api/internal/core/domain"
)

// Viewer identifies who is asking. Role is the role the request is served
// under, which for an administrator looking at a user's view is "user".
type Viewer struct {
	UserID string
	Role   string
}

func (v Viewer) IsAdmin() bool { return v.Role == domain.RoleAdmin }

// AuthService issues and checks credentials. Login returns a signed JWT whose
// subject is the username.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}

// ProfileService manages voter profiles from raw request records.
type ProfileService interface {
	SaveProfile(ctx context.Context, raw map[string]any) (*domain.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// ElectionService manages elections from raw request records.
type ElectionService interface {
	CreateElection(ctx context.Context, raw map[string]any) (*domain.Election, error)
	ListElections(ctx context.Context) ([]*domain.Election, error)
}

// CreatePeriodInput carries the data needed to open a new voting period.
type CreatePeriodInput struct {
	ElectionID string
	Title      string
	StartTime  time.Time
	EndTime    time.Time
}

// AddCandidateInput carries the data needed to register a candidate.
type AddCandidateInput struct {
	PeriodID string
	Name     string
	LGA      string
	PhotoURL string
}

// PeriodView is a period together with its timing at the moment of the query.
type PeriodView struct {
	ID          string
	ElectionID  string
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	Published   bool
	Phase       string
	CountdownMs int64
	Countdown   string
}

// PeriodService covers the voting-period lifecycle.
type PeriodService interface {
	CreatePeriod(ctx context.Context, input CreatePeriodInput) (*PeriodView, error)
	ListVisiblePeriods(ctx context.Context, viewer Viewer) ([]PeriodView, error)
	GetPeriod(ctx context.Context, viewer Viewer, periodID string) (*PeriodView, error)
	AddCandidate(ctx context.Context, input AddCandidateInput) (*domain.Candidate, error)
	ListCandidates(ctx context.Context, viewer Viewer, periodID string) ([]*domain.Candidate, error)
	PublishResults(ctx context.Context, periodID string) (*PeriodView, error)
}

// CastVoteInput is a single ballot submission.
type CastVoteInput struct {
	PeriodID    string
	CandidateID string
	UserID      string
	// RequestID is recorded in the audit trail as the vote's source.
	RequestID string
}

// CastVoteResult is returned once a ballot is stored.
type CastVoteResult struct {
	VoteID      string
	PeriodID    string
	CandidateID string
	CastAt      time.Time
}

// VotingService accepts ballots.
type VotingService interface {
	CastVote(ctx context.Context, input CastVoteInput) (*CastVoteResult, error)
}

// ResultsView is the results payload consumed by the results pages.
type ResultsView struct {
	PeriodID        string
	NoParticipation bool
	Published       bool
	Results         []domain.CandidateResult
}

// ResultsService applies the result-visibility policy.
type ResultsService interface {
	PublicResults(ctx context.Context, viewer Viewer, periodID string) (*ResultsView, error)
	AdminResults(ctx context.Context, periodID string) (*ResultsView, error)
}

// AuditService writes vote audit records; called from the audit dispatcher.
type AuditService interface {
	Record(ctx context.Context, record domain.VoteAuditRecord) error
}

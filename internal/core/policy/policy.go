// Package policy decides which voting periods and results a user may see and
// whether a ballot may be cast.
package policy

import (
	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/session"
)

// IsEligible reports whether user may take part in election, either through
// region (national, matching state, matching local government) or through an
// explicit registration on either side.
func IsEligible(user *domain.UserProfile, election *domain.Election) bool {
	if user == nil || election == nil {
		return false
	}
	if election.HasEligibleVoter(user.UserID) || user.IsRegisteredFor(election.ElectionID) {
		return true
	}
	switch election.Scope {
	case domain.ScopeNational:
		return true
	case domain.ScopeState:
		return domain.SameRegion(user.State, election.State)
	case domain.ScopeLocalGovernment:
		return domain.SameRegion(user.LocalGovernment, election.LocalGovernment)
	}
	return false
}

// CanViewPeriod reports whether user may list a period of election.
// Administrators see every period.
func CanViewPeriod(user *domain.UserProfile, election *domain.Election) bool {
	return user.IsAdmin() || IsEligible(user, election)
}

// CanVote returns nil when user may cast a ballot now, or the reason not.
func CanVote(user *domain.UserProfile, election *domain.Election, timing session.Timing) error {
	if !IsEligible(user, election) {
		return domain.ErrNotEligible
	}
	if election.Status == domain.ElectionClosed {
		return domain.ErrElectionClosed
	}
	if timing.Phase != session.PhaseLive {
		return domain.ErrPeriodNotLive
	}
	return nil
}

// Visibility describes what a viewer gets back from the results endpoint.
type Visibility struct {
	NoParticipation bool
	Published       bool
	Visible         bool
}

// ResultVisibility applies the result policy: administrators always see the
// tally; everybody else only once they voted in the period and the results
// were published.
func ResultVisibility(role string, published, participated bool) Visibility {
	if role == domain.RoleAdmin {
		return Visibility{Published: published, Visible: true}
	}
	return Visibility{
		NoParticipation: !participated,
		Published:       published,
		Visible:         participated && published,
	}
}

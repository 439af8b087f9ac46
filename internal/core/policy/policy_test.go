package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/session"
)

func voter() *domain.UserProfile {
	return &domain.UserProfile{
		UserID:          "u-1",
		State:           "Lagos",
		LocalGovernment: "Ikeja",
		Role:            domain.RoleUser,
	}
}

func TestIsEligible(t *testing.T) {
	cases := []struct {
		name     string
		election domain.Election
		want     bool
	}{
		{"national", domain.Election{ElectionID: "e", Scope: domain.ScopeNational}, true},
		{"same state", domain.Election{ElectionID: "e", Scope: domain.ScopeState, State: " lagos "}, true},
		{"other state", domain.Election{ElectionID: "e", Scope: domain.ScopeState, State: "Kano"}, false},
		{"same lga", domain.Election{ElectionID: "e", Scope: domain.ScopeLocalGovernment, LocalGovernment: "IKEJA"}, true},
		{"other lga", domain.Election{ElectionID: "e", Scope: domain.ScopeLocalGovernment, LocalGovernment: "Epe"}, false},
		{"listed voter", domain.Election{ElectionID: "e", Scope: domain.ScopeState, State: "Kano", EligibleVoterIDs: []string{"u-1"}}, true},
		{"registered election", domain.Election{ElectionID: "reg", Scope: domain.ScopeState, State: "Kano"}, true},
	}

	user := voter()
	user.RegisteredElections = []string{"reg"}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.election
			assert.Equal(t, tc.want, IsEligible(user, &e))
		})
	}

	assert.False(t, IsEligible(nil, &domain.Election{Scope: domain.ScopeNational}))
	assert.False(t, IsEligible(user, nil))
}

func TestIsEligible_EmptyRegionNeverMatches(t *testing.T) {
	user := voter()
	user.State = ""
	assert.False(t, IsEligible(user, &domain.Election{Scope: domain.ScopeState, State: ""}))
}

func TestCanViewPeriod(t *testing.T) {
	kano := &domain.Election{ElectionID: "e", Scope: domain.ScopeState, State: "Kano"}

	assert.False(t, CanViewPeriod(voter(), kano))

	admin := voter()
	admin.Role = domain.RoleAdmin
	assert.True(t, CanViewPeriod(admin, kano))
}

func TestCanViewPeriod_IndependentOfParticipation(t *testing.T) {
	lagos := &domain.Election{ElectionID: "gov-lagos", Scope: domain.ScopeState, State: "Lagos"}
	u := voter()

	// The voter has not voted yet: the period is listed, the tally is not.
	assert.True(t, CanViewPeriod(u, lagos))
	v := ResultVisibility(u.Role, true, false)
	assert.False(t, v.Visible)
	assert.True(t, v.NoParticipation)
}

func TestCanVote(t *testing.T) {
	live := session.Timing{Phase: session.PhaseLive, CountdownMs: 10}
	open := &domain.Election{ElectionID: "e", Scope: domain.ScopeNational, Status: domain.ElectionOpen}

	assert.NoError(t, CanVote(voter(), open, live))
	assert.ErrorIs(t, CanVote(voter(), open, session.Timing{Phase: session.PhaseUpcoming}), domain.ErrPeriodNotLive)
	assert.ErrorIs(t, CanVote(voter(), open, session.Timing{Phase: session.PhaseClosed}), domain.ErrPeriodNotLive)

	closedElection := *open
	closedElection.Status = domain.ElectionClosed
	assert.ErrorIs(t, CanVote(voter(), &closedElection, live), domain.ErrElectionClosed)

	kano := &domain.Election{ElectionID: "k", Scope: domain.ScopeState, State: "Kano", Status: domain.ElectionOpen}
	assert.ErrorIs(t, CanVote(voter(), kano, live), domain.ErrNotEligible)
}

func TestResultVisibility(t *testing.T) {
	assert.Equal(t, Visibility{NoParticipation: true, Published: true}, ResultVisibility(domain.RoleUser, true, false))
	assert.Equal(t, Visibility{Published: false}, ResultVisibility(domain.RoleUser, false, true))
	assert.Equal(t, Visibility{Published: true, Visible: true}, ResultVisibility(domain.RoleUser, true, true))
	assert.Equal(t, Visibility{Published: false, Visible: true}, ResultVisibility(domain.RoleAdmin, false, false))
}

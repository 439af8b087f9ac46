package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

// fixedNow is the reference instant for every service test.
var fixedNow = time.Date(2027, 2, 18, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type stubUserRepo struct {
	users     map[string]*domain.UserProfile
	upsertErr error
}

func newStubUserRepo(profiles ...*domain.UserProfile) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.UserProfile)}
	for _, p := range profiles {
		r.users[p.UserID] = p
	}
	return r
}

func (r *stubUserRepo) Upsert(_ context.Context, p *domain.UserProfile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	clone := *p
	r.users[p.UserID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.UserProfile, error) {
	p, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *p
	return &clone, nil
}

type stubElectionRepo struct {
	elections map[string]*domain.Election
}

func newStubElectionRepo(elections ...*domain.Election) *stubElectionRepo {
	r := &stubElectionRepo{elections: make(map[string]*domain.Election)}
	for _, e := range elections {
		r.elections[e.ElectionID] = e
	}
	return r
}

func (r *stubElectionRepo) Create(_ context.Context, e *domain.Election) error {
	if _, ok := r.elections[e.ElectionID]; ok {
		return domain.ErrElectionExists
	}
	clone := *e
	r.elections[e.ElectionID] = &clone
	return nil
}

func (r *stubElectionRepo) FindByID(_ context.Context, id string) (*domain.Election, error) {
	e, ok := r.elections[id]
	if !ok {
		return nil, domain.ErrElectionNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubElectionRepo) List(_ context.Context) ([]*domain.Election, error) {
	out := make([]*domain.Election, 0, len(r.elections))
	for _, e := range r.elections {
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ElectionID < out[j].ElectionID })
	return out, nil
}

type stubPeriodRepo struct {
	periods      map[string]*domain.VotingPeriod
	publishCalls int
}

func newStubPeriodRepo(periods ...*domain.VotingPeriod) *stubPeriodRepo {
	r := &stubPeriodRepo{periods: make(map[string]*domain.VotingPeriod)}
	for _, p := range periods {
		r.periods[p.ID] = p
	}
	return r
}

func (r *stubPeriodRepo) Create(_ context.Context, p *domain.VotingPeriod) error {
	clone := *p
	r.periods[p.ID] = &clone
	return nil
}

func (r *stubPeriodRepo) FindByID(_ context.Context, id string) (*domain.VotingPeriod, error) {
	p, ok := r.periods[id]
	if !ok {
		return nil, domain.ErrPeriodNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPeriodRepo) List(_ context.Context) ([]*domain.VotingPeriod, error) {
	out := make([]*domain.VotingPeriod, 0, len(r.periods))
	for _, p := range r.periods {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *stubPeriodRepo) MarkPublished(_ context.Context, id string, at time.Time) error {
	p, ok := r.periods[id]
	if !ok {
		return domain.ErrPeriodNotFound
	}
	r.publishCalls++
	p.Published = true
	p.PublishedAt = &at
	return nil
}

type stubCandidateRepo struct {
	candidates map[string]*domain.Candidate
}

func newStubCandidateRepo(candidates ...*domain.Candidate) *stubCandidateRepo {
	r := &stubCandidateRepo{candidates: make(map[string]*domain.Candidate)}
	for _, c := range candidates {
		r.candidates[c.ID] = c
	}
	return r
}

func (r *stubCandidateRepo) Create(_ context.Context, c *domain.Candidate) error {
	clone := *c
	r.candidates[c.ID] = &clone
	return nil
}

func (r *stubCandidateRepo) FindByID(_ context.Context, id string) (*domain.Candidate, error) {
	c, ok := r.candidates[id]
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCandidateRepo) ListByPeriod(_ context.Context, periodID string) ([]*domain.Candidate, error) {
	var out []*domain.Candidate
	for _, c := range r.candidates {
		if c.PeriodID == periodID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubVoteRepo struct {
	votes     []*domain.Vote
	createErr error
}

func (r *stubVoteRepo) Create(_ context.Context, v *domain.Vote) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.votes {
		if existing.PeriodID == v.PeriodID && existing.UserID == v.UserID {
			return domain.ErrAlreadyVoted
		}
	}
	clone := *v
	r.votes = append(r.votes, &clone)
	return nil
}

func (r *stubVoteRepo) HasVoted(_ context.Context, periodID, userID string) (bool, error) {
	for _, v := range r.votes {
		if v.PeriodID == periodID && v.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubVoteRepo) CountByCandidate(_ context.Context, periodID string) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, v := range r.votes {
		if v.PeriodID == periodID {
			counts[v.CandidateID]++
		}
	}
	return counts, nil
}

type stubGuard struct {
	claimed  map[string]bool
	claimErr error
	released []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{claimed: make(map[string]bool)}
}

func (g *stubGuard) Claim(_ context.Context, periodID, userID string) (bool, error) {
	if g.claimErr != nil {
		return false, g.claimErr
	}
	key := periodID + ":" + userID
	if g.claimed[key] {
		return false, nil
	}
	g.claimed[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, periodID, userID string) error {
	key := periodID + ":" + userID
	delete(g.claimed, key)
	g.released = append(g.released, key)
	return nil
}

type stubAuditSink struct {
	mu      sync.Mutex
	records []domain.VoteAuditRecord
	full    bool
}

func (s *stubAuditSink) Enqueue(r domain.VoteAuditRecord) bool {
	if s.full {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return true
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func lagosVoter(id string) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:          id,
		Name:            "Voter " + id,
		ProfilePicture:  "https://img.example.com/" + id + ".png",
		State:           "Lagos",
		LocalGovernment: "Ikeja",
		Role:            domain.RoleUser,
	}
}

func kanoVoter(id string) *domain.UserProfile {
	p := lagosVoter(id)
	p.State = "Kano"
	p.LocalGovernment = "Nassarawa"
	return p
}

func lagosElection() *domain.Election {
	return &domain.Election{ElectionID: "gov-lagos", Scope: domain.ScopeState, State: "Lagos", Status: domain.ElectionOpen}
}

// periodAt builds a period starting at start and lasting d.
func periodAt(id, electionID string, start time.Time, d time.Duration) *domain.VotingPeriod {
	return &domain.VotingPeriod{
		ID:         id,
		ElectionID: electionID,
		Title:      "Period " + id,
		StartTime:  start,
		EndTime:    start.Add(d),
	}
}

package domain

import "time"

// VotingPeriod is a time-bounded voting window attached to an election.
type VotingPeriod struct {
	ID          string     `json:"id" bson:"_id"`
	ElectionID  string     `json:"electionId" bson:"election_id"`
	Title       string     `json:"title" bson:"title"`
	StartTime   time.Time  `json:"startTime" bson:"start_time"`
	EndTime     time.Time  `json:"endTime" bson:"end_time"`
	Published   bool       `json:"published" bson:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" bson:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
}

// Candidate stands in a voting period.
type Candidate struct {
	ID        string    `json:"id" bson:"_id"`
	PeriodID  string    `json:"periodId" bson:"period_id"`
	Name      string    `json:"name" bson:"name"`
	LGA       string    `json:"lga" bson:"lga"`
	PhotoURL  string    `json:"photoUrl" bson:"photo_url"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Vote is a single ballot. A user holds at most one vote per period.
type Vote struct {
	ID          string    `json:"id" bson:"_id"`
	PeriodID    string    `json:"periodId" bson:"period_id"`
	CandidateID string    `json:"candidateId" bson:"candidate_id"`
	UserID      string    `json:"userId" bson:"user_id"`
	CastAt      time.Time `json:"castAt" bson:"cast_at"`
}

// VoteAuditRecord is the append-only trail entry written after a vote is stored.
type VoteAuditRecord struct {
	VoteID      string
	PeriodID    string
	CandidateID string
	UserID      string
	CastAt      time.Time
	Source      string
}

// CandidateResult is one row of a tally.
type CandidateResult struct {
	CandidateID string `json:"-"`
	Name        string `json:"name"`
	LGA         string `json:"lga"`
	PhotoURL    string `json:"photoUrl"`
	Votes       int64  `json:"votes"`
}

package handler

import (
	"time"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token   string          `json:"token,omitempty"`
	Account *domain.Account `json:"user,omitempty"`
}

// --- Periods ---

type createPeriodRequest struct {
	ElectionID string `json:"electionId" validate:"required"`
	Title      string `json:"title"      validate:"required,max=200"`
	StartTime  string `json:"startTime"  validate:"required"`
	EndTime    string `json:"endTime"    validate:"required"`
}

type addCandidateRequest struct {
	Name     string `json:"name"     validate:"required,max=200"`
	LGA      string `json:"lga"      validate:"required"`
	PhotoURL string `json:"photoUrl" validate:"required"`
}

type timingResponse struct {
	Phase       string `json:"phase"`
	CountdownMs int64  `json:"countdownMs"`
	Countdown   string `json:"countdown"`
}

type periodResponse struct {
	ID         string         `json:"id"`
	ElectionID string         `json:"electionId"`
	Title      string         `json:"title"`
	StartTime  time.Time      `json:"startTime"`
	EndTime    time.Time      `json:"endTime"`
	Published  bool           `json:"published"`
	Timing     timingResponse `json:"timing"`
}

func toPeriodResponse(v ports.PeriodView) periodResponse {
	return periodResponse{
		ID:         v.ID,
		ElectionID: v.ElectionID,
		Title:      v.Title,
		StartTime:  v.StartTime,
		EndTime:    v.EndTime,
		Published:  v.Published,
		Timing:     toTimingResponse(v),
	}
}

func toTimingResponse(v ports.PeriodView) timingResponse {
	return timingResponse{Phase: v.Phase, CountdownMs: v.CountdownMs, Countdown: v.Countdown}
}

// --- Votes ---

type castVoteRequest struct {
	PeriodID    string `json:"periodId"    validate:"required"`
	CandidateID string `json:"candidateId" validate:"required"`
}

type voteResponse struct {
	VoteID      string    `json:"voteId"`
	PeriodID    string    `json:"periodId"`
	CandidateID string    `json:"candidateId"`
	CastAt      time.Time `json:"castAt"`
}

// --- Results ---

type resultsResponse struct {
	NoParticipation bool                     `json:"noParticipation"`
	Published       bool                     `json:"published"`
	Results         []domain.CandidateResult `json:"results"`
}

func toResultsResponse(v *ports.ResultsView) resultsResponse {
	results := v.Results
	if results == nil {
		results = []domain.CandidateResult{}
	}
	return resultsResponse{NoParticipation: v.NoParticipation, Published: v.Published, Results: results}
}

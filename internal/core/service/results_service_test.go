package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

func newResultsSvc(published bool) *ResultsService {
	period := periodAt("done", "gov-lagos", fixedNow.Add(-3*time.Hour), time.Hour)
	period.Published = published
	candidates := newStubCandidateRepo(
		&domain.Candidate{ID: "c-1", PeriodID: "done", Name: "Tunde", LGA: "Ikeja"},
		&domain.Candidate{ID: "c-2", PeriodID: "done", Name: "Amaka", LGA: "Epe"},
		&domain.Candidate{ID: "c-3", PeriodID: "done", Name: "Bola", LGA: "Badagry"},
		&domain.Candidate{ID: "c-4", PeriodID: "done", Name: "Zainab", LGA: "Ikorodu"},
	)
	votes := &stubVoteRepo{votes: []*domain.Vote{
		{ID: "v1", PeriodID: "done", CandidateID: "c-1", UserID: "voter"},
		{ID: "v2", PeriodID: "done", CandidateID: "c-1", UserID: "u2"},
		{ID: "v3", PeriodID: "done", CandidateID: "c-3", UserID: "u3"},
		{ID: "v4", PeriodID: "done", CandidateID: "c-2", UserID: "u4"},
	}}
	return NewResultsService(
		newStubPeriodRepo(period),
		candidates,
		newStubElectionRepo(lagosElection()),
		newStubUserRepo(lagosVoter("voter"), lagosVoter("bystander"), kanoVoter("kanoan")),
		votes,
		discardLogger,
	)
}

func resultNames(results []domain.CandidateResult) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	return names
}

func TestResultsService_PublicResults_Participant(t *testing.T) {
	svc := newResultsSvc(true)

	view, err := svc.PublicResults(context.Background(), ports.Viewer{UserID: "voter", Role: domain.RoleUser}, "done")
	if err != nil {
		t.Fatalf("PublicResults returned error: %v", err)
	}
	if view.NoParticipation || !view.Published {
		t.Fatalf("unexpected flags: %+v", view)
	}
	want := []string{"Tunde", "Amaka", "Bola", "Zainab"}
	got := resultNames(view.Results)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if view.Results[0].Votes != 2 || view.Results[3].Votes != 0 {
		t.Fatalf("unexpected tallies: %+v", view.Results)
	}
}

func TestResultsService_PublicResults_Hidden(t *testing.T) {
	tests := []struct {
		name            string
		published       bool
		userID          string
		noParticipation bool
	}{
		{"non participant, published", true, "bystander", true},
		{"participant, unpublished", false, "voter", false},
		{"non participant, unpublished", false, "bystander", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newResultsSvc(tt.published)
			view, err := svc.PublicResults(context.Background(), ports.Viewer{UserID: tt.userID, Role: domain.RoleUser}, "done")
			if err != nil {
				t.Fatalf("PublicResults returned error: %v", err)
			}
			if view.NoParticipation != tt.noParticipation || view.Published != tt.published {
				t.Fatalf("unexpected flags: %+v", view)
			}
			if view.Results == nil || len(view.Results) != 0 {
				t.Fatalf("expected empty results, got %v", view.Results)
			}
		})
	}
}

func TestResultsService_PublicResults_AdminSeesUnpublished(t *testing.T) {
	svc := newResultsSvc(false)

	view, err := svc.PublicResults(context.Background(), ports.Viewer{UserID: "root", Role: domain.RoleAdmin}, "done")
	if err != nil {
		t.Fatalf("PublicResults returned error: %v", err)
	}
	if view.NoParticipation || view.Published || len(view.Results) != 4 {
		t.Fatalf("unexpected admin view: %+v", view)
	}
}

func TestResultsService_PublicResults_Forbidden(t *testing.T) {
	svc := newResultsSvc(true)

	if _, err := svc.PublicResults(context.Background(), ports.Viewer{UserID: "kanoan", Role: domain.RoleUser}, "done"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.PublicResults(context.Background(), ports.Viewer{UserID: "voter", Role: domain.RoleUser}, "nope"); !errors.Is(err, domain.ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}
}

func TestResultsService_AdminResults(t *testing.T) {
	svc := newResultsSvc(false)

	view, err := svc.AdminResults(context.Background(), "done")
	if err != nil {
		t.Fatalf("AdminResults returned error: %v", err)
	}
	if view.Published || len(view.Results) != 4 || view.Results[0].Name != "Tunde" {
		t.Fatalf("unexpected admin results: %+v", view)
	}
}

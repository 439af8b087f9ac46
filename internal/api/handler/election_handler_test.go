package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/ballotportal/election-api/internal/core/domain"
)

type stubElectionService struct {
	createFn func(ctx context.Context, raw map[string]any) (*domain.Election, error)
	listFn   func(ctx context.Context) ([]*domain.Election, error)
}

func (s *stubElectionService) CreateElection(ctx context.Context, raw map[string]any) (*domain.Election, error) {
	return s.createFn(ctx, raw)
}

func (s *stubElectionService) ListElections(ctx context.Context) ([]*domain.Election, error) {
	return s.listFn(ctx)
}

func TestElectionHandler_Create(t *testing.T) {
	stub := &stubElectionService{
		createFn: func(ctx context.Context, raw map[string]any) (*domain.Election, error) {
			voters, ok := raw["eligibleVoterIds"].([]any)
			if !ok || len(voters) != 2 {
				t.Fatalf("array not decoded as []any: %#v", raw["eligibleVoterIds"])
			}
			return &domain.Election{ElectionID: "pres", Scope: domain.ScopeNational, Status: domain.ElectionOpen}, nil
		},
	}
	h := NewElectionHandler(stub)

	body := `{"electionId":"pres","scope":"national","status":"open","eligibleVoterIds":["a","b"]}`
	c, rec := newTestContext(http.MethodPost, "/api/admin/elections", body, "root", domain.RoleAdmin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestElectionHandler_Create_Duplicate(t *testing.T) {
	stub := &stubElectionService{
		createFn: func(ctx context.Context, raw map[string]any) (*domain.Election, error) {
			return nil, domain.ErrElectionExists
		},
	}
	h := NewElectionHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/admin/elections", `{"electionId":"pres"}`, "root", domain.RoleAdmin)
	if err := h.Create(c); err != domain.ErrElectionExists {
		t.Fatalf("expected ErrElectionExists, got %v", err)
	}
}

func TestElectionHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubElectionService{
		listFn: func(ctx context.Context) ([]*domain.Election, error) { return nil, nil },
	}
	h := NewElectionHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/admin/elections", "", "root", domain.RoleAdmin)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ballotportal/election-api/internal/core/domain"
)

type stubAuditRepo struct {
	records []*domain.VoteAuditRecord
	err     error
}

func (r *stubAuditRepo) Insert(_ context.Context, rec *domain.VoteAuditRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func TestAuditService_Record(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, discardLogger)

	err := svc.Record(context.Background(), domain.VoteAuditRecord{VoteID: "v1", PeriodID: "p1", CastAt: fixedNow})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if len(repo.records) != 1 || repo.records[0].VoteID != "v1" {
		t.Fatalf("unexpected records: %+v", repo.records)
	}
}

func TestAuditService_Record_Incomplete(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, discardLogger)

	if err := svc.Record(context.Background(), domain.VoteAuditRecord{VoteID: "v1"}); err == nil {
		t.Fatalf("expected error for record without period")
	}
	if len(repo.records) != 0 {
		t.Fatalf("incomplete record must not be stored")
	}
}

func TestAuditService_Record_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewAuditService(&stubAuditRepo{err: boom}, discardLogger)

	if err := svc.Record(context.Background(), domain.VoteAuditRecord{VoteID: "v1", PeriodID: "p1"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

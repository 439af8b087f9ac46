package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit record.
func (s *auditService) Record(ctx context.Context, record domain.VoteAuditRecord) error {
	if record.VoteID == "" || record.PeriodID == "" {
		return fmt.Errorf("record audit: incomplete record for vote %q", record.VoteID)
	}
	if err := s.repo.Insert(ctx, &record); err != nil {
		return fmt.Errorf("record audit: %w", err)
	}
	s.log.Debug().Str("vote_id", record.VoteID).Str("period_id", record.PeriodID).Msg("audit record written")
	return nil
}

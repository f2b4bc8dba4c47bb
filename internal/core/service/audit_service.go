package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

// AuditTrail persists auth events delivered by the dispatcher. Events carry
// usernames and outcomes only, never password material.
type AuditTrail struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditTrail(repo ports.AuditRepository, log zerolog.Logger) *AuditTrail {
	return &AuditTrail{repo: repo, log: log}
}

// Record stamps the event when needed and persists it.
func (s *AuditTrail) Record(ctx context.Context, event domain.AuthEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}
	return nil
}

package ports

import (
	"context"

	"github.com/appointly/identity-service/internal/core/domain"
)

// AuditRepository persists auth audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService records a single audit event synchronously.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts audit events for asynchronous recording. Implementations
// must never block the request path on persistence and must never let an
// audit failure affect the request outcome.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}

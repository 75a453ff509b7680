package ports

import "github.com/minauth/auth-api/internal/core/domain"

// AuditSink receives auth audit events for asynchronous processing.
// Enqueue must never block the calling request for long; implementations
// buffer internally.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// NopAuditSink discards all events. Used in tests and when auditing is off.
type NopAuditSink struct{}

func (NopAuditSink) Enqueue(domain.AuditEvent) {}

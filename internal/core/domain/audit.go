package domain

import "time"

// Audit event types emitted by the auth service.
const (
	AuditRegistered     = "registered"
	AuditLoginSucceeded = "login_succeeded"
	AuditLoginFailed    = "login_failed"
)

// AuditEvent records a security-relevant auth action for the audit pipeline.
type AuditEvent struct {
	Type  string    `json:"type"`
	Email string    `json:"email"`
	At    time.Time `json:"at"`
}

package domain

import "time"

// AuthEventKind classifies an auth audit event.
type AuthEventKind string

const (
	AuthLoginSucceeded AuthEventKind = "login_succeeded"
	AuthLoginFailed    AuthEventKind = "login_failed"
	AuthLogout         AuthEventKind = "logout"
	AuthAccessDenied   AuthEventKind = "access_denied"
)

// AuthEvent records an authentication or authorization outcome for the audit
// trail. It never carries password material.
type AuthEvent struct {
	Username  string
	Kind      AuthEventKind
	Timestamp time.Time
	RequestID string
}

package domain

import "time"

// Role is a capability tag granted to an identity. Authorization is
// "any-of": an operation is permitted when the caller holds at least one of
// the roles the operation requires.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// Status represents the lifecycle state of an identity.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Identity models an authenticated actor in the system. PasswordHash is
// never serialized outward.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Active reports whether the identity may authenticate.
func (i *Identity) Active() bool {
	return i.Status == StatusActive
}

// HasRole reports whether the identity holds the given role.
func (i *Identity) HasRole(r Role) bool {
	for _, have := range i.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// WithoutSecrets returns a copy of the identity stripped of password
// material, safe to hand to token issuance or response construction.
func (i *Identity) WithoutSecrets() *Identity {
	clone := *i
	clone.PasswordHash = ""
	clone.Roles = NormalizeRoles(i.Roles)
	return &clone
}

// NormalizeRoles deduplicates a role list while preserving first-seen order.
// Roles are a set semantically; order must never affect an authorization
// decision.
func NormalizeRoles(roles []Role) []Role {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

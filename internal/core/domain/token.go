package domain

import "time"

// TokenClaims is the decoded assertion carried by a bearer token. Claims are
// only as fresh as issuance time: role changes made afterwards are not
// reflected until the token expires and is reissued.
type TokenClaims struct {
	Subject   string
	Username  string
	Roles     []Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasAnyRole reports whether the claims carry at least one of the required
// roles. An empty requirement means any authenticated identity qualifies.
func (c *TokenClaims) HasAnyRole(required ...Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		for _, have := range c.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

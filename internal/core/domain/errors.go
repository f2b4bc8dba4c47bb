package domain

import "errors"

var (
	// ErrInvalidCredentials covers every login failure: unknown username,
	// wrong password, suspended account. The causes are deliberately not
	// distinguishable from the outside.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenMalformed covers structural token failures: missing or
	// malformed Authorization header, bad encoding, wrong algorithm,
	// signature mismatch, missing required claims.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenExpired is returned for a well-formed, correctly signed token
	// whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked is returned for a valid token whose id is on the
	// revocation denylist.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInsufficientRole means the caller is authenticated but holds none
	// of the roles the operation requires.
	ErrInsufficientRole = errors.New("insufficient role")

	ErrIdentityNotFound = errors.New("identity not found")
	ErrIdentityExists   = errors.New("identity already exists")

	// ErrInvalidInput marks a request rejected by service-level validation,
	// such as an unknown role or a missing required attribute.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable wraps infrastructure failures from the identity
	// store. It is propagated unmodified; retry policy belongs to the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

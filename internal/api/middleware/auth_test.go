package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/appointly/identity-service/internal/core/auth"
	"github.com/appointly/identity-service/internal/core/domain"
)

type stubDenylist struct {
	revoked map[string]bool
	err     error
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	d.revoked[tokenID] = true
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.revoked[tokenID], nil
}

func signedToken(t *testing.T, tokens *auth.TokenService) (string, *domain.TokenClaims) {
	t.Helper()
	signed, claims, err := tokens.Issue(&domain.Identity{
		ID:       "id-1",
		Username: "alice",
		Roles:    []domain.Role{domain.RoleUser},
		Status:   domain.StatusActive,
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed, claims
}

func newAuthContext(t *testing.T, authorization string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	signed, issued := signedToken(t, tokens)
	c := newAuthContext(t, "Bearer "+signed)

	called := false
	handler := Auth(tokens, nil)(func(c echo.Context) error {
		called = true
		claims := CallerClaims(c)
		if claims == nil || claims.Username != "alice" || claims.Subject != "id-1" {
			t.Fatalf("claims not injected: %+v", claims)
		}
		if claims.TokenID != issued.TokenID {
			t.Fatalf("token id mismatch")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	c := newAuthContext(t, "")

	handler := Auth(tokens, nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestAuth_InvalidHeaderFormat(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	signed, _ := signedToken(t, tokens)

	for _, header := range []string{"invalid-format", "Token " + signed, "Bearer", "Bearer "} {
		c := newAuthContext(t, header)
		handler := Auth(tokens, nil)(func(c echo.Context) error {
			t.Fatalf("header %q reached next", header)
			return nil
		})
		if err := handler(c); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("header %q: expected ErrTokenMalformed, got %v", header, err)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	c := newAuthContext(t, "Bearer not-a-token")

	handler := Auth(tokens, nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	issuer := auth.NewTokenService("secret", time.Nanosecond)
	signed, _ := signedToken(t, issuer)
	time.Sleep(10 * time.Millisecond)

	validator := auth.NewTokenService("secret", time.Hour)
	c := newAuthContext(t, "Bearer "+signed)

	handler := Auth(validator, nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	signed, issued := signedToken(t, tokens)

	denylist := &stubDenylist{revoked: map[string]bool{issued.TokenID: true}}
	c := newAuthContext(t, "Bearer "+signed)

	handler := Auth(tokens, denylist)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestAuth_DenylistFailureFailsClosed(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	signed, _ := signedToken(t, tokens)

	denylist := &stubDenylist{revoked: map[string]bool{}, err: domain.ErrStorageUnavailable}
	c := newAuthContext(t, "Bearer "+signed)

	handler := Auth(tokens, denylist)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

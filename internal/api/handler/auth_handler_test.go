package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	logoutFn  func(ctx context.Context, claims *domain.TokenClaims) error
	profileFn func(ctx context.Context, id string) (*domain.Identity, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	return s.logoutFn(ctx, claims)
}

func (s *stubAuthService) Profile(ctx context.Context, id string) (*domain.Identity, error) {
	return s.profileFn(ctx, id)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			if username != "alice" || password != "Secret123!" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.LoginResult{
				Token: "token123",
				Claims: &domain.TokenClaims{
					Subject:   "id-1",
					Username:  "alice",
					Roles:     []domain.Role{domain.RoleUser},
					IssuedAt:  now,
					ExpiresAt: now.Add(time.Hour),
				},
				Identity: &domain.Identity{
					ID:       "id-1",
					Username: "alice",
					Roles:    []domain.Role{domain.RoleUser},
					Status:   domain.StatusActive,
				},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"alice","password":"Secret123!"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["token_type"] != "Bearer" {
		t.Fatalf("unexpected token fields: %+v", resp)
	}
	if resp["expires_in"] != float64(3600) {
		t.Fatalf("expected expires_in 3600, got %v", resp["expires_in"])
	}

	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password material leaked into response")
	}
	if strings.Contains(rec.Body.String(), "Secret123!") {
		t.Fatalf("plaintext password leaked into response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"alice","password":"bad-password"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"alice"}`)
	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", "not-json")
	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var revoked *domain.TokenClaims
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, claims *domain.TokenClaims) error {
			revoked = claims
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set("auth_claims", &domain.TokenClaims{Subject: "id-1", Username: "alice", TokenID: "jti-1"})

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked == nil || revoked.TokenID != "jti-1" {
		t.Fatalf("logout did not reach service: %+v", revoked)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, claims *domain.TokenClaims) error {
			t.Fatalf("service should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := handler.Logout(c); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, id string) (*domain.Identity, error) {
			if id != "id-1" {
				t.Fatalf("unexpected id %q", id)
			}
			return &domain.Identity{ID: id, Username: "alice", Status: domain.StatusActive}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/auth/profile", "")
	c.Set("auth_claims", &domain.TokenClaims{Subject: "id-1", Username: "alice"})

	if err := handler.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/appointly/identity-service/internal/core/domain"
)

type recordingSink struct {
	events []domain.AuthEvent
}

func (s *recordingSink) Enqueue(event domain.AuthEvent) {
	s.events = append(s.events, event)
}

func rbacContext(claims *domain.TokenClaims) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if claims != nil {
		c.Set(claimsKey, claims)
	}
	return c
}

func TestRBAC_AllowsMatchingRole(t *testing.T) {
	c := rbacContext(&domain.TokenClaims{
		Subject:  "id-1",
		Username: "alice",
		Roles:    []domain.Role{domain.RoleUser, domain.RoleAdmin},
	})

	called := false
	handler := RBAC(nil, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_DeniesMissingRole(t *testing.T) {
	sink := &recordingSink{}
	c := rbacContext(&domain.TokenClaims{
		Subject:  "id-1",
		Username: "bob",
		Roles:    []domain.Role{domain.RoleUser},
	})

	handler := RBAC(sink, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
	if len(sink.events) != 1 || sink.events[0].Kind != domain.AuthAccessDenied {
		t.Fatalf("expected access_denied audit event, got %+v", sink.events)
	}
}

func TestRBAC_EmptyRequirementAdmitsAnyAuthenticated(t *testing.T) {
	c := rbacContext(&domain.TokenClaims{
		Subject:  "id-1",
		Username: "carol",
		Roles:    nil,
	})

	called := false
	handler := RBAC(nil)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_RoleOrderIrrelevant(t *testing.T) {
	for _, roles := range [][]domain.Role{
		{domain.RoleUser, domain.RoleAdmin},
		{domain.RoleAdmin, domain.RoleUser},
	} {
		c := rbacContext(&domain.TokenClaims{Subject: "id-1", Username: "alice", Roles: roles})
		called := false
		handler := RBAC(nil, domain.RoleAdmin)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil || !called {
			t.Fatalf("roles %v: expected allow, err=%v called=%v", roles, err, called)
		}
	}
}

func TestRBAC_MissingClaims(t *testing.T) {
	c := rbacContext(nil)

	handler := RBAC(nil, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/minauth/auth-api/internal/api/handler"
	"github.com/minauth/auth-api/internal/core/domain"
	"github.com/minauth/auth-api/internal/core/ports"
	"github.com/minauth/auth-api/internal/core/token"
)

// resolveOnly implements ports.AuthService for middleware tests; only
// ResolveCurrentUser is exercised.
type resolveOnly struct {
	ports.AuthService
	issuer   *token.JWTIssuer
	accounts map[string]*domain.Account
}

func (s *resolveOnly) ResolveCurrentUser(_ context.Context, tok string) (*domain.Account, error) {
	subject, err := s.issuer.Verify(tok)
	if err != nil {
		return nil, err
	}
	account, ok := s.accounts[subject]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func newResolveOnly(t *testing.T) (*resolveOnly, string) {
	t.Helper()
	issuer := token.NewJWTIssuer("secret", 0)
	tok, _, err := issuer.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	svc := &resolveOnly{
		issuer: issuer,
		accounts: map[string]*domain.Account{
			"alice@example.com": {Email: "alice@example.com", DisplayName: "Alice"},
		},
	}
	return svc, tok
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	svc, tok := newResolveOnly(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(svc)
	h := mw(func(c echo.Context) error {
		called = true
		account, err := handler.CurrentAccount(c)
		if err != nil {
			t.Fatalf("account not injected: %v", err)
		}
		if account.Email != "alice@example.com" {
			t.Fatalf("unexpected account: %+v", account)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	svc, _ := newResolveOnly(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(svc)
	h := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	svc, tok := newResolveOnly(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(svc)
	h := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	svc, _ := newResolveOnly(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(svc)
	h := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := h(c)
	if err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthMiddleware_VanishedAccount(t *testing.T) {
	e := echo.New()
	svc, tok := newResolveOnly(t)
	delete(svc.accounts, "alice@example.com")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(svc)
	h := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

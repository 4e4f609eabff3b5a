package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
	"github.com/99minutos/identity-service/internal/core/token"
)

type stubAuthService struct {
	resolveFn func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.TokenPair, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Refresh(context.Context, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubAuthService) Resolve(ctx context.Context, userID int64) (*domain.User, error) {
	return s.resolveFn(ctx, userID)
}

func newRequestContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour, 24*time.Hour)
	raw, err := tokens.IssueAccess(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	alice := &domain.User{ID: 42, Username: "alice", IsActive: true, Role: &domain.Role{ID: 2, Name: domain.RoleUser}}
	auth := &stubAuthService{resolveFn: func(_ context.Context, userID int64) (*domain.User, error) {
		if userID != 42 {
			t.Fatalf("unexpected user id %d", userID)
		}
		return alice, nil
	}}

	c := newRequestContext("Bearer " + raw)
	called := false
	handler := Auth(tokens, auth)(func(c echo.Context) error {
		called = true
		user, _ := c.Get(CtxUser).(*domain.User)
		if user == nil || user.ID != 42 {
			t.Fatalf("expected user in context, got %+v", user)
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour, 24*time.Hour)
	handler := Auth(tokens, &stubAuthService{})(func(echo.Context) error { return nil })

	err := handler(newRequestContext(""))
	if code := httpErrorCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour, 24*time.Hour)
	handler := Auth(tokens, &stubAuthService{})(func(echo.Context) error { return nil })

	err := handler(newRequestContext("Token abc"))
	if code := httpErrorCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour, 24*time.Hour)
	raw, err := tokens.IssueRefresh(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	handler := Auth(tokens, &stubAuthService{})(func(echo.Context) error {
		t.Fatalf("next handler must not run")
		return nil
	})

	herr := handler(newRequestContext("Bearer " + raw))
	if code := httpErrorCode(t, herr); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_ResolveFailures(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour, 24*time.Hour)
	raw, err := tokens.IssueAccess(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	for name, resolveErr := range map[string]error{
		"deleted user":  domain.ErrUserNotFound,
		"disabled user": domain.ErrUserDisabled,
	} {
		auth := &stubAuthService{resolveFn: func(context.Context, int64) (*domain.User, error) {
			return nil, resolveErr
		}}
		handler := Auth(tokens, auth)(func(echo.Context) error { return nil })

		herr := handler(newRequestContext("Bearer " + raw))
		if code := httpErrorCode(t, herr); code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, code)
		}
	}
}

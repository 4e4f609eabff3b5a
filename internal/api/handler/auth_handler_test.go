package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
	"github.com/99minutos/identity-service/internal/core/token"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Resolve(context.Context, int64) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Email != "a@x.com" || in.RoleID != 2 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{
				ID:       1,
				Username: in.Username,
				Email:    in.Email,
				IsActive: true,
				RoleID:   2,
				Role:     &domain.Role{ID: 2, Name: domain.RoleUser, Description: "Regular user with limited access"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"a@x.com","password":"secret1","role_id":2}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["is_active"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, present := resp["password"]; present {
		t.Fatalf("password must never be serialized")
	}
	role, ok := resp["role"].(map[string]any)
	if !ok || role["name"] != "user" {
		t.Fatalf("expected nested role, got %+v", resp["role"])
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"al","email":"not-an-email","password":"123"}`)
	err := handler.Register(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"username", "email", "password", "role_id"} {
		if len(ve.Fields[field]) == 0 {
			t.Fatalf("expected error for field %q, got %v", field, ve.Fields)
		}
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/register", "not-json")
	err := handler.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"a@x.com","password":"secret1","role_id":2}`)
	if err := handler.Register(c); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.TokenPair, error) {
			if username != "alice" || password != "secret1" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &ports.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"secret1"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "acc" || resp["refresh_token"] != "ref" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.TokenPair, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"bad"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.TokenPair, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"username":"alice"}`)
	err := handler.Login(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields["password"]) == 0 {
		t.Fatalf("expected password error, got %v", ve.Fields)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (string, error) {
			if refreshToken != "ref" {
				t.Fatalf("unexpected token %q", refreshToken)
			}
			return "new-access", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"ref"}`)
	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "new-access" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(context.Context, string) (string, error) {
			return "", token.ErrInvalid
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"bogus"}`)
	err := handler.Refresh(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

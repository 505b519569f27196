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

	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
	"github.com/lumiere-cosmetics/storefront-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, username, password string) (string, *ports.AdminSummary, error)
	changePasswordFn func(ctx context.Context, adminID, current, new string) error
}

func (s *stubAuthService) BootstrapDefaultAdmin(_ context.Context) error { return nil }

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *ports.AdminSummary, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Verify(_ context.Context, _ string) (*ports.Identity, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) ChangePassword(ctx context.Context, adminID, current, new string) error {
	return s.changePasswordFn(ctx, adminID, current, new)
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *ports.AdminSummary, error) {
			if username != "admin" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &ports.AdminSummary{ID: "1", Username: "admin", Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"admin","password":"admin123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["token"] != "token123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "admin" || user["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password material leaked in response")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *ports.AdminSummary, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"admin"}`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *ports.AdminSummary, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login", "not-json")
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *ports.AdminSummary, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"admin","password":"bad"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Verify_ReturnsIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodGet, "/auth/verify", "")
	c.Set("identity", &ports.Identity{ID: "1", Username: "admin", Role: domain.RoleAdmin})

	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "1" || user["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Verify_MissingIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthTestContext(t, http.MethodGet, "/auth/verify", "")
	err := h.Verify(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, adminID, current, new string) error {
			if adminID != "1" || current != "old-pass" || new != "new-pass" {
				t.Fatalf("unexpected args: %s %s %s", adminID, current, new)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/change-password",
		`{"currentPassword":"old-pass","newPassword":"new-pass"}`)
	c.Set("identity", &ports.Identity{ID: "1", Username: "admin", Role: domain.RoleAdmin})

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongCurrent(t *testing.T) {
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, adminID, current, new string) error {
			return domain.ErrWrongPassword
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/change-password",
		`{"currentPassword":"bad","newPassword":"new-pass"}`)
	c.Set("identity", &ports.Identity{ID: "1", Username: "admin", Role: domain.RoleAdmin})

	if err := h.ChangePassword(c); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_TooShort(t *testing.T) {
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, adminID, current, new string) error {
			return domain.ErrPasswordTooShort
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/change-password",
		`{"currentPassword":"old-pass","newPassword":"abc"}`)
	c.Set("identity", &ports.Identity{ID: "1", Username: "admin", Role: domain.RoleAdmin})

	if err := h.ChangePassword(c); !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

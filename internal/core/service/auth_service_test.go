package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
)

type stubCredentialRepo struct {
	byID   map[string]*domain.Administrator
	nextID int
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{byID: make(map[string]*domain.Administrator)}
}

func cloneAdmin(a *domain.Administrator) *domain.Administrator {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubCredentialRepo) FindByUsername(_ context.Context, username string) (*domain.Administrator, error) {
	for _, a := range r.byID {
		if a.Username == domain.NormalizeUsername(username) {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrUserGone
}

func (r *stubCredentialRepo) FindByID(_ context.Context, id string) (*domain.Administrator, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserGone
	}
	return cloneAdmin(a), nil
}

func (r *stubCredentialRepo) Create(_ context.Context, admin *domain.Administrator) (*domain.Administrator, error) {
	r.nextID++
	copy := cloneAdmin(admin)
	copy.ID = strconv.Itoa(r.nextID)
	copy.Username = domain.NormalizeUsername(copy.Username)
	r.byID[copy.ID] = cloneAdmin(copy)
	return copy, nil
}

func (r *stubCredentialRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrUserGone
	}
	a.PasswordHash = hash
	return nil
}

func (r *stubCredentialRepo) ExistsAny(_ context.Context) (bool, error) {
	return len(r.byID) > 0, nil
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) TooManyFailures(_ context.Context, _ string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, _ string) error {
	t.resets++
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:            "secret",
		TokenTTL:             time.Hour,
		DefaultAdminUsername: "admin",
		DefaultAdminPassword: "admin123",
	}
}

func newTestAuthService(repo *stubCredentialRepo, throttle LoginThrottle) *AuthService {
	return NewAuthService(repo, throttle, testAuthConfig(), zerolog.Nop())
}

func TestAuthService_Bootstrap_CreatesDefaultAdmin(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)

	if err := svc.BootstrapDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	admin, err := repo.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("default admin not created: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", admin.Role)
	}
	if admin.PasswordHash == "admin123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")); err != nil {
		t.Fatalf("stored hash does not match default password: %v", err)
	}
}

func TestAuthService_Bootstrap_Idempotent(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)

	if err := svc.BootstrapDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := svc.BootstrapDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 administrator, got %d", len(repo.byID))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	token, summary, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if summary == nil || summary.Username != "admin" || summary.Role != domain.RoleAdmin {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["sub"] != summary.ID {
		t.Fatalf("expected sub %s, got %v", summary.ID, claims["sub"])
	}
}

func TestAuthService_Login_NormalizesUsername(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	if _, _, err := svc.Login(context.Background(), "  ADMIN ", "admin123"); err != nil {
		t.Fatalf("login with unnormalized username failed: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	if _, _, err := svc.Login(context.Background(), "admin", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserIndistinguishable(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	_, _, unknownErr := svc.Login(context.Background(), "ghost", "admin123")
	_, _, wrongErr := svc.Login(context.Background(), "admin", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) || !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected identical invalid-credentials outcomes, got %v / %v", unknownErr, wrongErr)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubCredentialRepo()
	throttle := &stubThrottle{blocked: true}
	svc := newTestAuthService(repo, throttle)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	if _, _, err := svc.Login(context.Background(), "admin", "admin123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials when throttled, got %v", err)
	}
}

func TestAuthService_Login_RecordsAndResetsFailures(t *testing.T) {
	repo := newStubCredentialRepo()
	throttle := &stubThrottle{}
	svc := newTestAuthService(repo, throttle)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	_, _, _ = svc.Login(context.Background(), "admin", "wrong")
	if throttle.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", throttle.failures)
	}

	if _, _, err := svc.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", throttle.resets)
	}
}

func TestAuthService_Verify_Success(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	token, summary, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	ident, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ident.ID != summary.ID || ident.Username != "admin" || ident.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestAuthService_Verify_ExpiredToken(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	admin, _ := repo.FindByUsername(context.Background(), "admin")
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(context.Background(), signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Verify_WrongSecret(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(context.Background(), signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Verify_DeletedAdministrator(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())

	token, summary, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	delete(repo.byID, summary.ID)

	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrUserGone) {
		t.Fatalf("expected ErrUserGone, got %v", err)
	}
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())
	admin, _ := repo.FindByUsername(context.Background(), "admin")

	if err := svc.ChangePassword(context.Background(), admin.ID, "admin123", "brandnew"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "admin", "admin123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "admin", "brandnew"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())
	admin, _ := repo.FindByUsername(context.Background(), "admin")

	if err := svc.ChangePassword(context.Background(), admin.ID, "nope", "brandnew"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	// stored hash must be untouched
	if _, _, err := svc.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("original password no longer works: %v", err)
	}
}

func TestAuthService_ChangePassword_TooShort(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.BootstrapDefaultAdmin(context.Background())
	admin, _ := repo.FindByUsername(context.Background(), "admin")

	if err := svc.ChangePassword(context.Background(), admin.ID, "admin123", "tiny"); !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

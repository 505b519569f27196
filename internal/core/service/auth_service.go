package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
	"github.com/lumiere-cosmetics/storefront-api/internal/core/ports"
)

const minPasswordLength = 6

// LoginThrottle abstracts the failed-login counter (Redis). A nil throttle
// disables throttling entirely; throttle errors never block a login.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthConfig carries the authenticator settings resolved from the environment.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// Default credentials used only when the credential store is empty.
	// Deployments are expected to rotate them immediately after first start.
	DefaultAdminUsername string
	DefaultAdminPassword string
}

// AuthService implements login, token verification, password rotation and
// first-start bootstrap of the default administrator.
type AuthService struct {
	repo     ports.CredentialRepository
	throttle LoginThrottle
	cfg      AuthConfig
	log      zerolog.Logger
}

func NewAuthService(repo ports.CredentialRepository, throttle LoginThrottle, cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, throttle: throttle, cfg: cfg, log: log}
}

// BootstrapDefaultAdmin creates the default administrator when the store is
// empty. Safe to call on every startup.
func (s *AuthService) BootstrapDefaultAdmin(ctx context.Context) error {
	exists, err := s.repo.ExistsAny(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	admin := &domain.Administrator{
		Username:     domain.NormalizeUsername(s.cfg.DefaultAdminUsername),
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	s.log.Warn().
		Str("username", admin.Username).
		Msg("default administrator created with well-known credentials, rotate the password immediately")
	return nil
}

// Login verifies a username/password pair and issues a signed token. Unknown
// usernames and wrong passwords produce the same error so usernames cannot
// be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *ports.AdminSummary, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	// The throttle short-circuits before the bcrypt comparison so a burst of
	// failed attempts cannot monopolize CPU. It fails open on store errors.
	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			s.log.Warn().Str("username", username).Msg("login throttled")
			return "", nil, domain.ErrInvalidCredentials
		}
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserGone) {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info().Str("username", admin.Username).Str("role", admin.Role).Msg("administrator logged in")
	return token, &ports.AdminSummary{ID: admin.ID, Username: admin.Username, Role: admin.Role}, nil
}

// Verify checks the token signature and expiry, then confirms the embedded
// administrator still exists. A deleted account invalidates all of its
// outstanding tokens on first use.
func (s *AuthService) Verify(ctx context.Context, token string) (*ports.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}

	admin, err := s.repo.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, domain.ErrUserGone) {
			return nil, domain.ErrUserGone
		}
		return nil, err
	}

	return &ports.Identity{ID: admin.ID, Username: admin.Username, Role: admin.Role}, nil
}

// ChangePassword re-verifies the current secret before replacing the stored
// hash, so a stolen token alone is not enough to rotate the password.
func (s *AuthService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongPassword
	}
	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, admin.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("username", admin.Username).Msg("administrator password changed")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *AuthService) generateToken(admin *domain.Administrator) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

package ports

import "context"

// AdminSummary is the non-sensitive view of an administrator returned by
// login and verify. It never carries the password hash.
type AdminSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Identity is the authenticated caller attached to a request after a token
// has been verified.
type Identity struct {
	ID       string
	Username string
	Role     string
}

type AuthService interface {
	// BootstrapDefaultAdmin creates the well-known default administrator if
	// the credential store is empty. Idempotent.
	BootstrapDefaultAdmin(ctx context.Context) error
	Login(ctx context.Context, username, password string) (string, *AdminSummary, error)
	Verify(ctx context.Context, token string) (*Identity, error)
	ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error
}

package ports

import (
	"context"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
)

// CredentialRepository defines persistence for administrator accounts.
// Implementations normalize usernames before every lookup and save.
// No delete operation is exposed.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Administrator, error)
	FindByID(ctx context.Context, id string) (*domain.Administrator, error)
	Create(ctx context.Context, admin *domain.Administrator) (*domain.Administrator, error)
	// UpdatePasswordHash replaces the stored hash in place.
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	// ExistsAny reports whether any administrator exists. Used only at bootstrap.
	ExistsAny(ctx context.Context) (bool, error)
}

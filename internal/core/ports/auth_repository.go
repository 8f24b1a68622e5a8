package ports

import (
	"context"

	"github.com/hydrai/telemetry-system/internal/core/domain"
)

// UserRepository defines persistence for user credentials. The store is the
// authority on username uniqueness: Create must report domain.ErrUserExists
// on a duplicate insert, regardless of any earlier Exists check.
type UserRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

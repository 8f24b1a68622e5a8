package ports

import (
	"context"

	"github.com/hydrai/telemetry-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenValidator checks a session token and returns its subject (the user ID).
// Signature, expiry and structural failures are all collapsed into a single
// error so callers cannot distinguish the sub-case.
type TokenValidator interface {
	Validate(token string) (subject string, err error)
}

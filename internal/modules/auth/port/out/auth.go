package out

import (
	"context"

	"skillsetu/internal/modules/auth/domain"
)

// TokenStore is the single persisted credential slot.
type TokenStore interface {
	Set(ctx context.Context, token domain.Credential) error
	Get(ctx context.Context) (domain.Credential, bool, error)
	Clear(ctx context.Context) error
	Present(ctx context.Context) bool
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.Credential, error)
	Register(ctx context.Context, name, email, password string) error
	// CurrentUser calls the profile endpoint. A non-zero override is sent
	// instead of the stored token.
	CurrentUser(ctx context.Context, override domain.Credential) (domain.User, error)
}

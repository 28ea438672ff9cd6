package in

import (
	"context"

	"skillsetu/internal/modules/auth/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
	Authenticated(ctx context.Context) bool
	Verify(ctx context.Context, tokenOverride string) (dto.UserOutput, error)
}

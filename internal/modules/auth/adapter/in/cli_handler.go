package in

import (
	"context"

	"skillsetu/internal/modules/auth/dto"
	authin "skillsetu/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password, returnTo string) (dto.LoginOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Email: email, Password: password, ReturnTo: returnTo})
}

func (h CLIHandler) Register(ctx context.Context, email, password string) (dto.RegisterOutput, error) {
	return h.usecase.Register(ctx, dto.RegisterInput{Email: email, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Authenticated(ctx context.Context) bool {
	return h.usecase.Authenticated(ctx)
}

func (h CLIHandler) Verify(ctx context.Context, tokenOverride string) (dto.UserOutput, error) {
	return h.usecase.Verify(ctx, tokenOverride)
}

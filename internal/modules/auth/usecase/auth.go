package usecase

import (
	"context"

	"skillsetu/internal/modules/auth/dto"
	authin "skillsetu/internal/modules/auth/port/in"
	"skillsetu/internal/modules/auth/service"
)

type Interactor struct {
	svc *service.AuthService
}

func NewInteractor(svc *service.AuthService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error) {
	redirect, err := i.svc.Login(ctx, input.Email, input.Password, input.ReturnTo)
	if err != nil {
		return dto.LoginOutput{}, err
	}
	return dto.LoginOutput{Redirect: redirect}, nil
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error) {
	redirect, err := i.svc.Register(ctx, input.Email, input.Password)
	if err != nil {
		return dto.RegisterOutput{}, err
	}
	return dto.RegisterOutput{Redirect: redirect}, nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	token, ok, err := i.svc.Current(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	out := dto.StatusOutput{Present: ok, Masked: token.Mask()}
	if !ok {
		return out, nil
	}
	// Opaque tokens are fine; claims are only shown when present.
	if claims, err := token.Claims(); err == nil {
		out.Subject = claims.Subject
		out.ExpiresAt = claims.ExpiresAt
	}
	return out, nil
}

func (i *Interactor) Authenticated(ctx context.Context) bool {
	return i.svc.Authenticated(ctx)
}

func (i *Interactor) Verify(ctx context.Context, tokenOverride string) (dto.UserOutput, error) {
	user, err := i.svc.Verify(ctx, tokenOverride)
	if err != nil {
		return dto.UserOutput{}, err
	}
	return dto.UserOutput{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

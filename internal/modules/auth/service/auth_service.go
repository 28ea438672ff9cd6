package service

import (
	"context"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"skillsetu/internal/modules/auth/domain"
	authout "skillsetu/internal/modules/auth/port/out"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/validate"
)

const (
	DefaultLandingPath = "/plans"
	LoginPath          = "/login"
)

type AuthService struct {
	tokens authout.TokenStore
	api    authout.AuthAPI
	logger hclog.Logger
}

func NewAuthService(tokens authout.TokenStore, api authout.AuthAPI, logger hclog.Logger) *AuthService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AuthService{tokens: tokens, api: api, logger: logger}
}

// Login exchanges credentials for a token, stores it and reports where to go next.
func (s *AuthService) Login(ctx context.Context, email, password, returnTo string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Credentials(email, password); err != nil {
		return "", err
	}
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	if token.IsZero() {
		return "", fmt.Errorf("login response carried no access token")
	}
	if err := s.tokens.Set(ctx, token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	s.logger.Info("signed in", "email", email)
	if strings.TrimSpace(returnTo) != "" {
		return returnTo, nil
	}
	return DefaultLandingPath, nil
}

func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Credentials(email, password); err != nil {
		return "", err
	}
	if err := s.api.Register(ctx, domain.NameFromEmail(email), email, password); err != nil {
		return "", err
	}
	s.logger.Info("account registered", "email", email)
	return LoginPath, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *AuthService) Authenticated(ctx context.Context) bool {
	return s.tokens.Present(ctx)
}

func (s *AuthService) Current(ctx context.Context) (domain.Credential, bool, error) {
	return s.tokens.Get(ctx)
}

// Verify asks the API who the token belongs to. An empty override falls back
// to the stored token; with neither there is nothing to check.
func (s *AuthService) Verify(ctx context.Context, override string) (domain.User, error) {
	token := domain.Credential(strings.TrimSpace(override))
	if token.IsZero() {
		stored, ok, err := s.tokens.Get(ctx)
		if err != nil {
			return domain.User{}, fmt.Errorf("read token: %w", err)
		}
		if !ok {
			return domain.User{}, apperrors.ErrNoCredential
		}
		token = stored
	}
	return s.api.CurrentUser(ctx, token)
}

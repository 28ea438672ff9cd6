package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"skillsetu/internal/modules/status/domain"
	statusout "skillsetu/internal/modules/status/port/out"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/httpsession"
)

type StatusService struct {
	tokens statusout.TokenReader
	api    statusout.ProbeAPI
	logger hclog.Logger
}

func NewStatusService(tokens statusout.TokenReader, api statusout.ProbeAPI, logger hclog.Logger) *StatusService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &StatusService{tokens: tokens, api: api, logger: logger}
}

func (s *StatusService) CheckAuthorization(ctx context.Context, override string) (domain.AuthResult, error) {
	token, stored, err := s.effectiveToken(ctx, override)
	if err != nil {
		return domain.AuthResult{}, err
	}
	err = s.api.CurrentUser(ctx, token, stored)
	if err == nil {
		return domain.AuthResult{State: domain.AuthAuthorized, Message: domain.AuthorizedMessage}, nil
	}
	var statusErr *httpsession.StatusError
	if errors.As(err, &statusErr) {
		return domain.AuthResult{State: domain.AuthFailed, Message: "Authorization failed: " + statusErr.StatusText()}, nil
	}
	if errors.Is(err, apperrors.ErrTimeout) {
		return domain.AuthResult{State: domain.AuthFailed, Message: "Authorization check failed: Request timeout"}, nil
	}
	s.logger.Debug("authorization probe failed", "error", err)
	return domain.AuthResult{State: domain.AuthFailed, Message: "Authorization check failed: Network error"}, nil
}

// CheckGenerator creates a throwaway plan to prove the generation service
// answers, then deletes it on a best-effort basis.
func (s *StatusService) CheckGenerator(ctx context.Context, override string) (domain.GeneratorResult, error) {
	token, stored, err := s.effectiveToken(ctx, override)
	if err != nil {
		return domain.GeneratorResult{}, err
	}
	planID, err := s.api.CreateHealthPlan(ctx, token, stored)
	if err != nil {
		var statusErr *httpsession.StatusError
		if errors.As(err, &statusErr) && statusErr.Status != http.StatusBadGateway {
			return domain.GeneratorResult{State: domain.GeneratorUnavailable, Message: "Generator check failed: " + statusErr.StatusText()}, nil
		}
		s.logger.Debug("generator probe failed", "error", err)
		return domain.GeneratorResult{State: domain.GeneratorUnavailable, Message: apperrors.GeneratorUnavailableMessage}, nil
	}
	if strings.TrimSpace(planID) == "" {
		return domain.GeneratorResult{State: domain.GeneratorUnavailable, Message: domain.MissingPlanIDMessage}, nil
	}

	result := domain.GeneratorResult{State: domain.GeneratorOK, Message: domain.GeneratorPassedMessage}
	if err := s.api.DeletePlan(ctx, token, stored, planID); err != nil {
		s.logger.Warn("failed to delete healthcheck plan", "plan", planID, "error", err)
		result.CleanupErr = err
	}
	return result, nil
}

func (s *StatusService) effectiveToken(ctx context.Context, override string) (string, bool, error) {
	if token := strings.TrimSpace(override); token != "" {
		return token, false, nil
	}
	token, ok, err := s.tokens.Token(ctx)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", false, apperrors.ErrNoCredential
	}
	return token, true, nil
}

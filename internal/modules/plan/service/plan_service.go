package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"skillsetu/internal/modules/plan/domain"
	planout "skillsetu/internal/modules/plan/port/out"
	"skillsetu/internal/platform/clock"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/timeago"
	"skillsetu/internal/platform/validate"
)

type PlanService struct {
	clock    clock.Clock
	api      planout.PlanAPI
	progress planout.ProgressReader
	logger   hclog.Logger
}

func NewPlanService(clock clock.Clock, api planout.PlanAPI, progress planout.ProgressReader, logger hclog.Logger) *PlanService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PlanService{clock: clock, api: api, progress: progress, logger: logger}
}

// Ago renders t relative to the service clock; zero times render empty.
func (s *PlanService) Ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timeago.Format(t, s.clock.Now())
}

func (s *PlanService) List(ctx context.Context) ([]domain.Plan, error) {
	return s.api.List(ctx)
}

func (s *PlanService) Browse(ctx context.Context, query, filter string) ([]domain.Plan, domain.Stats, int, error) {
	kind, err := domain.ParseFilterKind(filter)
	if err != nil {
		return nil, domain.Stats{}, 0, err
	}
	plans, err := s.api.List(ctx)
	if err != nil {
		return nil, domain.Stats{}, 0, err
	}
	stats := domain.ComputeStats(plans, s.clock.Now())
	return domain.Filter(plans, query, kind), stats, len(plans), nil
}

func (s *PlanService) Get(ctx context.Context, id string) (domain.Detail, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Detail{}, fmt.Errorf("%w: plan id is required", apperrors.ErrInvalidInput)
	}
	return s.api.Get(ctx, id)
}

// Detail fetches a plan and joins its weeks with local completion state.
func (s *PlanService) Detail(ctx context.Context, id string) (domain.Detail, []domain.WeekGroup, map[string]bool, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return domain.Detail{}, nil, nil, err
	}
	done := map[string]bool{}
	if s.progress != nil {
		done, err = s.progress.Completed(ctx, id)
		if err != nil {
			return domain.Detail{}, nil, nil, err
		}
	}
	return detail, domain.GroupByWeek(detail.Items), done, nil
}

func (s *PlanService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: plan id is required", apperrors.ErrInvalidInput)
	}
	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("plan deleted", "plan", id)
	return nil
}

func (s *PlanService) Generate(ctx context.Context, goal string, skills []string, weeks int) (planout.GenerateResult, error) {
	goal = strings.TrimSpace(goal)
	if err := validate.PlanRequest(goal, skills, weeks); err != nil {
		return planout.GenerateResult{}, err
	}
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			cleaned = append(cleaned, skill)
		}
	}
	result, err := s.api.Generate(ctx, domain.GenerateRequest{Goal: goal, Skills: cleaned, DurationWeeks: weeks})
	if err != nil {
		return planout.GenerateResult{}, err
	}
	if strings.TrimSpace(result.PlanID) == "" {
		return planout.GenerateResult{}, fmt.Errorf("generate plan: response carried no plan_id")
	}
	s.logger.Info("plan generated", "plan", result.PlanID, "weeks", weeks)
	return result, nil
}

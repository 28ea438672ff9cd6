package out

import (
	"context"

	"skillsetu/internal/modules/plan/domain"
)

type GenerateResult struct {
	PlanID  string
	Summary string
	Weeks   int
	Message string
}

type PlanAPI interface {
	List(ctx context.Context) ([]domain.Plan, error)
	Get(ctx context.Context, id string) (domain.Detail, error)
	Delete(ctx context.Context, id string) error
	Generate(ctx context.Context, req domain.GenerateRequest) (GenerateResult, error)
}

// ProgressReader exposes which items of a plan are completed.
type ProgressReader interface {
	Completed(ctx context.Context, planID string) (map[string]bool, error)
}

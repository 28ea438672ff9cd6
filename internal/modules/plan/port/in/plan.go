package in

import (
	"context"

	"skillsetu/internal/modules/plan/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PlanOutput, error)
	Browse(ctx context.Context, input dto.BrowseInput) (dto.BrowseOutput, error)
	Get(ctx context.Context, id string) (dto.DetailOutput, error)
	Detail(ctx context.Context, id string) (dto.DetailOutput, error)
	Delete(ctx context.Context, id string) error
	Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error)
}

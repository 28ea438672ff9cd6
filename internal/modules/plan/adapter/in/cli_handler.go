package in

import (
	"context"

	"skillsetu/internal/modules/plan/dto"
	planin "skillsetu/internal/modules/plan/port/in"
)

type CLIHandler struct {
	usecase planin.Usecase
}

func NewCLIHandler(usecase planin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PlanOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Browse(ctx context.Context, query, filter string) (dto.BrowseOutput, error) {
	return h.usecase.Browse(ctx, dto.BrowseInput{Query: query, Filter: filter})
}

func (h CLIHandler) Detail(ctx context.Context, id string) (dto.DetailOutput, error) {
	return h.usecase.Detail(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Generate(ctx context.Context, goal string, skills []string, weeks int) (dto.GenerateOutput, error) {
	return h.usecase.Generate(ctx, dto.GenerateInput{Goal: goal, Skills: skills, DurationWeeks: weeks})
}

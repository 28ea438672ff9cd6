package in

import (
	"context"

	"skillsetu/internal/modules/progress/dto"
	progressin "skillsetu/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Toggle(ctx context.Context, planID, itemID string) (dto.ToggleOutput, error) {
	return h.usecase.Toggle(ctx, dto.ToggleInput{PlanID: planID, ItemID: itemID})
}

func (h CLIHandler) Completed(ctx context.Context, planID string) (dto.CompletedOutput, error) {
	return h.usecase.Completed(ctx, planID)
}

func (h CLIHandler) Reload(ctx context.Context, planID string) error {
	return h.usecase.Reload(ctx, planID)
}

func (h CLIHandler) ReloadAll(ctx context.Context) error {
	return h.usecase.ReloadAll(ctx)
}

package in

import (
	"context"

	"skillsetu/internal/modules/status/dto"
	statusin "skillsetu/internal/modules/status/port/in"
)

type CLIHandler struct {
	usecase statusin.Usecase
}

func NewCLIHandler(usecase statusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) CheckAuthorization(ctx context.Context, tokenOverride string) (dto.CheckOutput, error) {
	return h.usecase.CheckAuthorization(ctx, tokenOverride)
}

func (h CLIHandler) CheckGenerator(ctx context.Context, tokenOverride string) (dto.CheckOutput, error) {
	return h.usecase.CheckGenerator(ctx, tokenOverride)
}

package in

import (
	"context"

	"skillsetu/internal/modules/status/dto"
)

type Usecase interface {
	CheckAuthorization(ctx context.Context, tokenOverride string) (dto.CheckOutput, error)
	CheckGenerator(ctx context.Context, tokenOverride string) (dto.CheckOutput, error)
}

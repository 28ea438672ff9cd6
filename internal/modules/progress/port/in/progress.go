package in

import (
	"context"

	"skillsetu/internal/modules/progress/dto"
)

type Usecase interface {
	Toggle(ctx context.Context, input dto.ToggleInput) (dto.ToggleOutput, error)
	IsCompleted(ctx context.Context, planID, itemID string) (bool, error)
	Completed(ctx context.Context, planID string) (dto.CompletedOutput, error)
	// Reload drops the cached set so the next read hydrates from storage.
	Reload(ctx context.Context, planID string) error
	// ReloadAll drops every cached set.
	ReloadAll(ctx context.Context) error
}

package usecase

import (
	"context"

	"skillsetu/internal/modules/progress/dto"
	progressin "skillsetu/internal/modules/progress/port/in"
	"skillsetu/internal/modules/progress/service"
)

type Interactor struct {
	tracker *service.Tracker
}

func NewInteractor(tracker *service.Tracker) progressin.Usecase {
	return &Interactor{tracker: tracker}
}

func (i *Interactor) Toggle(ctx context.Context, input dto.ToggleInput) (dto.ToggleOutput, error) {
	completed, count, err := i.tracker.Toggle(ctx, input.PlanID, input.ItemID)
	if err != nil {
		return dto.ToggleOutput{}, err
	}
	return dto.ToggleOutput{PlanID: input.PlanID, ItemID: input.ItemID, Completed: completed, CompletedCount: count}, nil
}

func (i *Interactor) IsCompleted(ctx context.Context, planID, itemID string) (bool, error) {
	return i.tracker.Has(ctx, planID, itemID)
}

func (i *Interactor) Completed(ctx context.Context, planID string) (dto.CompletedOutput, error) {
	set, err := i.tracker.Completed(ctx, planID)
	if err != nil {
		return dto.CompletedOutput{}, err
	}
	return dto.CompletedOutput{PlanID: planID, ItemIDs: set.IDs()}, nil
}

func (i *Interactor) Reload(_ context.Context, planID string) error {
	i.tracker.Forget(planID)
	return nil
}

func (i *Interactor) ReloadAll(_ context.Context) error {
	i.tracker.ForgetAll()
	return nil
}

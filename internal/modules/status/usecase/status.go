package usecase

import (
	"context"

	"skillsetu/internal/modules/status/dto"
	statusin "skillsetu/internal/modules/status/port/in"
	"skillsetu/internal/modules/status/service"
)

type Interactor struct {
	svc *service.StatusService
}

func NewInteractor(svc *service.StatusService) statusin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CheckAuthorization(ctx context.Context, tokenOverride string) (dto.CheckOutput, error) {
	res, err := i.svc.CheckAuthorization(ctx, tokenOverride)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	return dto.CheckOutput{State: string(res.State), Message: res.Message, OK: res.OK()}, nil
}

func (i *Interactor) CheckGenerator(ctx context.Context, tokenOverride string) (dto.CheckOutput, error) {
	res, err := i.svc.CheckGenerator(ctx, tokenOverride)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	return dto.CheckOutput{State: string(res.State), Message: res.Message, OK: res.OK()}, nil
}

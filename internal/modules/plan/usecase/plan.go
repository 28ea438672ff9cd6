package usecase

import (
	"context"

	"skillsetu/internal/modules/plan/domain"
	"skillsetu/internal/modules/plan/dto"
	planin "skillsetu/internal/modules/plan/port/in"
	"skillsetu/internal/modules/plan/service"
)

type Interactor struct {
	svc *service.PlanService
}

func NewInteractor(svc *service.PlanService) planin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PlanOutput, error) {
	plans, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return i.toPlanOutputs(plans), nil
}

func (i *Interactor) Browse(ctx context.Context, input dto.BrowseInput) (dto.BrowseOutput, error) {
	plans, stats, total, err := i.svc.Browse(ctx, input.Query, input.Filter)
	if err != nil {
		return dto.BrowseOutput{}, err
	}
	return dto.BrowseOutput{
		Plans: i.toPlanOutputs(plans),
		Stats: dto.StatsOutput{Count: stats.Count, AvgDurationWeeks: stats.AvgDurationWeeks, LastCreated: stats.LastCreated},
		Total: total,
	}, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.DetailOutput, error) {
	detail, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.DetailOutput{}, err
	}
	return i.toDetailOutput(detail, domain.GroupByWeek(detail.Items), map[string]bool{}), nil
}

func (i *Interactor) Detail(ctx context.Context, id string) (dto.DetailOutput, error) {
	detail, groups, done, err := i.svc.Detail(ctx, id)
	if err != nil {
		return dto.DetailOutput{}, err
	}
	return i.toDetailOutput(detail, groups, done), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error) {
	result, err := i.svc.Generate(ctx, input.Goal, input.Skills, input.DurationWeeks)
	if err != nil {
		return dto.GenerateOutput{}, err
	}
	return dto.GenerateOutput{PlanID: result.PlanID, Summary: result.Summary, Weeks: result.Weeks, Message: result.Message}, nil
}

func (i *Interactor) toPlanOutputs(plans []domain.Plan) []dto.PlanOutput {
	out := make([]dto.PlanOutput, 0, len(plans))
	for _, p := range plans {
		out = append(out, i.toPlanOutput(p))
	}
	return out
}

func (i *Interactor) toPlanOutput(p domain.Plan) dto.PlanOutput {
	return dto.PlanOutput{
		ID:            p.ID,
		TargetRole:    p.TargetRole,
		DurationWeeks: p.DurationWeeks,
		Status:        p.Status,
		Summary:       p.Summary,
		CreatedAt:     p.CreatedAt,
		CreatedAgo:    i.svc.Ago(p.CreatedAt),
	}
}

func (i *Interactor) toDetailOutput(detail domain.Detail, groups []domain.WeekGroup, done map[string]bool) dto.DetailOutput {
	has := func(id string) bool { return done[id] }
	out := dto.DetailOutput{Plan: i.toPlanOutput(detail.Plan), Weeks: make([]dto.WeekOutput, 0, len(groups))}
	for _, g := range groups {
		week := dto.WeekOutput{
			Week:      g.Week,
			Items:     make([]dto.ItemOutput, 0, len(g.Items)),
			Completed: domain.CountCompleted(g.Items, has),
			Total:     len(g.Items),
		}
		for _, item := range g.Items {
			week.Items = append(week.Items, dto.ItemOutput{
				ID:            item.ID,
				WeekNo:        item.WeekNo,
				DayNo:         item.DayNo,
				Title:         item.Title,
				URL:           item.URL,
				EstMinutes:    item.EstMinutes,
				Type:          item.Type,
				RequiredSkill: item.RequiredSkill,
				Completed:     done[item.ID],
			})
		}
		out.Completed += week.Completed
		out.Total += week.Total
		out.Weeks = append(out.Weeks, week)
	}
	return out
}

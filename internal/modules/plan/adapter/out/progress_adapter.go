package out

import (
	"context"

	planout "skillsetu/internal/modules/plan/port/out"
	progressin "skillsetu/internal/modules/progress/port/in"
)

type ProgressAdapter struct {
	progress progressin.Usecase
}

func NewProgressAdapter(progress progressin.Usecase) planout.ProgressReader {
	return &ProgressAdapter{progress: progress}
}

func (a *ProgressAdapter) Completed(ctx context.Context, planID string) (map[string]bool, error) {
	out, err := a.progress.Completed(ctx, planID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(out.ItemIDs))
	for _, id := range out.ItemIDs {
		done[id] = true
	}
	return done, nil
}

package out

import (
	"context"

	"skillsetu/internal/modules/progress/domain"
)

type ProgressStore interface {
	// Load returns an empty set when nothing was stored and an error
	// wrapping domain.ErrMalformed when the payload cannot be parsed.
	Load(ctx context.Context, planID string) (domain.Set, error)
	Save(ctx context.Context, planID string, set domain.Set) error
}

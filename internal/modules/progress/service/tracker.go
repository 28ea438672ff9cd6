package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"skillsetu/internal/modules/progress/domain"
	progressout "skillsetu/internal/modules/progress/port/out"
	apperrors "skillsetu/internal/platform/errors"
)

// Tracker caches one completion set per plan for reads. The first read of a
// plan hydrates from the store. Toggle always re-reads the stored set before
// flipping, so a write from another process is merged rather than
// overwritten.
type Tracker struct {
	store  progressout.ProgressStore
	logger hclog.Logger

	mu    sync.Mutex
	cache map[string]*domain.Set
}

func NewTracker(store progressout.ProgressStore, logger hclog.Logger) *Tracker {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Tracker{store: store, logger: logger, cache: map[string]*domain.Set{}}
}

func (t *Tracker) Toggle(ctx context.Context, planID, itemID string) (bool, int, error) {
	if err := requireIDs(planID, itemID); err != nil {
		return false, 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	next, err := t.hydrate(ctx, planID)
	if err != nil {
		return false, 0, err
	}
	completed := next.Toggle(itemID)
	if err := t.store.Save(ctx, planID, next); err != nil {
		return false, 0, fmt.Errorf("save progress for plan %s: %w", planID, err)
	}
	t.cache[planID] = &next
	return completed, next.Len(), nil
}

func (t *Tracker) Has(ctx context.Context, planID, itemID string) (bool, error) {
	if err := requireIDs(planID, itemID); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	set, err := t.loadLocked(ctx, planID)
	if err != nil {
		return false, err
	}
	return set.Has(itemID), nil
}

// Completed returns a snapshot; mutating it does not affect the tracker.
func (t *Tracker) Completed(ctx context.Context, planID string) (domain.Set, error) {
	if strings.TrimSpace(planID) == "" {
		return domain.Set{}, fmt.Errorf("%w: plan id is required", apperrors.ErrInvalidInput)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	set, err := t.loadLocked(ctx, planID)
	if err != nil {
		return domain.Set{}, err
	}
	return set.Clone(), nil
}

func (t *Tracker) Forget(planID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cache, planID)
}

// ForgetAll drops every cached set. Called when the store reports a write
// this process did not make.
func (t *Tracker) ForgetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache = map[string]*domain.Set{}
}

func (t *Tracker) loadLocked(ctx context.Context, planID string) (*domain.Set, error) {
	if set, ok := t.cache[planID]; ok {
		return set, nil
	}
	set, err := t.hydrate(ctx, planID)
	if err != nil {
		return nil, err
	}
	t.cache[planID] = &set
	return &set, nil
}

func (t *Tracker) hydrate(ctx context.Context, planID string) (domain.Set, error) {
	set, err := t.store.Load(ctx, planID)
	if err != nil {
		if !errors.Is(err, domain.ErrMalformed) {
			return domain.Set{}, fmt.Errorf("load progress for plan %s: %w", planID, err)
		}
		t.logger.Warn("discarding unreadable progress", "plan", planID, "error", err)
		set = domain.NewSet()
	}
	return set, nil
}

func requireIDs(planID, itemID string) error {
	if strings.TrimSpace(planID) == "" {
		return fmt.Errorf("%w: plan id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(itemID) == "" {
		return fmt.Errorf("%w: item id is required", apperrors.ErrInvalidInput)
	}
	return nil
}

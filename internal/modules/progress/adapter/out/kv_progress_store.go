package out

import (
	"context"
	"encoding/json"
	"fmt"

	"skillsetu/internal/modules/progress/domain"
	progressout "skillsetu/internal/modules/progress/port/out"
)

type Slots interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type KVProgressStore struct {
	slots Slots
}

func NewKVProgressStore(slots Slots) progressout.ProgressStore {
	return &KVProgressStore{slots: slots}
}

func (s *KVProgressStore) Load(ctx context.Context, planID string) (domain.Set, error) {
	raw, ok, err := s.slots.Get(ctx, domain.Key(planID))
	if err != nil {
		return domain.NewSet(), err
	}
	if !ok {
		return domain.NewSet(), nil
	}
	return domain.Decode(raw)
}

func (s *KVProgressStore) Save(ctx context.Context, planID string, set domain.Set) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return s.slots.Set(ctx, domain.Key(planID), string(raw))
}

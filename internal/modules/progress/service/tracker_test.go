package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	hclog "github.com/hashicorp/go-hclog"

	"skillsetu/internal/modules/progress/domain"
	"skillsetu/internal/modules/progress/service"
	apperrors "skillsetu/internal/platform/errors"
)

type fakeStore struct {
	mu      sync.Mutex
	raw     map[string]string
	saves   int
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{raw: map[string]string{}}
}

func (f *fakeStore) Load(_ context.Context, planID string) (domain.Set, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.raw[planID]
	if !ok {
		return domain.NewSet(), nil
	}
	return domain.Decode(raw)
}

func (f *fakeStore) Save(_ context.Context, planID string, set domain.Set) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("disk full")
	}
	f.saves++
	f.raw[planID] = `["` + strings.Join(set.IDs(), `","`) + `"]`
	if set.Len() == 0 {
		f.raw[planID] = `[]`
	}
	return nil
}

func TestDoubleToggleRestoresState(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	tracker := service.NewTracker(store, nil)
	ctx := context.Background()

	done, count, err := tracker.Toggle(ctx, "p1", "i1")
	if err != nil || !done || count != 1 {
		t.Fatalf("first toggle: done=%t count=%d err=%v", done, count, err)
	}
	done, count, err = tracker.Toggle(ctx, "p1", "i1")
	if err != nil || done || count != 0 {
		t.Fatalf("second toggle: done=%t count=%d err=%v", done, count, err)
	}
	if store.raw["p1"] != "[]" {
		t.Fatalf("expected empty persisted set, got %s", store.raw["p1"])
	}
	if store.saves != 2 {
		t.Fatalf("every toggle should persist, got %d saves", store.saves)
	}
}

func TestMalformedPayloadHydratesEmptyAndLogs(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.raw["p1"] = "{"
	var logs bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Warn})
	tracker := service.NewTracker(store, logger)

	set, err := tracker.Completed(context.Background(), "p1")
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("expected empty set, got %v", set.IDs())
	}
	if !strings.Contains(logs.String(), "discarding unreadable progress") {
		t.Fatalf("expected warning in logs, got %q", logs.String())
	}
	if _, _, err := tracker.Toggle(context.Background(), "p1", "i1"); err != nil {
		t.Fatalf("toggle after malformed: %v", err)
	}
	if store.raw["p1"] != `["i1"]` {
		t.Fatalf("expected payload overwritten, got %s", store.raw["p1"])
	}
}

func TestHydratesOncePerPlan(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.raw["p1"] = `["i1"]`
	tracker := service.NewTracker(store, nil)
	ctx := context.Background()

	if ok, _ := tracker.Has(ctx, "p1", "i1"); !ok {
		t.Fatalf("expected hydrated item")
	}
	store.raw["p1"] = `[]`
	if ok, _ := tracker.Has(ctx, "p1", "i1"); !ok {
		t.Fatalf("cached set should not be re-read")
	}
	tracker.Forget("p1")
	if ok, _ := tracker.Has(ctx, "p1", "i1"); ok {
		t.Fatalf("forgotten plan should re-hydrate")
	}
}

func TestPlansAreIndependent(t *testing.T) {
	t.Parallel()
	tracker := service.NewTracker(newFakeStore(), nil)
	ctx := context.Background()
	if _, _, err := tracker.Toggle(ctx, "p1", "shared"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if ok, _ := tracker.Has(ctx, "p2", "shared"); ok {
		t.Fatalf("progress leaked across plans")
	}
}

func TestSaveFailureKeepsPreviousState(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	tracker := service.NewTracker(store, nil)
	ctx := context.Background()
	store.failing = true
	if _, _, err := tracker.Toggle(ctx, "p1", "i1"); err == nil {
		t.Fatalf("expected save error")
	}
	if ok, _ := tracker.Has(ctx, "p1", "i1"); ok {
		t.Fatalf("failed toggle must not change state")
	}
}

func TestRejectsEmptyIDs(t *testing.T) {
	t.Parallel()
	tracker := service.NewTracker(newFakeStore(), nil)
	if _, _, err := tracker.Toggle(context.Background(), "", "i1"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := tracker.Has(context.Background(), "p1", " "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestConcurrentTogglesOnDistinctItems(t *testing.T) {
	t.Parallel()
	tracker := service.NewTracker(newFakeStore(), nil)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, _, err := tracker.Toggle(ctx, "p1", fmt.Sprintf("i%d", n)); err != nil {
				t.Errorf("toggle: %v", err)
			}
		}(i)
	}
	wg.Wait()
	set, err := tracker.Completed(ctx, "p1")
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if set.Len() != 20 {
		t.Fatalf("expected 20 completed items, got %d", set.Len())
	}
}

func TestToggleRereadsStore(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	tracker := service.NewTracker(store, nil)
	ctx := context.Background()

	if _, err := tracker.Completed(ctx, "p1"); err != nil {
		t.Fatalf("completed: %v", err)
	}
	store.mu.Lock()
	store.raw["p1"] = `["x"]`
	store.mu.Unlock()

	if _, _, err := tracker.Toggle(ctx, "p1", "y"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if store.raw["p1"] != `["x","y"]` {
		t.Fatalf("stored %s, want the other writer's item kept", store.raw["p1"])
	}
	if ok, _ := tracker.Has(ctx, "p1", "x"); !ok {
		t.Fatal("cache should hold the merged set after toggling")
	}
}

func TestForgetAllRehydratesEveryPlan(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	tracker := service.NewTracker(store, nil)
	ctx := context.Background()

	for _, plan := range []string{"p1", "p2"} {
		if ok, _ := tracker.Has(ctx, plan, "i1"); ok {
			t.Fatalf("%s: unexpected item", plan)
		}
	}
	store.mu.Lock()
	store.raw["p1"] = `["i1"]`
	store.raw["p2"] = `["i1"]`
	store.mu.Unlock()

	tracker.ForgetAll()
	for _, plan := range []string{"p1", "p2"} {
		if ok, _ := tracker.Has(ctx, plan, "i1"); !ok {
			t.Fatalf("%s: expected re-hydrated item", plan)
		}
	}
}

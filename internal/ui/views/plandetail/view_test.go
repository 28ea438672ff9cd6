package plandetail_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	plandto "skillsetu/internal/modules/plan/dto"
	progressdto "skillsetu/internal/modules/progress/dto"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/ui/views/plandetail"
)

type fakePort struct{}

func (fakePort) Detail(_ context.Context, id string) (plandto.DetailOutput, error) {
	return plandto.DetailOutput{Plan: plandto.PlanOutput{ID: id}}, nil
}

func (fakePort) Toggle(_ context.Context, planID, itemID string) (progressdto.ToggleOutput, error) {
	return progressdto.ToggleOutput{PlanID: planID, ItemID: itemID, Completed: true}, nil
}

type recorder struct{ errors []string }

func (r *recorder) Success(string)   {}
func (r *recorder) Error(msg string) { r.errors = append(r.errors, msg) }
func (r *recorder) Info(string)      {}

func detail(id string) plandto.DetailOutput {
	return plandto.DetailOutput{
		Plan: plandto.PlanOutput{ID: id, TargetRole: "Data Scientist", DurationWeeks: 4},
		Weeks: []plandto.WeekOutput{{
			Week: 1,
			Items: []plandto.ItemOutput{
				{ID: "i1", WeekNo: 1, DayNo: 1, Title: "Install Python"},
				{ID: "i2", WeekNo: 1, DayNo: 2, Title: "pandas basics", Completed: true},
			},
			Completed: 1,
			Total:     2,
		}},
		Completed: 1,
		Total:     2,
	}
}

func newModel() plandetail.Model {
	m := plandetail.New(fakePort{}, &recorder{}, "p1", "http://localhost:8000")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestLateReplyForAnotherPlanIsIgnored(t *testing.T) {
	t.Parallel()
	m := newModel()

	m, _ = m.Update(plandetail.DetailLoadedMsg{PlanID: "p0", Detail: detail("p0")})
	if !m.Loading() {
		t.Fatal("reply for another plan must not finish loading")
	}

	m, _ = m.Update(plandetail.DetailLoadedMsg{PlanID: "p1", Detail: detail("p1")})
	if m.Loading() {
		t.Fatal("expected plan loaded")
	}
	if done, total := m.Progress(); done != 1 || total != 2 {
		t.Fatalf("progress = %d/%d", done, total)
	}
}

func TestToggleRepliesForAnotherPlanAreIgnored(t *testing.T) {
	t.Parallel()
	m := newModel()
	m, _ = m.Update(plandetail.DetailLoadedMsg{PlanID: "p1", Detail: detail("p1")})

	m, _ = m.Update(plandetail.ToggledMsg{PlanID: "p0", Out: progressdto.ToggleOutput{PlanID: "p0", ItemID: "i1", Completed: true}})
	if done, _ := m.Progress(); done != 1 {
		t.Fatalf("foreign toggle changed progress to %d", done)
	}

	m, _ = m.Update(plandetail.ToggledMsg{PlanID: "p1", Out: progressdto.ToggleOutput{PlanID: "p1", ItemID: "i1", Completed: true}})
	if done, _ := m.Progress(); done != 2 {
		t.Fatalf("progress after toggle = %d", done)
	}
	m, _ = m.Update(plandetail.ToggledMsg{PlanID: "p1", Out: progressdto.ToggleOutput{PlanID: "p1", ItemID: "i2", Completed: false}})
	if done, _ := m.Progress(); done != 1 {
		t.Fatalf("progress after untoggle = %d", done)
	}
}

func TestSpaceTogglesItemUnderCursor(t *testing.T) {
	t.Parallel()
	m := newModel()
	m, _ = m.Update(plandetail.DetailLoadedMsg{PlanID: "p1", Detail: detail("p1")})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("expected toggle command")
	}
	got := cmd()
	msg, ok := got.(plandetail.ToggledMsg)
	if !ok {
		t.Fatalf("expected ToggledMsg, got %T", got)
	}
	if msg.PlanID != "p1" || msg.Out.ItemID != "i2" {
		t.Fatalf("toggled %s/%s", msg.PlanID, msg.Out.ItemID)
	}
}

func TestMissingPlanShowsNotFound(t *testing.T) {
	t.Parallel()
	notes := &recorder{}
	m := plandetail.New(fakePort{}, notes, "p1", "")
	m, _ = m.Update(plandetail.DetailLoadedMsg{PlanID: "p1", Err: fmt.Errorf("get plan: %w", apperrors.ErrNotFound)})
	if !strings.Contains(m.View(), "Plan not found.") {
		t.Fatalf("view = %q", m.View())
	}
	if len(notes.errors) != 0 {
		t.Fatalf("not found should not toast, got %v", notes.errors)
	}
}

package domain_test

import (
	"reflect"
	"testing"

	"skillsetu/internal/modules/plan/domain"
)

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: "c", WeekNo: 2, DayNo: 1, Title: "pandas basics"},
		{ID: "a", WeekNo: 1, DayNo: 2, Title: "SQL joins"},
		{ID: "b", WeekNo: 1, DayNo: 2, Title: "git"},
		{ID: "d", WeekNo: 1, DayNo: 1, Title: "Setup"},
		{ID: "e", WeekNo: 3, DayNo: 1, Title: "Capstone"},
	}
}

func ids(groups []domain.WeekGroup) [][]string {
	out := [][]string{}
	for _, g := range groups {
		row := []string{}
		for _, item := range g.Items {
			row = append(row, item.ID)
		}
		out = append(out, row)
	}
	return out
}

func TestGroupByWeekOrdering(t *testing.T) {
	t.Parallel()
	groups := domain.GroupByWeek(sampleItems())
	if len(groups) != 3 || groups[0].Week != 1 || groups[2].Week != 3 {
		t.Fatalf("unexpected weeks %+v", groups)
	}
	// Titles compare alphabetically, not by byte: "git" before "SQL joins".
	want := [][]string{{"d", "b", "a"}, {"c"}, {"e"}}
	if got := ids(groups); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestGroupByWeekTellsCaseAndAccentsApart(t *testing.T) {
	t.Parallel()
	items := []domain.Item{
		{ID: "upper", WeekNo: 1, DayNo: 1, Title: "Apple"},
		{ID: "lower", WeekNo: 1, DayNo: 1, Title: "apple"},
		{ID: "accent", WeekNo: 1, DayNo: 2, Title: "résumé"},
		{ID: "plain", WeekNo: 1, DayNo: 2, Title: "resume"},
	}
	want := [][]string{{"lower", "upper", "plain", "accent"}}
	if got := ids(domain.GroupByWeek(items)); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestGroupByWeekIsIdempotent(t *testing.T) {
	t.Parallel()
	first := domain.GroupByWeek(sampleItems())
	var flat []domain.Item
	for _, g := range first {
		flat = append(flat, g.Items...)
	}
	second := domain.GroupByWeek(flat)
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Fatalf("regrouping changed order: %v vs %v", ids(first), ids(second))
	}
}

func TestBoardDefaults(t *testing.T) {
	t.Parallel()
	board := domain.NewBoard(domain.GroupByWeek(sampleItems()))
	if board.Active() != 1 || !board.Expanded(1) || board.Expanded(2) {
		t.Fatalf("unexpected default state active=%d", board.Active())
	}
	empty := domain.NewBoard(nil)
	if empty.Active() != 1 {
		t.Fatalf("empty board should default to week 1")
	}
	if _, ok := empty.ActiveGroup(); ok {
		t.Fatalf("empty board has no active group")
	}
}

func TestBoardSelectExpands(t *testing.T) {
	t.Parallel()
	board := domain.NewBoard(domain.GroupByWeek(sampleItems()))
	board.Select(3)
	if board.Active() != 3 || !board.Expanded(3) {
		t.Fatalf("select should activate and expand")
	}
	board.ToggleWeek(3)
	if board.Expanded(3) {
		t.Fatalf("toggle should collapse")
	}
	board.SelectOffset(-1)
	if board.Active() != 2 || !board.Expanded(2) {
		t.Fatalf("offset selection failed, active=%d", board.Active())
	}
	board.SelectOffset(10)
	if board.Active() != 3 {
		t.Fatalf("offset should clamp, active=%d", board.Active())
	}
}

func TestBoardToggleAllFlips(t *testing.T) {
	t.Parallel()
	board := domain.NewBoard(domain.GroupByWeek(sampleItems()))
	board.ToggleAll()
	for _, w := range []int{1, 2, 3} {
		if board.Expanded(w) {
			t.Fatalf("week %d should be collapsed", w)
		}
	}
	board.ToggleAll()
	for _, w := range []int{1, 2, 3} {
		if !board.Expanded(w) {
			t.Fatalf("week %d should be expanded", w)
		}
	}
}

func TestCountCompleted(t *testing.T) {
	t.Parallel()
	done := map[string]bool{"a": true, "e": true, "zz": true}
	has := func(id string) bool { return done[id] }
	if got := domain.CountCompleted(sampleItems(), has); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

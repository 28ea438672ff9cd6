package domain

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type WeekGroup struct {
	Week  int
	Items []Item
}

// GroupByWeek buckets items by week ascending; inside a week items are
// ordered by day, then by title.
func GroupByWeek(items []Item) []WeekGroup {
	byWeek := map[int][]Item{}
	for _, item := range items {
		byWeek[item.WeekNo] = append(byWeek[item.WeekNo], item)
	}
	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	col := collate.New(language.English)
	groups := make([]WeekGroup, 0, len(weeks))
	for _, w := range weeks {
		bucket := byWeek[w]
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].DayNo != bucket[j].DayNo {
				return bucket[i].DayNo < bucket[j].DayNo
			}
			return col.CompareString(bucket[i].Title, bucket[j].Title) < 0
		})
		groups = append(groups, WeekGroup{Week: w, Items: bucket})
	}
	return groups
}

func CountCompleted(items []Item, has func(id string) bool) int {
	n := 0
	for _, item := range items {
		if has(item.ID) {
			n++
		}
	}
	return n
}

// Board is the week-tab state of a plan detail screen.
type Board struct {
	groups      []WeekGroup
	active      int
	expanded    map[int]bool
	allExpanded bool
}

func NewBoard(groups []WeekGroup) *Board {
	active := 1
	if len(groups) > 0 {
		active = groups[0].Week
	}
	return &Board{
		groups:      groups,
		active:      active,
		expanded:    map[int]bool{active: true},
		allExpanded: true,
	}
}

func (b *Board) Groups() []WeekGroup {
	return b.groups
}

func (b *Board) Active() int {
	return b.active
}

func (b *Board) ActiveGroup() (WeekGroup, bool) {
	for _, g := range b.groups {
		if g.Week == b.active {
			return g, true
		}
	}
	return WeekGroup{}, false
}

// Select makes week active and expands it if it was collapsed.
func (b *Board) Select(week int) {
	b.active = week
	b.expanded[week] = true
}

// SelectOffset moves the active tab by delta positions, clamped to the ends.
func (b *Board) SelectOffset(delta int) {
	if len(b.groups) == 0 {
		return
	}
	pos := 0
	for i, g := range b.groups {
		if g.Week == b.active {
			pos = i
			break
		}
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(b.groups) {
		pos = len(b.groups) - 1
	}
	b.Select(b.groups[pos].Week)
}

func (b *Board) ToggleWeek(week int) {
	if b.expanded[week] {
		delete(b.expanded, week)
		return
	}
	b.expanded[week] = true
}

// ToggleAll collapses everything when the last bulk action expanded, and
// expands everything otherwise.
func (b *Board) ToggleAll() {
	if b.allExpanded {
		b.expanded = map[int]bool{}
	} else {
		b.expanded = map[int]bool{}
		for _, g := range b.groups {
			b.expanded[g.Week] = true
		}
	}
	b.allExpanded = !b.allExpanded
}

func (b *Board) Expanded(week int) bool {
	return b.expanded[week]
}

func (b *Board) AllExpanded() bool {
	return b.allExpanded
}

package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "skillsetu/internal/platform/errors"
)

type Plan struct {
	ID            string
	TargetRole    string
	DurationWeeks int
	Status        string
	Summary       string
	CreatedAt     time.Time
}

type Item struct {
	ID            string
	WeekNo        int
	DayNo         int
	Title         string
	URL           string
	EstMinutes    int
	Type          string
	RequiredSkill string
}

type Detail struct {
	Plan  Plan
	Items []Item
}

// GenerateRequest is what the plan generator is asked for.
type GenerateRequest struct {
	Goal          string
	Skills        []string
	DurationWeeks int
}

type FilterKind string

const (
	FilterAll       FilterKind = "all"
	FilterActive    FilterKind = "active"
	FilterCompleted FilterKind = "completed"
	FilterAuto      FilterKind = "auto"
)

// FilterKinds lists the kinds in display order.
var FilterKinds = []FilterKind{FilterAll, FilterActive, FilterCompleted, FilterAuto}

func ParseFilterKind(raw string) (FilterKind, error) {
	kind := FilterKind(strings.ToLower(strings.TrimSpace(raw)))
	if kind == "" {
		return FilterAll, nil
	}
	for _, k := range FilterKinds {
		if k == kind {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown filter %q", apperrors.ErrInvalidInput, raw)
}

// Next cycles through FilterKinds.
func (k FilterKind) Next() FilterKind {
	for i, kind := range FilterKinds {
		if kind == k {
			return FilterKinds[(i+1)%len(FilterKinds)]
		}
	}
	return FilterAll
}

func (k FilterKind) Label() string {
	if k == "" {
		return "All"
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

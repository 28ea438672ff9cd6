package domain

import (
	"math"
	"strings"
	"time"

	"skillsetu/internal/platform/timeago"
)

type Stats struct {
	Count            int
	AvgDurationWeeks float64
	LastCreated      string
}

// Filter keeps plans matching both the free-text query and the kind.
// The input is never modified and order is preserved.
func Filter(plans []Plan, query string, kind FilterKind) []Plan {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if !matchesKind(p, kind) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Plan, q string) bool {
	for _, field := range []string{p.TargetRole, p.Summary, p.Status} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesKind(p Plan, kind FilterKind) bool {
	switch kind {
	case FilterActive, FilterCompleted:
		return strings.EqualFold(p.Status, string(kind))
	case FilterAuto:
		// Heuristic: the API has no provenance field, so generated plans are
		// recognised by their summary text.
		summary := strings.ToLower(p.Summary)
		return strings.Contains(summary, "ai") || strings.Contains(summary, "auto")
	default:
		return true
	}
}

// ComputeStats summarises the whole collection, independent of any filter.
func ComputeStats(plans []Plan, now time.Time) Stats {
	stats := Stats{Count: len(plans), LastCreated: "Never"}
	if len(plans) == 0 {
		return stats
	}
	total := 0
	var latest time.Time
	for _, p := range plans {
		total += p.DurationWeeks
		if p.CreatedAt.After(latest) {
			latest = p.CreatedAt
		}
	}
	stats.AvgDurationWeeks = math.Round(float64(total)/float64(len(plans))*10) / 10
	if !latest.IsZero() {
		stats.LastCreated = timeago.Format(latest, now)
	}
	return stats
}

func RemoveByID(plans []Plan, id string) []Plan {
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

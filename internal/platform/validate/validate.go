package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "skillsetu/internal/platform/errors"
)

const (
	MinPasswordLength = 6
	MinGoalLength     = 10
	MinDurationWeeks  = 2
	MaxDurationWeeks  = 24
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Each field validator returns the message to show, or "" when the value is acceptable.

func Email(value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return "Email is required"
	case !emailPattern.MatchString(value):
		return "Please enter a valid email address"
	}
	return ""
}

func Password(value string) string {
	switch {
	case value == "":
		return "Password is required"
	case utf8.RuneCountInString(value) < MinPasswordLength:
		return "Password must be at least 6 characters"
	}
	return ""
}

func Goal(value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return "Goal is required"
	case utf8.RuneCountInString(value) < MinGoalLength:
		return "Goal must be at least 10 characters"
	}
	return ""
}

func Skills(skills []string) string {
	for _, s := range skills {
		if strings.TrimSpace(s) != "" {
			return ""
		}
	}
	return "At least one skill is required"
}

func DurationWeeks(weeks int) string {
	if weeks < MinDurationWeeks || weeks > MaxDurationWeeks {
		return "Duration must be between 2 and 24 weeks"
	}
	return ""
}

// Credentials validates the login and registration form.
func Credentials(email, password string) error {
	errs := apperrors.FieldErrors{}
	add(errs, "email", Email(email))
	add(errs, "password", Password(password))
	return errs.OrNil()
}

// PlanRequest validates the plan generation form.
func PlanRequest(goal string, skills []string, weeks int) error {
	errs := apperrors.FieldErrors{}
	add(errs, "goal", Goal(goal))
	add(errs, "skills", Skills(skills))
	add(errs, "weeks", DurationWeeks(weeks))
	return errs.OrNil()
}

// SplitSkills turns "Go, SQL,go" into ["go", "sql"]: comma separated,
// trimmed, lower-cased, first occurrence wins.
func SplitSkills(raw string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		skill := strings.ToLower(strings.TrimSpace(part))
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	return out
}

func add(errs apperrors.FieldErrors, field, msg string) {
	if msg != "" {
		errs[field] = msg
	}
}

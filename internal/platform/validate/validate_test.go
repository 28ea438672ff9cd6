package validate_test

import (
	"errors"
	"reflect"
	"testing"

	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/validate"
)

func TestEmail(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"":             "Email is required",
		"   ":          "Email is required",
		"user":         "Please enter a valid email address",
		"user@host":    "Please enter a valid email address",
		"a b@host.com": "Please enter a valid email address",
		"a@b.co":       "",
	}
	for in, want := range cases {
		if got := validate.Email(in); got != want {
			t.Fatalf("Email(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()
	if got := validate.Password(""); got != "Password is required" {
		t.Fatalf("unexpected %q", got)
	}
	if got := validate.Password("12345"); got != "Password must be at least 6 characters" {
		t.Fatalf("unexpected %q", got)
	}
	if got := validate.Password("123456"); got != "" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestGoalIsTrimmed(t *testing.T) {
	t.Parallel()
	if got := validate.Goal("   short    "); got != "Goal must be at least 10 characters" {
		t.Fatalf("unexpected %q", got)
	}
	if got := validate.Goal("  "); got != "Goal is required" {
		t.Fatalf("unexpected %q", got)
	}
	if got := validate.Goal("Become a data engineer"); got != "" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestDurationBounds(t *testing.T) {
	t.Parallel()
	for weeks, ok := range map[int]bool{1: false, 2: true, 12: true, 24: true, 25: false} {
		if got := validate.DurationWeeks(weeks) == ""; got != ok {
			t.Fatalf("DurationWeeks(%d) valid=%t, want %t", weeks, got, ok)
		}
	}
}

func TestPlanRequestCollectsFields(t *testing.T) {
	t.Parallel()
	err := validate.PlanRequest("short", nil, 30)
	var fields apperrors.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected three failing fields, got %v", fields)
	}
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("field errors should wrap invalid input")
	}
	if err := validate.PlanRequest("Become a backend engineer", []string{"go"}, 8); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestCredentials(t *testing.T) {
	t.Parallel()
	err := validate.Credentials("", "123")
	if err == nil || err.Error() != "email: Email is required; password: Password must be at least 6 characters" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSplitSkills(t *testing.T) {
	t.Parallel()
	got := validate.SplitSkills(" Go, SQL ,,go, Docker ")
	want := []string{"go", "sql", "docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitSkills = %v, want %v", got, want)
	}
}

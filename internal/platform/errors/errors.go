package apperrors

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrTimeout              = errors.New("request timeout")
	ErrNetwork              = errors.New("network error")
	ErrGeneratorUnavailable = errors.New("ai generator unavailable")
	ErrNoCredential         = errors.New("no token found")
)

const GeneratorUnavailableMessage = "AI generator unavailable. Check if the generation service is running and reachable from the backend."

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error {
	return ErrInvalidInput
}

// OrNil returns nil when no field failed, so callers can return it directly.
func (f FieldErrors) OrNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// Detailer is implemented by errors carrying server-provided detail text.
type Detailer interface {
	DetailText() string
}

// UserMessage maps err to the text shown to the user. Unauthorized errors are
// handled once by the session layer and yield an empty message.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var fields FieldErrors
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ""
	case errors.Is(err, ErrGeneratorUnavailable):
		return GeneratorUnavailableMessage
	case errors.Is(err, ErrTimeout):
		return "Request timeout"
	case errors.Is(err, ErrNetwork):
		return "Network error"
	case errors.Is(err, ErrNoCredential):
		return "No token found."
	case errors.As(err, &fields):
		return fields.Error()
	}
	var detailed Detailer
	if errors.As(err, &detailed) {
		if detail := strings.TrimSpace(detailed.DetailText()); detail != "" {
			return detail
		}
	}
	return fallback
}

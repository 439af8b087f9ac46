// Package validate normalizes raw, untyped request records (decoded JSON
// objects) into domain values. Every failure is a *domain.ValidationError.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ballotportal/election-api/internal/core/domain"
)

// Record is a decoded JSON object.
type Record = map[string]any

var checker = validator.New()

// AsString returns the trimmed string value of a required field.
func AsString(value any, field string) (string, error) {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", domain.NewValidationError(domain.CodeMissingField, fmt.Sprintf("%s is required", field))
	}
	return strings.TrimSpace(s), nil
}

// AsArray returns value as a sequence. Elements are not inspected.
func AsArray(value any, field string) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	default:
		return nil, domain.NewValidationError(domain.CodeInvalidType, fmt.Sprintf("%s must be an array", field))
	}
}

// IsHTTPURL reports whether value is an absolute http or https URL with a
// host. Surrounding whitespace is ignored.
func IsHTTPURL(value string) bool {
	return checker.Var(strings.TrimSpace(value), "http_url") == nil
}

// optionalArray treats an absent or null field as an empty sequence.
func optionalArray(input Record, field string) ([]any, error) {
	raw, ok := input[field]
	if !ok || raw == nil {
		return []any{}, nil
	}
	return AsArray(raw, field)
}

func identifiers(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

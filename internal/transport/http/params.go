// Package http contains the chi HTTP handlers for the dashboard API.
package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apierrors "riskdesk/internal/errors"
)

// queryDateLayout is the wire format for date query parameters.
const queryDateLayout = "2006-01-02"

var validate = validator.New()

// queryDate parses an optional date parameter. Empty is the zero time.
func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return time.Time{}, apierrors.ErrValidation(name, fmt.Sprintf("expected %s date, got %q", queryDateLayout, raw))
	}
	return t, nil
}

// requiredQueryDate parses a mandatory date parameter.
func requiredQueryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, apierrors.ErrValidation(name, "parameter is required")
	}
	return queryDate(r, name)
}

// queryList parses a comma-separated multi-select parameter. Empty means
// "all", expressed as a nil slice.
func queryList(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateStruct runs the request struct's validate tags, converting the
// first failure into a field-level validation error.
func validateStruct(req any) error {
	if err := validate.Struct(req); err != nil {
		var invalid validator.ValidationErrors
		if ok := isValidationErrors(err, &invalid); ok && len(invalid) > 0 {
			fe := invalid[0]
			return apierrors.ErrValidation(strings.ToLower(fe.Field()), fmt.Sprintf("failed %q constraint", fe.Tag()))
		}
		return apierrors.ErrInvalidRequest
	}
	return nil
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	if ve, ok := err.(validator.ValidationErrors); ok {
		*target = ve
		return true
	}
	return false
}

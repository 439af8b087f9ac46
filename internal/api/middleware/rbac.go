package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ballotportal/election-api/internal/core/domain"
)

// RequireRole admits a request only when the role placed in the context by
// Auth is one of roles. Comparison ignores case.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if !allowed[strings.ToLower(role)] {
				return fmt.Errorf("role %q on %s: %w", role, c.Path(), domain.ErrForbidden)
			}
			return next(c)
		}
	}
}

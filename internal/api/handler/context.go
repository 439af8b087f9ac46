package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ballotportal/election-api/internal/api/middleware"
	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

// currentUser extracts the identity injected by the Auth middleware. An empty
// subject or role means the middleware did not run.
func currentUser(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.ContextUsername).(string)
	role, _ = c.Get(middleware.ContextRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// resolveViewer decides whose view a read request is served from.
//   - Without a userId query parameter the caller sees their own view.
//   - A user may only pass their own id.
//   - An administrator passing another id sees exactly what that user sees.
func resolveViewer(c echo.Context) (ports.Viewer, error) {
	userID, role, err := currentUser(c)
	if err != nil {
		return ports.Viewer{}, err
	}

	requested := strings.TrimSpace(c.QueryParam("userId"))
	if requested == "" || requested == userID {
		if role == domain.RoleAdmin {
			return ports.Viewer{UserID: userID, Role: domain.RoleAdmin}, nil
		}
		return ports.Viewer{UserID: userID, Role: domain.RoleUser}, nil
	}
	if role != domain.RoleAdmin {
		return ports.Viewer{}, domain.ErrForbidden
	}
	return ports.Viewer{UserID: requested, Role: domain.RoleUser}, nil
}

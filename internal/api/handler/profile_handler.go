package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ballotportal/election-api/internal/core/ports"
)

// ProfileHandler reads and writes voter profiles. Bodies are decoded into a
// raw record so field validation reports the original codes.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /api/public/profile.
//
// @Summary      The caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserProfile
// @Failure      404  {object}  domain.ErrorPayload
// @Router       /api/public/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	profile, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Put handles PUT /api/public/profile. The userId and role always come from
// the token, whatever the body says.
//
// @Summary      Create or replace the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.UserProfile  true  "Profile"
// @Success      200   {object}  domain.UserProfile
// @Failure      400   {object}  domain.ErrorPayload
// @Router       /api/public/profile [put]
func (h *ProfileHandler) Put(c echo.Context) error {
	userID, role, err := currentUser(c)
	if err != nil {
		return err
	}
	raw, err := decodeRecord(c)
	if err != nil {
		return err
	}
	raw["userId"] = userID
	raw["role"] = role

	profile, err := h.service.SaveProfile(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Upsert handles POST /api/admin/users.
//
// @Summary      Create or replace any user's profile
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.UserProfile  true  "Profile"
// @Success      200   {object}  domain.UserProfile
// @Failure      400   {object}  domain.ErrorPayload
// @Router       /api/admin/users [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	raw, err := decodeRecord(c)
	if err != nil {
		return err
	}
	profile, err := h.service.SaveProfile(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// decodeRecord reads a JSON object body without binding it to a struct.
func decodeRecord(c echo.Context) (map[string]any, error) {
	raw := map[string]any{}
	if c.Request().ContentLength == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "request body can't be empty")
	}
	if err := c.Echo().JSONSerializer.Deserialize(c, &raw); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if raw == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return raw, nil
}

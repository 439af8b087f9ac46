package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

type ResultsHandler struct {
	service ports.ResultsService
}

func NewResultsHandler(service ports.ResultsService) *ResultsHandler {
	return &ResultsHandler{service: service}
}

// Public handles GET /api/public/public-results.
//
// @Summary      Results of a period as seen by a user
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Param        periodId  query     string  true   "Period id"
// @Param        userId    query     string  false  "View as this user (admins only)"
// @Success      200       {object}  resultsResponse
// @Failure      400       {object}  domain.ErrorPayload
// @Failure      403       {object}  domain.ErrorPayload
// @Failure      404       {object}  domain.ErrorPayload
// @Router       /api/public/public-results [get]
func (h *ResultsHandler) Public(c echo.Context) error {
	periodID := c.QueryParam("periodId")
	if periodID == "" {
		return domain.NewValidationError(domain.CodeMissingField, "periodId is required")
	}
	viewer, err := resolveViewer(c)
	if err != nil {
		return err
	}

	view, err := h.service.PublicResults(c.Request().Context(), viewer, periodID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResultsResponse(view))
}

// Admin handles GET /api/admin/periods/:id/results.
//
// @Summary      Full tally of a period
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Period id"
// @Success      200  {object}  resultsResponse
// @Failure      404  {object}  domain.ErrorPayload
// @Router       /api/admin/periods/{id}/results [get]
func (h *ResultsHandler) Admin(c echo.Context) error {
	view, err := h.service.AdminResults(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResultsResponse(view))
}

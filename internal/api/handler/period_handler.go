package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ballotportal/election-api/internal/api/metrics"
	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
	"github.com/ballotportal/election-api/internal/core/session"
)

// PeriodHandler serves voting periods, their timing and their candidates.
type PeriodHandler struct {
	service ports.PeriodService
}

func NewPeriodHandler(service ports.PeriodService) *PeriodHandler {
	return &PeriodHandler{service: service}
}

// List handles GET /api/public/periods.
//
// @Summary      List the voting periods visible to a user
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Param        userId  query     string  false  "View as this user (admins only)"
// @Success      200     {array}   periodResponse
// @Failure      401     {object}  domain.ErrorPayload
// @Failure      403     {object}  domain.ErrorPayload
// @Failure      404     {object}  domain.ErrorPayload
// @Router       /api/public/periods [get]
func (h *PeriodHandler) List(c echo.Context) error {
	viewer, err := resolveViewer(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListVisiblePeriods(c.Request().Context(), viewer)
	if err != nil {
		return err
	}

	out := make([]periodResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toPeriodResponse(v))
	}
	return c.JSON(http.StatusOK, out)
}

// Timing handles GET /api/public/periods/:id/timing.
//
// @Summary      Current phase and countdown of a period
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Period id"
// @Param        userId  query     string  false  "View as this user (admins only)"
// @Success      200     {object}  timingResponse
// @Failure      403     {object}  domain.ErrorPayload
// @Failure      404     {object}  domain.ErrorPayload
// @Router       /api/public/periods/{id}/timing [get]
func (h *PeriodHandler) Timing(c echo.Context) error {
	viewer, err := resolveViewer(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetPeriod(c.Request().Context(), viewer, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimingResponse(*view))
}

// Candidates handles GET /api/public/candidates?periodId=.
//
// @Summary      List the candidates of a period
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Param        periodId  query     string  true  "Period id"
// @Success      200       {array}   domain.Candidate
// @Failure      400       {object}  domain.ErrorPayload
// @Failure      403       {object}  domain.ErrorPayload
// @Failure      404       {object}  domain.ErrorPayload
// @Router       /api/public/candidates [get]
func (h *PeriodHandler) Candidates(c echo.Context) error {
	viewer, err := resolveViewer(c)
	if err != nil {
		return err
	}

	candidates, err := h.service.ListCandidates(c.Request().Context(), viewer, c.QueryParam("periodId"))
	if err != nil {
		return err
	}
	if candidates == nil {
		candidates = []*domain.Candidate{}
	}
	return c.JSON(http.StatusOK, candidates)
}

// Create handles POST /api/admin/periods.
//
// @Summary      Open a voting period
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPeriodRequest  true  "Period"
// @Success      201   {object}  periodResponse
// @Failure      400   {object}  domain.ErrorPayload
// @Failure      404   {object}  domain.ErrorPayload
// @Router       /api/admin/periods [post]
func (h *PeriodHandler) Create(c echo.Context) error {
	var req createPeriodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start, ok := session.ParseTimestamp(req.StartTime)
	if !ok {
		return domain.NewValidationError(domain.CodeInvalidType, "startTime must be an ISO-8601 timestamp")
	}
	end, ok := session.ParseTimestamp(req.EndTime)
	if !ok {
		return domain.NewValidationError(domain.CodeInvalidType, "endTime must be an ISO-8601 timestamp")
	}

	view, err := h.service.CreatePeriod(c.Request().Context(), ports.CreatePeriodInput{
		ElectionID: req.ElectionID,
		Title:      req.Title,
		StartTime:  start,
		EndTime:    end,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPeriodResponse(*view))
}

// AddCandidate handles POST /api/admin/periods/:id/candidates.
//
// @Summary      Add a candidate to a period
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Period id"
// @Param        body  body      addCandidateRequest  true  "Candidate"
// @Success      201   {object}  domain.Candidate
// @Failure      400   {object}  domain.ErrorPayload
// @Failure      404   {object}  domain.ErrorPayload
// @Router       /api/admin/periods/{id}/candidates [post]
func (h *PeriodHandler) AddCandidate(c echo.Context) error {
	var req addCandidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	candidate, err := h.service.AddCandidate(c.Request().Context(), ports.AddCandidateInput{
		PeriodID: c.Param("id"),
		Name:     req.Name,
		LGA:      req.LGA,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, candidate)
}

// Publish handles POST /api/admin/periods/:id/publish.
//
// @Summary      Publish the results of a closed period
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Period id"
// @Success      200  {object}  periodResponse
// @Failure      404  {object}  domain.ErrorPayload
// @Failure      422  {object}  domain.ErrorPayload
// @Router       /api/admin/periods/{id}/publish [post]
func (h *PeriodHandler) Publish(c echo.Context) error {
	view, err := h.service.PublishResults(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ResultsPublishedTotal.Inc()
	return c.JSON(http.StatusOK, toPeriodResponse(*view))
}

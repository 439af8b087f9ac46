package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

type ElectionHandler struct {
	service ports.ElectionService
}

func NewElectionHandler(service ports.ElectionService) *ElectionHandler {
	return &ElectionHandler{service: service}
}

// Create handles POST /api/admin/elections.
//
// @Summary      Create an election
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.Election  true  "Election"
// @Success      201   {object}  domain.Election
// @Failure      400   {object}  domain.ErrorPayload
// @Failure      409   {object}  domain.ErrorPayload
// @Router       /api/admin/elections [post]
func (h *ElectionHandler) Create(c echo.Context) error {
	raw, err := decodeRecord(c)
	if err != nil {
		return err
	}
	election, err := h.service.CreateElection(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, election)
}

// List handles GET /api/admin/elections.
//
// @Summary      List elections
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Election
// @Router       /api/admin/elections [get]
func (h *ElectionHandler) List(c echo.Context) error {
	elections, err := h.service.ListElections(c.Request().Context())
	if err != nil {
		return err
	}
	if elections == nil {
		elections = []*domain.Election{}
	}
	return c.JSON(http.StatusOK, elections)
}

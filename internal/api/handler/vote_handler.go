package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ballotportal/election-api/internal/api/metrics"
	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

// VoteHandler accepts ballots.
type VoteHandler struct {
	service ports.VotingService
}

func NewVoteHandler(service ports.VotingService) *VoteHandler {
	return &VoteHandler{service: service}
}

// Cast handles POST /api/public/votes. The voter is always the token subject.
//
// @Summary      Cast a ballot
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      castVoteRequest  true  "Ballot"
// @Success      201   {object}  voteResponse
// @Failure      400   {object}  domain.ErrorPayload
// @Failure      404   {object}  domain.ErrorPayload
// @Failure      409   {object}  domain.ErrorPayload
// @Failure      422   {object}  domain.ErrorPayload
// @Router       /api/public/votes [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.CastVote(c.Request().Context(), ports.CastVoteInput{
		PeriodID:    req.PeriodID,
		CandidateID: req.CandidateID,
		UserID:      userID,
		RequestID:   c.Response().Header().Get(echo.HeaderXRequestID),
	})
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			metrics.VoteRejectionsTotal.WithLabelValues(reason).Inc()
		}
		return err
	}

	metrics.VotesCastTotal.WithLabelValues(result.PeriodID).Inc()
	return c.JSON(http.StatusCreated, voteResponse{
		VoteID:      result.VoteID,
		PeriodID:    result.PeriodID,
		CandidateID: result.CandidateID,
		CastAt:      result.CastAt,
	})
}

// rejectionReason labels rule-based refusals; infrastructure errors are not
// counted as rejections.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, domain.ErrPeriodNotLive):
		return "not_live"
	case errors.Is(err, domain.ErrNotEligible):
		return "not_eligible"
	case errors.Is(err, domain.ErrElectionClosed):
		return "election_closed"
	case errors.Is(err, domain.ErrCandidateNotFound):
		return "unknown_candidate"
	}
	return ""
}

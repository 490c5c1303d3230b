package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"teamforge/internal/errors"
	"teamforge/internal/model"
	"teamforge/internal/service"
)

// TeamHandler handles the team registry and join-request endpoints.
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// CreateTeamRequest represents a team creation request.
type CreateTeamRequest struct {
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	ProblemStatement string   `json:"problemStatement"`
	TechStack        []string `json:"techStack"`
}

// JoinTeamRequest represents a join request submission.
type JoinTeamRequest struct {
	Message string `json:"message"`
}

// DecideRequest represents a leader's decision on a join request.
type DecideRequest struct {
	Action    string `json:"action" validate:"required,oneof=approve reject"`
	RequestID string `json:"requestId" validate:"required"`
}

// TeamResponse wraps a team with a message for mutating endpoints.
type TeamResponse struct {
	Message string      `json:"message"`
	Team    *model.Team `json:"team"`
}

// CreateTeam godoc
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTeamRequest true "Team data"
// @Success 201 {object} TeamResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := h.teamService.Create(c.Request().Context(), callerID, service.CreateTeamInput{
		Name:             req.Name,
		Description:      req.Description,
		ProblemStatement: req.ProblemStatement,
		TechStack:        req.TechStack,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, TeamResponse{
		Message: "Team created successfully",
		Team:    team,
	})
}

// ListTeams godoc
// @Summary List open teams
// @Tags teams
// @Produce json
// @Success 200 {array} model.Team
// @Router /teams [get]
func (h *TeamHandler) ListTeams(c echo.Context) error {
	teams, err := h.teamService.ListOpen(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, teams)
}

// GetTeam godoc
// @Summary Get own team (leader only)
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} model.Team
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teamID, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	team, err := h.teamService.Get(c.Request().Context(), teamID, callerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, team)
}

// SubmitJoinRequest godoc
// @Summary Request to join a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body JoinTeamRequest true "Join message"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id}/join [post]
func (h *TeamHandler) SubmitJoinRequest(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teamID, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	var req JoinTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.teamService.SubmitJoinRequest(c.Request().Context(), teamID, callerID, req.Message); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Join request sent successfully",
	})
}

// DecideJoinRequest godoc
// @Summary Approve or reject a join request (leader only)
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body DecideRequest true "Decision"
// @Success 200 {object} model.Team
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id} [put]
func (h *TeamHandler) DecideJoinRequest(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teamID, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	var req DecideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request ID",
			Code:  "INVALID_UUID",
		})
	}

	team, err := h.teamService.DecideJoinRequest(c.Request().Context(), teamID, requestID, callerID, service.JoinRequestAction(req.Action))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, team)
}

// FinalizeTeam godoc
// @Summary Finalize a complete team (leader only)
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} TeamResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id}/finalize [post]
func (h *TeamHandler) FinalizeTeam(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teamID, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	team, err := h.teamService.Finalize(c.Request().Context(), teamID, callerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TeamResponse{
		Message: "Team finalized successfully!",
		Team:    team,
	})
}

// DeleteTeam godoc
// @Summary Delete own team (leader only)
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	teamID, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.teamService.Delete(c.Request().Context(), teamID, callerID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Team deleted successfully",
	})
}

// currentUserID resolves the authenticated caller's ID from the JWT claims.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, parseErr := claims.SubjectID()
	if parseErr != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token subject",
			Code:  "UNAUTHORIZED",
		})
	}
	return id, nil
}

// parsePathID parses a UUID path parameter.
func parsePathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

func toGender(g string) model.Gender {
	return model.Gender(g)
}

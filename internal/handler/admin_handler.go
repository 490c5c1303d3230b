package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"teamforge/internal/errors"
	"teamforge/internal/service"
)

// AdminHandler exposes the privileged user/team/feedback surface.
type AdminHandler struct {
	userService     service.UserService
	teamService     service.TeamService
	feedbackService service.FeedbackService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(userService service.UserService, teamService service.TeamService, feedbackService service.FeedbackService) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		teamService:     teamService,
		feedbackService: feedbackService,
	}
}

// AdminUserRequest represents an admin user create/update payload.
type AdminUserRequest struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password"`
	Phone          string   `json:"phone" validate:"required"`
	Year           string   `json:"year" validate:"required"`
	Branch         string   `json:"branch" validate:"required"`
	Gender         string   `json:"gender" validate:"required,oneof=Male Female Other"`
	Skills         []string `json:"skills"`
	LookingForTeam bool     `json:"lookingForTeam"`
}

// AdminCreateTeamRequest represents an admin team creation payload.
type AdminCreateTeamRequest struct {
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	ProblemStatement string   `json:"problemStatement"`
	TechStack        []string `json:"techStack"`
	LeaderID         string   `json:"leaderId" validate:"required"`
	IsFinalized      bool     `json:"isFinalized"`
}

// AdminUpdateTeamRequest represents an admin team update payload.
type AdminUpdateTeamRequest struct {
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	ProblemStatement string   `json:"problemStatement"`
	TechStack        []string `json:"techStack"`
	IsFinalized      bool     `json:"isFinalized"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.AdminList(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdminUserRequest true "User data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req AdminUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.AdminCreate(c.Request().Context(), service.AdminCreateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Year:           req.Year,
		Branch:         req.Branch,
		Gender:         toGender(req.Gender),
		Skills:         req.Skills,
		LookingForTeam: req.LookingForTeam,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

// GetUser godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.AdminGet(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body AdminUserRequest true "User data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	var req AdminUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.AdminUpdate(c.Request().Context(), id, service.AdminUpdateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Year:           req.Year,
		Branch:         req.Branch,
		Gender:         toGender(req.Gender),
		Skills:         req.Skills,
		LookingForTeam: req.LookingForTeam,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.AdminDelete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}

// ListTeams godoc
// @Summary List all teams
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Team
// @Router /admin/teams [get]
func (h *AdminHandler) ListTeams(c echo.Context) error {
	teams, err := h.teamService.AdminList(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, teams)
}

// CreateTeam godoc
// @Summary Create a team on behalf of a leader
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdminCreateTeamRequest true "Team data"
// @Success 201 {object} TeamResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/teams [post]
func (h *AdminHandler) CreateTeam(c echo.Context) error {
	var req AdminCreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	leaderID, err := uuid.Parse(req.LeaderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid leader ID",
			Code:  "INVALID_UUID",
		})
	}

	team, err := h.teamService.AdminCreate(c.Request().Context(), service.AdminCreateTeamInput{
		Name:             req.Name,
		Description:      req.Description,
		ProblemStatement: req.ProblemStatement,
		TechStack:        req.TechStack,
		LeaderID:         leaderID,
		IsFinalized:      req.IsFinalized,
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

// GetTeam godoc
// @Summary Get a team
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} model.Team
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/teams/{id} [get]
func (h *AdminHandler) GetTeam(c echo.Context) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	team, err := h.teamService.AdminGet(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, team)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body AdminUpdateTeamRequest true "Team data"
// @Success 200 {object} TeamResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/teams/{id} [put]
func (h *AdminHandler) UpdateTeam(c echo.Context) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	var req AdminUpdateTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := h.teamService.AdminUpdate(c.Request().Context(), id, service.AdminUpdateTeamInput{
		Name:             req.Name,
		Description:      req.Description,
		ProblemStatement: req.ProblemStatement,
		TechStack:        req.TechStack,
		IsFinalized:      req.IsFinalized,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TeamResponse{
		Message: "Team updated successfully",
		Team:    team,
	})
}

// DeleteTeam godoc
// @Summary Delete a team
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/teams/{id} [delete]
func (h *AdminHandler) DeleteTeam(c echo.Context) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.teamService.AdminDelete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Team deleted successfully",
	})
}

// ListFeedback godoc
// @Summary List feedback entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Feedback
// @Router /admin/feedback [get]
func (h *AdminHandler) ListFeedback(c echo.Context) error {
	entries, err := h.feedbackService.AdminList(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, entries)
}

// Reconcile godoc
// @Summary Repair membership drift
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ReconcileReport
// @Router /admin/reconcile [post]
func (h *AdminHandler) Reconcile(c echo.Context) error {
	report, err := h.teamService.Reconcile(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, report)
}

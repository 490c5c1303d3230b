package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teamforge/internal/errors"
	"teamforge/internal/model"
	"teamforge/internal/service"
)

// FeedbackHandler handles the public feedback intake.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// FeedbackRequest represents a feedback submission.
type FeedbackRequest struct {
	Type     string `json:"type" validate:"required,oneof=bug feature improvement issue other"`
	Name     string `json:"name" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// Submit godoc
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body FeedbackRequest true "Feedback data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.feedbackService.Submit(c.Request().Context(), service.SubmitFeedbackInput{
		Type:      model.FeedbackType(req.Type),
		Name:      req.Name,
		Subject:   req.Subject,
		Message:   req.Message,
		Email:     req.Email,
		Priority:  req.Priority,
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Feedback submitted successfully",
	})
}

package service

import (
	"context"
	"fmt"

	"teamforge/internal/model"
	"teamforge/internal/repository"
)

// SubmitFeedbackInput is the public feedback payload.
type SubmitFeedbackInput struct {
	Type      model.FeedbackType
	Name      string
	Subject   string
	Message   string
	Email     string
	Priority  string
	UserAgent string
	IP        string
}

// FeedbackService is the append-only feedback intake.
type FeedbackService interface {
	Submit(ctx context.Context, input SubmitFeedbackInput) (*model.Feedback, error)
	AdminList(ctx context.Context) ([]model.Feedback, error)
}

type feedbackService struct {
	repo repository.FeedbackRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(repo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{repo: repo}
}

func (s *feedbackService) Submit(ctx context.Context, input SubmitFeedbackInput) (*model.Feedback, error) {
	email := input.Email
	if email == "" {
		email = "not provided"
	}
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	feedback := &model.Feedback{
		Type:      input.Type,
		Name:      input.Name,
		Subject:   input.Subject,
		Message:   input.Message,
		Email:     email,
		Priority:  priority,
		Status:    model.FeedbackStatusOpen,
		UserAgent: input.UserAgent,
		IP:        input.IP,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return feedback, nil
}

func (s *feedbackService) AdminList(ctx context.Context) ([]model.Feedback, error) {
	return s.repo.List(ctx)
}

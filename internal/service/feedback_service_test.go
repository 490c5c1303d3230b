package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"teamforge/internal/model"
)

// MockFeedbackRepository is a mock implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func TestFeedbackService_Submit(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		svc := NewFeedbackService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Feedback")).Return(nil)

		feedback, err := svc.Submit(context.Background(), SubmitFeedbackInput{
			Type:    model.FeedbackTypeBug,
			Name:    "Asha",
			Subject: "Broken listing",
			Message: "Open teams page is empty",
		})

		assert.NoError(t, err)
		assert.Equal(t, "not provided", feedback.Email)
		assert.Equal(t, "medium", feedback.Priority)
		assert.Equal(t, model.FeedbackStatusOpen, feedback.Status)
		repo.AssertExpectations(t)
	})

	t.Run("explicit fields are kept", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		svc := NewFeedbackService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Feedback")).Return(nil)

		feedback, err := svc.Submit(context.Background(), SubmitFeedbackInput{
			Type:     model.FeedbackTypeFeature,
			Name:     "Asha",
			Subject:  "Dark mode",
			Message:  "Please",
			Email:    "asha@example.com",
			Priority: "low",
		})

		assert.NoError(t, err)
		assert.Equal(t, "asha@example.com", feedback.Email)
		assert.Equal(t, "low", feedback.Priority)
	})
}

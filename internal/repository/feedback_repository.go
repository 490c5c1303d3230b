package repository

import (
	"context"

	"gorm.io/gorm"

	"teamforge/internal/model"
)

// FeedbackRepository defines feedback persistence operations. The store is
// append-only from the public surface; admins read it back newest-first.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	List(ctx context.Context) ([]model.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository builds a GORM-backed repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	var entries []model.Feedback
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

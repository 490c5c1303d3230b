package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackType categorizes a feedback entry.
type FeedbackType string

const (
	FeedbackTypeBug         FeedbackType = "bug"
	FeedbackTypeFeature     FeedbackType = "feature"
	FeedbackTypeImprovement FeedbackType = "improvement"
	FeedbackTypeIssue       FeedbackType = "issue"
	FeedbackTypeOther       FeedbackType = "other"
)

// FeedbackStatus tracks triage of a feedback entry.
type FeedbackStatus string

const (
	FeedbackStatusOpen       FeedbackStatus = "open"
	FeedbackStatusInProgress FeedbackStatus = "in-progress"
	FeedbackStatusResolved   FeedbackStatus = "resolved"
	FeedbackStatusClosed     FeedbackStatus = "closed"
)

// Feedback is an append-only feedback entry. It is intentionally decoupled
// from users and teams: no foreign keys, no cascades.
type Feedback struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Type      FeedbackType   `json:"type" gorm:"type:varchar(20);not null;index"`
	Name      string         `json:"name" gorm:"size:255;not null"`
	Subject   string         `json:"subject" gorm:"size:255;not null"`
	Message   string         `json:"message" gorm:"type:text;not null"`
	Email     string         `json:"email" gorm:"size:255;default:'not provided'"`
	Priority  string         `json:"priority" gorm:"size:20;default:'medium'"`
	Status    FeedbackStatus `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	UserAgent string         `json:"userAgent" gorm:"size:512"`
	IP        string         `json:"ip" gorm:"size:64"`
	CreatedAt time.Time      `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

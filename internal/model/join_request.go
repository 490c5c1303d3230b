package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JoinRequestStatus represents the state of a join request.
// pending is the only non-terminal state.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a user's pending expression of interest in joining a team.
type JoinRequest struct {
	ID        uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	TeamID    uuid.UUID         `json:"teamId" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID         `json:"userId" gorm:"type:char(36);not null;index"`
	Message   string            `json:"message" gorm:"type:text"`
	Status    JoinRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *JoinRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsPending reports whether the request can still be decided.
func (r *JoinRequest) IsPending() bool {
	return r.Status == JoinRequestPending
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted at registration.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Role controls access to the admin surface.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered participant. TeamID is the single source of
// truth for membership: a team's member list is exactly the set of users
// whose TeamID points at it.
type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name           string     `json:"name" gorm:"size:255;not null"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Phone          string     `json:"phone" gorm:"size:20;not null"`
	Year           string     `json:"year" gorm:"size:20;not null"`
	Branch         string     `json:"branch" gorm:"size:100;not null"`
	Gender         Gender     `json:"gender" gorm:"type:varchar(10);not null"`
	Skills         StringList `json:"skills" gorm:"type:json"`
	LookingForTeam bool       `json:"lookingForTeam" gorm:"default:false;index"`
	TeamID         *uuid.UUID `json:"teamId" gorm:"type:char(36);index"`
	Role           Role       `json:"role,omitempty" gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user may use the admin surface.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

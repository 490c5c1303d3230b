package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxTeamSize is the required size of a finalized team.
const MaxTeamSize = 6

// Team represents a hackathon team. RequiredMembers and HasFemale are
// derived from the current member list and must only be written through
// RecomputeDerived, inside the same transaction as the membership change
// that triggered it.
type Team struct {
	ID               uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name             string     `json:"name" gorm:"size:255;not null"`
	Description      string     `json:"description" gorm:"type:text;not null"`
	ProblemStatement string     `json:"problemStatement" gorm:"type:text"`
	TechStack        StringList `json:"techStack" gorm:"type:json"`
	LeaderID         uuid.UUID  `json:"leaderId" gorm:"type:char(36);not null;index"`
	RequiredMembers  int        `json:"requiredMembers" gorm:"not null;default:6"`
	HasFemale        bool       `json:"hasFemale" gorm:"not null;default:false"`
	IsFinalized      bool       `json:"isFinalized" gorm:"not null;default:false;index"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	// Relations
	Leader       *User         `json:"leader,omitempty" gorm:"foreignKey:LeaderID"`
	Members      []User        `json:"members" gorm:"foreignKey:TeamID"`
	JoinRequests []JoinRequest `json:"joinRequests,omitempty" gorm:"foreignKey:TeamID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// RecomputeDerived refreshes RequiredMembers and HasFemale from the given
// member list. Callers must persist the team in the same transaction as the
// membership mutation.
func (t *Team) RecomputeDerived(members []User) {
	required := MaxTeamSize - len(members)
	if required < 0 {
		required = 0
	}
	if required > MaxTeamSize {
		required = MaxTeamSize
	}
	t.RequiredMembers = required

	t.HasFemale = false
	for _, m := range members {
		if m.Gender == GenderFemale {
			t.HasFemale = true
			break
		}
	}
}

// IsFull reports whether the team has no open slots.
func (t *Team) IsFull() bool {
	return t.RequiredMembers <= 0
}

// IsLeader reports whether userID is the team leader.
func (t *Team) IsLeader(userID uuid.UUID) bool {
	return t.LeaderID == userID
}

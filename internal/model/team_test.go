package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTeamRecomputeDerived(t *testing.T) {
	tests := []struct {
		name             string
		genders          []Gender
		expectedRequired int
		expectedFemale   bool
	}{
		{
			name:             "empty team needs six",
			genders:          nil,
			expectedRequired: 6,
			expectedFemale:   false,
		},
		{
			name:             "lone male leader",
			genders:          []Gender{GenderMale},
			expectedRequired: 5,
			expectedFemale:   false,
		},
		{
			name:             "female among members",
			genders:          []Gender{GenderMale, GenderFemale, GenderOther},
			expectedRequired: 3,
			expectedFemale:   true,
		},
		{
			name:             "full team",
			genders:          []Gender{GenderMale, GenderMale, GenderFemale, GenderMale, GenderMale, GenderMale},
			expectedRequired: 0,
			expectedFemale:   true,
		},
		{
			name:             "overfull clamps to zero",
			genders:          []Gender{GenderMale, GenderMale, GenderMale, GenderMale, GenderMale, GenderMale, GenderFemale},
			expectedRequired: 0,
			expectedFemale:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := make([]User, 0, len(tt.genders))
			for _, g := range tt.genders {
				members = append(members, User{ID: uuid.New(), Gender: g})
			}

			team := Team{RequiredMembers: -1, HasFemale: true}
			team.RecomputeDerived(members)

			assert.Equal(t, tt.expectedRequired, team.RequiredMembers)
			assert.Equal(t, tt.expectedFemale, team.HasFemale)
		})
	}
}

func TestTeamIsFull(t *testing.T) {
	assert.False(t, (&Team{RequiredMembers: 1}).IsFull())
	assert.True(t, (&Team{RequiredMembers: 0}).IsFull())
}

func TestTeamIsLeader(t *testing.T) {
	leaderID := uuid.New()
	team := &Team{LeaderID: leaderID}

	assert.True(t, team.IsLeader(leaderID))
	assert.False(t, team.IsLeader(uuid.New()))
}

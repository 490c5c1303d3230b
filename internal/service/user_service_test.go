package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamforge/internal/errors"
	"teamforge/internal/model"
)

func newUserServiceMocks() (*MockTeamRepository, *MockUserRepository, UserService) {
	userRepo := new(MockUserRepository)
	teamRepo := &MockTeamRepository{users: userRepo}
	svc := NewUserService(userRepo, teamRepo, nilCache, "changeme123")
	return teamRepo, userRepo, svc
}

func TestUserService_AdminCreate(t *testing.T) {
	t.Run("empty password falls back to the default", func(t *testing.T) {
		_, userRepo, svc := newUserServiceMocks()

		userRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*model.User)
				user.ID = uuid.New()
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("changeme123")))
			}).Return(nil)

		user, err := svc.AdminCreate(context.Background(), AdminCreateUserInput{
			Name:   "New",
			Email:  "new@example.com",
			Gender: model.GenderMale,
		})

		assert.NoError(t, err)
		assert.NotNil(t, user)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, userRepo, svc := newUserServiceMocks()

		userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
			Return(&model.User{ID: uuid.New()}, nil)

		user, err := svc.AdminCreate(context.Background(), AdminCreateUserInput{
			Name:   "New",
			Email:  "taken@example.com",
			Gender: model.GenderFemale,
		})

		assert.ErrorIs(t, err, errors.ErrEmailTaken)
		assert.Nil(t, user)
	})

	t.Run("unknown gender value", func(t *testing.T) {
		_, userRepo, svc := newUserServiceMocks()

		user, err := svc.AdminCreate(context.Background(), AdminCreateUserInput{
			Name:   "New",
			Email:  "new@example.com",
			Gender: model.Gender("Robot"),
		})

		assert.ErrorIs(t, err, errors.ErrInvalidGender)
		assert.Nil(t, user)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_AdminUpdate(t *testing.T) {
	t.Run("gender change on a teamed user refreshes team derived fields", func(t *testing.T) {
		teamRepo, userRepo, svc := newUserServiceMocks()

		teamID := uuid.New()
		userID := uuid.New()
		user := &model.User{ID: userID, Email: "asha@example.com", Gender: model.GenderMale, TeamID: &teamID}

		userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(user, nil)
		userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		teamRepo.On("FindByIDForUpdate", mock.Anything, teamID).
			Return(&model.Team{ID: teamID, RequiredMembers: 5, HasFemale: false}, nil)
		userRepo.On("ListByTeam", mock.Anything, teamID).
			Return(members(teamID, model.GenderFemale), nil)
		teamRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Team")).
			Run(func(args mock.Arguments) {
				team := args.Get(1).(*model.Team)
				assert.True(t, team.HasFemale)
				assert.Equal(t, 5, team.RequiredMembers)
			}).Return(nil)

		updated, err := svc.AdminUpdate(context.Background(), userID, AdminUpdateUserInput{
			Name:   "Asha",
			Email:  "asha@example.com",
			Gender: model.GenderFemale,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.GenderFemale, updated.Gender)
		teamRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("email owned by another user", func(t *testing.T) {
		_, userRepo, svc := newUserServiceMocks()

		userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
			Return(&model.User{ID: uuid.New()}, nil)

		updated, err := svc.AdminUpdate(context.Background(), uuid.New(), AdminUpdateUserInput{
			Email:  "taken@example.com",
			Gender: model.GenderMale,
		})

		assert.ErrorIs(t, err, errors.ErrEmailTaken)
		assert.Nil(t, updated)
	})

	t.Run("unknown gender value", func(t *testing.T) {
		_, userRepo, svc := newUserServiceMocks()

		updated, err := svc.AdminUpdate(context.Background(), uuid.New(), AdminUpdateUserInput{
			Email:  "asha@example.com",
			Gender: model.Gender("Robot"),
		})

		assert.ErrorIs(t, err, errors.ErrInvalidGender)
		assert.Nil(t, updated)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserService_AdminDelete(t *testing.T) {
	t.Run("deleting a plain member detaches and recomputes the team", func(t *testing.T) {
		teamRepo, userRepo, svc := newUserServiceMocks()

		teamID := uuid.New()
		userID := uuid.New()
		leaderID := uuid.New()

		userRepo.On("FindByID", mock.Anything, userID).
			Return(&model.User{ID: userID, Gender: model.GenderFemale, TeamID: &teamID}, nil)
		teamRepo.On("DeleteJoinRequestsByUser", mock.Anything, userID).Return(nil)
		teamRepo.On("FindByIDForUpdate", mock.Anything, teamID).
			Return(&model.Team{ID: teamID, LeaderID: leaderID, RequiredMembers: 4, HasFemale: true}, nil)
		userRepo.On("SetMembership", mock.Anything, userID, (*uuid.UUID)(nil), false).Return(nil)
		userRepo.On("ListByTeam", mock.Anything, teamID).
			Return(members(teamID, model.GenderMale), nil)
		teamRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Team")).
			Run(func(args mock.Arguments) {
				team := args.Get(1).(*model.Team)
				assert.Equal(t, 5, team.RequiredMembers)
				assert.False(t, team.HasFemale)
			}).Return(nil)
		userRepo.On("Delete", mock.Anything, userID).Return(nil)

		err := svc.AdminDelete(context.Background(), userID)

		assert.NoError(t, err)
		teamRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("deleting a leader takes the whole team down", func(t *testing.T) {
		teamRepo, userRepo, svc := newUserServiceMocks()

		teamID := uuid.New()
		leaderID := uuid.New()

		userRepo.On("FindByID", mock.Anything, leaderID).
			Return(&model.User{ID: leaderID, TeamID: &teamID}, nil)
		teamRepo.On("DeleteJoinRequestsByUser", mock.Anything, leaderID).Return(nil)
		teamRepo.On("FindByIDForUpdate", mock.Anything, teamID).
			Return(&model.Team{ID: teamID, LeaderID: leaderID}, nil)
		userRepo.On("ReleaseTeam", mock.Anything, teamID).Return(nil)
		teamRepo.On("DeleteJoinRequestsByTeam", mock.Anything, teamID).Return(nil)
		teamRepo.On("Delete", mock.Anything, teamID).Return(nil)
		userRepo.On("Delete", mock.Anything, leaderID).Return(nil)

		err := svc.AdminDelete(context.Background(), leaderID)

		assert.NoError(t, err)
		teamRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("dangling team reference is tolerated", func(t *testing.T) {
		teamRepo, userRepo, svc := newUserServiceMocks()

		ghost := uuid.New()
		userID := uuid.New()

		userRepo.On("FindByID", mock.Anything, userID).
			Return(&model.User{ID: userID, TeamID: &ghost}, nil)
		teamRepo.On("DeleteJoinRequestsByUser", mock.Anything, userID).Return(nil)
		teamRepo.On("FindByIDForUpdate", mock.Anything, ghost).Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Delete", mock.Anything, userID).Return(nil)

		err := svc.AdminDelete(context.Background(), userID)

		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "SetMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		_, userRepo, svc := newUserServiceMocks()

		userID := uuid.New()
		userRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		err := svc.AdminDelete(context.Background(), userID)

		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamforge/internal/cache"
	"teamforge/internal/errors"
	"teamforge/internal/model"
	"teamforge/internal/repository"
)

// AdminCreateUserInput is the admin user-creation payload. Password falls
// back to the configured default when empty.
type AdminCreateUserInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	Year           string
	Branch         string
	Gender         model.Gender
	Skills         []string
	LookingForTeam bool
}

// AdminUpdateUserInput replaces a user's profile fields. Membership and role
// are not part of the payload.
type AdminUpdateUserInput struct {
	Name           string
	Email          string
	Phone          string
	Year           string
	Branch         string
	Gender         model.Gender
	Skills         []string
	LookingForTeam bool
}

// UserService is the user directory behind the admin surface.
type UserService interface {
	AdminList(ctx context.Context) ([]model.User, error)
	AdminGet(ctx context.Context, id uuid.UUID) (*model.User, error)
	AdminCreate(ctx context.Context, input AdminCreateUserInput) (*model.User, error)
	AdminUpdate(ctx context.Context, id uuid.UUID, input AdminUpdateUserInput) (*model.User, error)
	AdminDelete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo        repository.UserRepository
	teamRepo        repository.TeamRepository
	cache           *cache.Client
	defaultPassword string
}

// NewUserService builds a UserService. defaultPassword is used for
// admin-created users without an explicit password.
func NewUserService(userRepo repository.UserRepository, teamRepo repository.TeamRepository, cache *cache.Client, defaultPassword string) UserService {
	return &userService{
		userRepo:        userRepo,
		teamRepo:        teamRepo,
		cache:           cache,
		defaultPassword: defaultPassword,
	}
}

func (s *userService) AdminList(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) AdminGet(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *userService) AdminCreate(ctx context.Context, input AdminCreateUserInput) (*model.User, error) {
	if !model.ValidGender(input.Gender) {
		return nil, errors.ErrInvalidGender
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	password := input.Password
	if password == "" {
		password = s.defaultPassword
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   string(hashedPassword),
		Phone:          input.Phone,
		Year:           input.Year,
		Branch:         input.Branch,
		Gender:         input.Gender,
		Skills:         input.Skills,
		LookingForTeam: input.LookingForTeam,
		Role:           model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// AdminUpdate replaces profile fields. A gender change on a teamed user
// refreshes that team's derived fields in the same transaction.
func (s *userService) AdminUpdate(ctx context.Context, id uuid.UUID, input AdminUpdateUserInput) (*model.User, error) {
	if !model.ValidGender(input.Gender) {
		return nil, errors.ErrInvalidGender
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil && existing.ID != id {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	var updated *model.User
	err = s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		user, err := users.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		genderChanged := user.Gender != input.Gender
		user.Name = input.Name
		user.Email = input.Email
		user.Phone = input.Phone
		user.Year = input.Year
		user.Branch = input.Branch
		user.Gender = input.Gender
		user.Skills = input.Skills
		user.LookingForTeam = input.LookingForTeam
		if err := users.Update(ctx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		if genderChanged && user.TeamID != nil {
			if err := recomputeTeam(ctx, teams, users, *user.TeamID); err != nil {
				return err
			}
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, openTeamsCacheKey)
	return updated, nil
}

// AdminDelete removes a user and tears down their membership: a plain member
// is pulled from their team (derived fields recomputed), a leader takes the
// whole team down with them since teams cannot exist without a leader.
func (s *userService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		user, err := users.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		if err := teams.DeleteJoinRequestsByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("drop join requests: %w", err)
		}

		if user.TeamID != nil {
			team, err := teams.FindByIDForUpdate(ctx, *user.TeamID)
			if err != nil && err != gorm.ErrRecordNotFound {
				return fmt.Errorf("load team: %w", err)
			}
			switch {
			case err == gorm.ErrRecordNotFound:
				// Dangling reference; nothing to tear down.
			case team.IsLeader(user.ID):
				if err := deleteTeamCascade(ctx, teams, users, team.ID); err != nil {
					return err
				}
			default:
				if err := users.SetMembership(ctx, user.ID, nil, false); err != nil {
					return fmt.Errorf("detach member: %w", err)
				}
				if err := recomputeTeam(ctx, teams, users, team.ID); err != nil {
					return err
				}
			}
		}

		if err := users.Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, openTeamsCacheKey)
	return nil
}

// recomputeTeam refreshes a team's derived fields from its current members
// inside the caller's transaction.
func recomputeTeam(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository, teamID uuid.UUID) error {
	team, err := teams.FindByIDForUpdate(ctx, teamID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrTeamNotFound
		}
		return fmt.Errorf("load team: %w", err)
	}
	members, err := users.ListByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	team.RecomputeDerived(members)
	if err := teams.Update(ctx, team); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func parseUserID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamforge/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.User, error)
	// SetMembership updates the membership pair (teamId, lookingForTeam) on a
	// single user. A nil teamID releases the user.
	SetMembership(ctx context.Context, userID uuid.UUID, teamID *uuid.UUID, lookingForTeam bool) error
	// ReleaseTeam clears team_id and sets looking_for_team for every member
	// of the given team. Used by the team-deletion cascade.
	ReleaseTeam(ctx context.Context, teamID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("updated_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) SetMembership(ctx context.Context, userID uuid.UUID, teamID *uuid.UUID, lookingForTeam bool) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"team_id":          teamID,
			"looking_for_team": lookingForTeam,
		}).Error
}

func (r *userRepository) ReleaseTeam(ctx context.Context, teamID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("team_id = ?", teamID).
		Updates(map[string]interface{}{
			"team_id":          nil,
			"looking_for_team": true,
		}).Error
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamforge/internal/model"
)

// TeamRepository defines team and join-request persistence operations.
// Membership-mutating flows run inside WithTransaction with the team row
// locked via FindByIDForUpdate, so the capacity check and the member append
// are a single atomic step.
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	// FindByIDForUpdate locks the team row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Team, error)
	ListOpen(ctx context.Context) ([]model.Team, error)
	ListAll(ctx context.Context) ([]model.Team, error)

	CreateJoinRequest(ctx context.Context, req *model.JoinRequest) error
	UpdateJoinRequest(ctx context.Context, req *model.JoinRequest) error
	FindJoinRequest(ctx context.Context, teamID, requestID uuid.UUID) (*model.JoinRequest, error)
	HasPendingRequest(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	DeleteJoinRequestsByUser(ctx context.Context, userID uuid.UUID) error
	DeleteJoinRequestsByTeam(ctx context.Context, teamID uuid.UUID) error

	// WithTransaction runs fn with transaction-scoped team and user
	// repositories. Both sides of a membership change commit or roll back
	// together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, teams TeamRepository, users UserRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Omit("Leader", "Members", "JoinRequests").Create(team).Error
}

func (r *teamRepository) Update(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Omit("Leader", "Members", "JoinRequests").Save(team).Error
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Team{}, "id = ?", id).Error
}

func (r *teamRepository) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Leader").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("users.updated_at ASC")
		}).
		Preload("JoinRequests", func(db *gorm.DB) *gorm.DB {
			return db.Order("join_requests.created_at ASC")
		}).
		Preload("JoinRequests.User")
}

func (r *teamRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := r.preload(r.db.WithContext(ctx)).Where("id = ?", id).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) ListOpen(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.preload(r.db.WithContext(ctx)).
		Where("is_finalized = ? AND required_members > 0", false).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) ListAll(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.preload(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) CreateJoinRequest(ctx context.Context, req *model.JoinRequest) error {
	return r.db.WithContext(ctx).Omit("User").Create(req).Error
}

func (r *teamRepository) UpdateJoinRequest(ctx context.Context, req *model.JoinRequest) error {
	return r.db.WithContext(ctx).Omit("User").Save(req).Error
}

func (r *teamRepository) FindJoinRequest(ctx context.Context, teamID, requestID uuid.UUID) (*model.JoinRequest, error) {
	var req model.JoinRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", requestID, teamID).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *teamRepository) HasPendingRequest(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.JoinRequest{}).
		Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, model.JoinRequestPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *teamRepository) DeleteJoinRequestsByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.JoinRequest{}, "user_id = ?", userID).Error
}

func (r *teamRepository) DeleteJoinRequestsByTeam(ctx context.Context, teamID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.JoinRequest{}, "team_id = ?", teamID).Error
}

func (r *teamRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, teams TeamRepository, users UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &teamRepository{db: tx}, &userRepository{db: tx})
	})
}

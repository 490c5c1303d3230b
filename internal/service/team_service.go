package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamforge/internal/cache"
	"teamforge/internal/errors"
	"teamforge/internal/model"
	"teamforge/internal/repository"
)

const (
	openTeamsCacheKey = "teams:open"
	openTeamsCacheTTL = 30 * time.Second
)

// JoinRequestAction is a leader's decision on a pending join request.
type JoinRequestAction string

const (
	ActionApprove JoinRequestAction = "approve"
	ActionReject  JoinRequestAction = "reject"
)

// CreateTeamInput carries the self-service team creation payload.
type CreateTeamInput struct {
	Name             string
	Description      string
	ProblemStatement string
	TechStack        []string
}

// AdminCreateTeamInput carries the admin team creation payload. A leader is
// always required: teams never exist without one.
type AdminCreateTeamInput struct {
	Name             string
	Description      string
	ProblemStatement string
	TechStack        []string
	LeaderID         uuid.UUID
	IsFinalized      bool
}

// AdminUpdateTeamInput replaces the descriptive fields of a team. Membership
// and its derived fields are not part of the payload.
type AdminUpdateTeamInput struct {
	Name             string
	Description      string
	ProblemStatement string
	TechStack        []string
	IsFinalized      bool
}

// ReconcileReport summarizes a membership drift repair pass.
type ReconcileReport struct {
	OrphanedUsersReleased int `json:"orphanedUsersReleased"`
	TeamsRecomputed       int `json:"teamsRecomputed"`
}

// TeamService owns the team registry, the join-request workflow, and the
// membership invariants. Every membership mutation runs in a transaction
// that locks the team row, recomputes the derived fields, and updates the
// affected user in the same commit.
type TeamService interface {
	Create(ctx context.Context, leaderID uuid.UUID, input CreateTeamInput) (*model.Team, error)
	Get(ctx context.Context, teamID, callerID uuid.UUID) (*model.Team, error)
	ListOpen(ctx context.Context) ([]model.Team, error)
	Delete(ctx context.Context, teamID, callerID uuid.UUID) error

	SubmitJoinRequest(ctx context.Context, teamID, callerID uuid.UUID, message string) error
	DecideJoinRequest(ctx context.Context, teamID, requestID, callerID uuid.UUID, action JoinRequestAction) (*model.Team, error)
	Finalize(ctx context.Context, teamID, callerID uuid.UUID) (*model.Team, error)

	AdminList(ctx context.Context) ([]model.Team, error)
	AdminGet(ctx context.Context, teamID uuid.UUID) (*model.Team, error)
	AdminCreate(ctx context.Context, input AdminCreateTeamInput) (*model.Team, error)
	AdminUpdate(ctx context.Context, teamID uuid.UUID, input AdminUpdateTeamInput) (*model.Team, error)
	AdminDelete(ctx context.Context, teamID uuid.UUID) error
	Reconcile(ctx context.Context) (*ReconcileReport, error)
}

type teamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewTeamService creates a new team service.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, cache *cache.Client) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *teamService) invalidateListing(ctx context.Context) {
	_ = s.cache.Delete(ctx, openTeamsCacheKey)
}

// Create makes the caller leader and first member of a new team.
func (s *teamService) Create(ctx context.Context, leaderID uuid.UUID, input CreateTeamInput) (*model.Team, error) {
	var teamID uuid.UUID
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		leader, err := users.FindByID(ctx, leaderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return fmt.Errorf("load leader: %w", err)
		}
		if leader.TeamID != nil {
			return errors.ErrAlreadyInTeam
		}

		team := &model.Team{
			Name:             input.Name,
			Description:      input.Description,
			ProblemStatement: input.ProblemStatement,
			TechStack:        input.TechStack,
			LeaderID:         leader.ID,
		}
		team.RecomputeDerived([]model.User{*leader})
		if err := teams.Create(ctx, team); err != nil {
			return fmt.Errorf("create team: %w", err)
		}
		if err := users.SetMembership(ctx, leader.ID, &team.ID, false); err != nil {
			return fmt.Errorf("attach leader: %w", err)
		}
		teamID = team.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.findTeam(ctx, teamID)
}

// Get returns the team to its leader only.
func (s *teamService) Get(ctx context.Context, teamID, callerID uuid.UUID) (*model.Team, error) {
	team, err := s.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.IsLeader(callerID) {
		return nil, errors.ErrNotLeader
	}
	return team, nil
}

// ListOpen returns teams still accepting members, newest first. The listing
// is the hottest read of the dashboard, so it is cached briefly.
func (s *teamService) ListOpen(ctx context.Context) ([]model.Team, error) {
	var cached []model.Team
	if s.cache.GetJSON(ctx, openTeamsCacheKey, &cached) {
		return cached, nil
	}

	teams, err := s.teamRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open teams: %w", err)
	}

	s.cache.SetJSON(ctx, openTeamsCacheKey, teams, openTeamsCacheTTL)
	return teams, nil
}

// Delete lets the leader dissolve their team. Every member is released:
// teamId cleared, lookingForTeam set.
func (s *teamService) Delete(ctx context.Context, teamID, callerID uuid.UUID) error {
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		team, err := teams.FindByIDForUpdate(ctx, teamID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrTeamNotFound
			}
			return fmt.Errorf("load team: %w", err)
		}
		if !team.IsLeader(callerID) {
			return errors.ErrNotLeader
		}
		return deleteTeamCascade(ctx, teams, users, team.ID)
	})
	if err != nil {
		return err
	}

	s.invalidateListing(ctx)
	return nil
}

// SubmitJoinRequest appends a pending request from the caller. The team row
// is locked so the duplicate-pending check and the insert cannot interleave
// with a concurrent submission or approval.
func (s *teamService) SubmitJoinRequest(ctx context.Context, teamID, callerID uuid.UUID, message string) error {
	return s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		caller, err := users.FindByID(ctx, callerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return fmt.Errorf("load caller: %w", err)
		}
		if caller.TeamID != nil {
			return errors.ErrAlreadyInTeam
		}

		team, err := teams.FindByIDForUpdate(ctx, teamID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrTeamNotFound
			}
			return fmt.Errorf("load team: %w", err)
		}
		if team.IsFinalized {
			return errors.ErrTeamFinalized
		}
		if team.IsFull() {
			return errors.ErrTeamFull
		}

		pending, err := teams.HasPendingRequest(ctx, team.ID, caller.ID)
		if err != nil {
			return fmt.Errorf("check pending request: %w", err)
		}
		if pending {
			return errors.ErrDuplicateRequest
		}

		req := &model.JoinRequest{
			TeamID:  team.ID,
			UserID:  caller.ID,
			Message: message,
			Status:  model.JoinRequestPending,
		}
		if err := teams.CreateJoinRequest(ctx, req); err != nil {
			return fmt.Errorf("create join request: %w", err)
		}
		return nil
	})
}

// DecideJoinRequest applies a leader's approve/reject decision. Capacity is
// re-validated at decision time under the row lock: two concurrent approvals
// serialize on the lock and the second sees the updated member count, so the
// team can never overshoot six members.
func (s *teamService) DecideJoinRequest(ctx context.Context, teamID, requestID, callerID uuid.UUID, action JoinRequestAction) (*model.Team, error) {
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		team, err := teams.FindByIDForUpdate(ctx, teamID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrTeamNotFound
			}
			return fmt.Errorf("load team: %w", err)
		}
		if !team.IsLeader(callerID) {
			return errors.ErrNotLeader
		}
		if team.IsFinalized {
			return errors.ErrTeamFinalized
		}

		req, err := teams.FindJoinRequest(ctx, team.ID, requestID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRequestNotFound
			}
			return fmt.Errorf("load join request: %w", err)
		}
		if !req.IsPending() {
			return errors.ErrRequestResolved
		}

		if action == ActionReject {
			req.Status = model.JoinRequestRejected
			if err := teams.UpdateJoinRequest(ctx, req); err != nil {
				return fmt.Errorf("reject join request: %w", err)
			}
			return nil
		}

		// Approve path: re-validate everything that may have changed since
		// submission.
		requester, err := users.FindByID(ctx, req.UserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return fmt.Errorf("load requester: %w", err)
		}
		if requester.TeamID != nil {
			return errors.ErrAlreadyInTeam
		}

		members, err := users.ListByTeam(ctx, team.ID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		if len(members) >= model.MaxTeamSize {
			return errors.ErrTeamFull
		}

		if err := users.SetMembership(ctx, requester.ID, &team.ID, false); err != nil {
			return fmt.Errorf("attach member: %w", err)
		}
		requester.TeamID = &team.ID
		members = append(members, *requester)

		team.RecomputeDerived(members)
		if err := teams.Update(ctx, team); err != nil {
			return fmt.Errorf("update team: %w", err)
		}

		req.Status = model.JoinRequestApproved
		if err := teams.UpdateJoinRequest(ctx, req); err != nil {
			return fmt.Errorf("approve join request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.findTeam(ctx, teamID)
}

// Finalize sets the one-way latch once the team is complete and compliant.
func (s *teamService) Finalize(ctx context.Context, teamID, callerID uuid.UUID) (*model.Team, error) {
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		team, err := teams.FindByIDForUpdate(ctx, teamID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrTeamNotFound
			}
			return fmt.Errorf("load team: %w", err)
		}
		if !team.IsLeader(callerID) {
			return errors.ErrNotLeader
		}

		// Judge from the actual member list, not the stored derived fields.
		members, err := users.ListByTeam(ctx, team.ID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		team.RecomputeDerived(members)
		if len(members) != model.MaxTeamSize {
			return errors.ErrTeamNotComplete
		}
		if !team.HasFemale {
			return errors.ErrNoFemaleMember
		}

		team.IsFinalized = true
		if err := teams.Update(ctx, team); err != nil {
			return fmt.Errorf("finalize team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.findTeam(ctx, teamID)
}

// AdminList returns every team, newest first.
func (s *teamService) AdminList(ctx context.Context) ([]model.Team, error) {
	return s.teamRepo.ListAll(ctx)
}

// AdminGet returns any team without the leader-only restriction.
func (s *teamService) AdminGet(ctx context.Context, teamID uuid.UUID) (*model.Team, error) {
	return s.findTeam(ctx, teamID)
}

// AdminCreate creates a team on behalf of an existing unaffiliated user, who
// becomes leader and first member.
func (s *teamService) AdminCreate(ctx context.Context, input AdminCreateTeamInput) (*model.Team, error) {
	var teamID uuid.UUID
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		leader, err := users.FindByID(ctx, input.LeaderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return fmt.Errorf("load leader: %w", err)
		}
		if leader.TeamID != nil {
			return errors.ErrLeaderUnavailable
		}

		team := &model.Team{
			Name:             input.Name,
			Description:      input.Description,
			ProblemStatement: input.ProblemStatement,
			TechStack:        input.TechStack,
			LeaderID:         leader.ID,
			IsFinalized:      input.IsFinalized,
		}
		team.RecomputeDerived([]model.User{*leader})
		if err := teams.Create(ctx, team); err != nil {
			return fmt.Errorf("create team: %w", err)
		}
		if err := users.SetMembership(ctx, leader.ID, &team.ID, false); err != nil {
			return fmt.Errorf("attach leader: %w", err)
		}
		teamID = team.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.findTeam(ctx, teamID)
}

// AdminUpdate replaces the descriptive fields. Membership-derived fields are
// untouched. Finalization stays a one-way latch even here: clearing the flag
// on a finalized team is rejected.
func (s *teamService) AdminUpdate(ctx context.Context, teamID uuid.UUID, input AdminUpdateTeamInput) (*model.Team, error) {
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		team, err := teams.FindByIDForUpdate(ctx, teamID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrTeamNotFound
			}
			return fmt.Errorf("load team: %w", err)
		}
		if team.IsFinalized && !input.IsFinalized {
			return errors.ErrTeamFinalized
		}

		team.Name = input.Name
		team.Description = input.Description
		team.ProblemStatement = input.ProblemStatement
		team.TechStack = input.TechStack
		team.IsFinalized = input.IsFinalized
		if err := teams.Update(ctx, team); err != nil {
			return fmt.Errorf("update team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.findTeam(ctx, teamID)
}

// AdminDelete dissolves any team, releasing its members.
func (s *teamService) AdminDelete(ctx context.Context, teamID uuid.UUID) error {
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		if _, err := teams.FindByIDForUpdate(ctx, teamID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrTeamNotFound
			}
			return fmt.Errorf("load team: %w", err)
		}
		return deleteTeamCascade(ctx, teams, users, teamID)
	})
	if err != nil {
		return err
	}

	s.invalidateListing(ctx)
	return nil
}

// Reconcile scans for membership drift and repairs it: users whose teamId
// points at a missing team are released, and teams whose stored derived
// fields disagree with actual membership are recomputed.
func (s *teamService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository) error {
		allTeams, err := teams.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		known := make(map[uuid.UUID]bool, len(allTeams))
		for _, t := range allTeams {
			known[t.ID] = true
		}

		allUsers, err := users.List(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		for _, u := range allUsers {
			if u.TeamID != nil && !known[*u.TeamID] {
				if err := users.SetMembership(ctx, u.ID, nil, true); err != nil {
					return fmt.Errorf("release user %s: %w", u.ID, err)
				}
				report.OrphanedUsersReleased++
			}
		}

		for i := range allTeams {
			team, err := teams.FindByIDForUpdate(ctx, allTeams[i].ID)
			if err != nil {
				return fmt.Errorf("lock team %s: %w", allTeams[i].ID, err)
			}
			members, err := users.ListByTeam(ctx, team.ID)
			if err != nil {
				return fmt.Errorf("list members: %w", err)
			}
			prevRequired, prevFemale := team.RequiredMembers, team.HasFemale
			team.RecomputeDerived(members)
			if team.RequiredMembers != prevRequired || team.HasFemale != prevFemale {
				if err := teams.Update(ctx, team); err != nil {
					return fmt.Errorf("update team %s: %w", team.ID, err)
				}
				report.TeamsRecomputed++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return report, nil
}

func (s *teamService) findTeam(ctx context.Context, teamID uuid.UUID) (*model.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("load team: %w", err)
	}
	return team, nil
}

// deleteTeamCascade releases every member, removes the team's join requests,
// and deletes the team record, all in the caller's transaction.
func deleteTeamCascade(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository, teamID uuid.UUID) error {
	if err := users.ReleaseTeam(ctx, teamID); err != nil {
		return fmt.Errorf("release members: %w", err)
	}
	if err := teams.DeleteJoinRequestsByTeam(ctx, teamID); err != nil {
		return fmt.Errorf("drop join requests: %w", err)
	}
	if err := teams.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

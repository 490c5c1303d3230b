package main

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamforge/internal/cache"
	"teamforge/internal/config"
	"teamforge/internal/db"
	"teamforge/internal/logger"
	"teamforge/internal/model"
	"teamforge/internal/repository"
	"teamforge/internal/service"
)

// seedUser describes a demo participant created for local development.
type seedUser struct {
	Name   string
	Email  string
	Phone  string
	Year   string
	Branch string
	Gender model.Gender
	Skills []string
}

var demoUsers = []seedUser{
	{Name: "Aarav Sharma", Email: "aarav@example.com", Phone: "9000000001", Year: "3", Branch: "CSE", Gender: model.GenderMale, Skills: []string{"Go", "React"}},
	{Name: "Priya Patel", Email: "priya@example.com", Phone: "9000000002", Year: "2", Branch: "ECE", Gender: model.GenderFemale, Skills: []string{"Python", "ML"}},
	{Name: "Rohan Gupta", Email: "rohan@example.com", Phone: "9000000003", Year: "4", Branch: "CSE", Gender: model.GenderMale, Skills: []string{"Node.js"}},
	{Name: "Sneha Iyer", Email: "sneha@example.com", Phone: "9000000004", Year: "3", Branch: "IT", Gender: model.GenderFemale, Skills: []string{"Flutter", "Firebase"}},
	{Name: "Vikram Rao", Email: "vikram@example.com", Phone: "9000000005", Year: "2", Branch: "ME", Gender: model.GenderMale, Skills: []string{"CAD", "Arduino"}},
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}
	log.Info("database ready")

	userRepo := repository.NewUserRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	ctx := context.Background()

	if err := seedAdmin(ctx, userRepo, cfg.AdminEmail, cfg.AdminPass); err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}
	log.Info("admin user ready", zap.String("email", cfg.AdminEmail))

	created, err := seedParticipants(ctx, userRepo, cfg.DefaultPass)
	if err != nil {
		log.Fatal("seed participants", zap.Error(err))
	}
	log.Info("participants seeded", zap.Int("created", created))

	if err := seedDemoTeam(ctx, teamRepo, userRepo, cacheClient); err != nil {
		log.Fatal("seed demo team", zap.Error(err))
	}
	log.Info("seed completed")
}

// seedAdmin creates the dashboard admin if it does not exist yet. An existing
// account under the admin email is promoted rather than recreated.
func seedAdmin(ctx context.Context, users repository.UserRepository, email, password string) error {
	existing, err := users.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing != nil {
		if existing.IsAdmin() {
			return nil
		}
		existing.Role = model.RoleAdmin
		return users.Update(ctx, existing)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return users.Create(ctx, &model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Phone:        "0000000000",
		Year:         "-",
		Branch:       "-",
		Gender:       model.GenderOther,
		Role:         model.RoleAdmin,
	})
}

// seedParticipants creates demo users with the default password, skipping
// any email already present.
func seedParticipants(ctx context.Context, users repository.UserRepository, password string) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, su := range demoUsers {
		existing, err := users.FindByEmail(ctx, su.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, err
		}
		if existing != nil {
			continue
		}
		user := &model.User{
			Name:           su.Name,
			Email:          su.Email,
			PasswordHash:   string(hash),
			Phone:          su.Phone,
			Year:           su.Year,
			Branch:         su.Branch,
			Gender:         su.Gender,
			Skills:         su.Skills,
			LookingForTeam: true,
			Role:           model.RoleUser,
		}
		if err := users.Create(ctx, user); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedDemoTeam creates one open team led by the first demo user, going
// through the service so the membership invariants hold.
func seedDemoTeam(ctx context.Context, teams repository.TeamRepository, users repository.UserRepository, cacheClient *cache.Client) error {
	leader, err := users.FindByEmail(ctx, demoUsers[0].Email)
	if err != nil {
		return err
	}
	if leader.TeamID != nil {
		return nil
	}

	teamService := service.NewTeamService(teams, users, cacheClient)
	_, err = teamService.Create(ctx, leader.ID, service.CreateTeamInput{
		Name:        "Crash Test Dummies",
		Description: "Demo team seeded for local development",
		TechStack:   []string{"Go", "MySQL", "Redis"},
	})
	return err
}

package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-backend/internal/core/config"
	"portfolio-backend/internal/core/database"
	"portfolio-backend/internal/core/logger"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repo"
	"portfolio-backend/pkg/utils"
)

// 初始化管理员、单例档案和一组起步技能，可重复执行
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Skill{},
		&domain.Project{},
		&domain.Experience{},
		&domain.BlogPost{},
		&domain.Comment{},
		&domain.Like{},
		&domain.Contact{},
	); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := repo.NewUserRepo(db)
	profiles := repo.NewProfileRepo(db)
	skills := repo.NewSkillRepo(db)

	adminEmail := cfg.Seed.AdminEmail
	if adminEmail == "" {
		log.Fatal("seed.admin_email not configured")
	}

	admin, err := users.FindByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatal("lookup admin failed", zap.Error(err))
	}
	switch {
	case admin == nil:
		name := cfg.Seed.AdminName
		u := &domain.User{
			ID:    utils.NewID(),
			Email: adminEmail,
			Role:  domain.RoleAdmin,
		}
		if name != "" {
			u.Name = &name
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("create admin failed", zap.Error(err))
		}
		log.Info("admin created", zap.String("email", adminEmail))
	case admin.Role != domain.RoleAdmin:
		admin.Role = domain.RoleAdmin
		if err := users.Update(ctx, admin); err != nil {
			log.Fatal("promote admin failed", zap.Error(err))
		}
		log.Info("admin promoted", zap.String("email", adminEmail))
	default:
		log.Info("admin already present", zap.String("email", adminEmail))
	}

	existing, err := profiles.First(ctx)
	if err != nil {
		log.Fatal("lookup profile failed", zap.Error(err))
	}
	if existing == nil {
		p := &domain.Profile{
			ID:          utils.NewID(),
			Name:        "Your Name",
			Email:       adminEmail,
			Designation: "Full Stack Developer",
			Bio:         "Short bio goes here.",
			SocialLinks: domain.StringMap{},
		}
		if err := profiles.Create(ctx, p); err != nil {
			log.Fatal("create profile failed", zap.Error(err))
		}
		log.Info("profile created")
	} else {
		log.Info("profile already present")
	}

	count, err := skills.Count(ctx)
	if err != nil {
		log.Fatal("count skills failed", zap.Error(err))
	}
	if count == 0 {
		starter := []domain.Skill{
			{ID: utils.NewID(), Name: "Go", Category: "Backend", Proficiency: 90, Order: 1},
			{ID: utils.NewID(), Name: "TypeScript", Category: "Frontend", Proficiency: 85, Order: 2},
			{ID: utils.NewID(), Name: "PostgreSQL", Category: "Database", Proficiency: 80, Order: 3},
			{ID: utils.NewID(), Name: "Redis", Category: "Database", Proficiency: 75, Order: 4},
			{ID: utils.NewID(), Name: "Docker", Category: "DevOps", Proficiency: 70, Order: 5},
		}
		for i := range starter {
			if err := skills.Create(ctx, &starter[i]); err != nil {
				log.Fatal("create skill failed", zap.Error(err), zap.String("name", starter[i].Name))
			}
		}
		log.Info("starter skills created", zap.Int("count", len(starter)))
	} else {
		log.Info("skills already present", zap.Int64("count", count))
	}

	log.Info("seed done")
}

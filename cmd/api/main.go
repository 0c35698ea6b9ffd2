package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/core/cache"
	"portfolio-backend/internal/core/config"
	"portfolio-backend/internal/core/database"
	"portfolio-backend/internal/core/identity"
	"portfolio-backend/internal/core/logger"
	"portfolio-backend/internal/core/server"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repo"
	"portfolio-backend/internal/transport/http/handler"
	"portfolio-backend/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
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
		log.Info("automigrate done")
	}

	// 身份令牌校验 + 本地用户对齐
	verifier := &identity.TokenVerifier{
		Secret: []byte(cfg.Auth.TokenSecret),
		Issuer: cfg.Auth.Issuer,
		TTL:    time.Duration(cfg.Auth.TokenTTLMin) * time.Minute,
	}
	users := repo.NewUserRepo(db)
	resolver := auth.NewResolver(verifier, users)

	// 公开读接口的 Redis 缓存，不开也能跑
	var ca *cache.Cache
	cacheTTL := time.Duration(cfg.Redis.TTLSec) * time.Second
	if cfg.Redis.Enable {
		ca = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	profiles := repo.NewProfileRepo(db)
	skills := repo.NewSkillRepo(db)
	projects := repo.NewProjectRepo(db)
	experiences := repo.NewExperienceRepo(db)
	blog := repo.NewBlogRepo(db)
	contacts := repo.NewContactRepo(db)

	r := router.NewAPIEngine(router.Deps{
		Cfg:        cfg,
		Log:        log,
		Resolver:   resolver,
		Auth:       handler.NewAuthHandler(users),
		Profile:    handler.NewProfileHandler(profiles, ca, cacheTTL),
		Skill:      handler.NewSkillHandler(skills, ca, cacheTTL),
		Project:    handler.NewProjectHandler(projects, ca, cacheTTL),
		Experience: handler.NewExperienceHandler(experiences),
		Blog:       handler.NewBlogHandler(blog),
		Contact:    handler.NewContactHandler(contacts),
		Stats:      handler.NewStatsHandler(projects, skills, blog, contacts),
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("portfolio api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("portfolio api start FAILED", zap.Error(err))
		}
	}()
	log.Info("portfolio api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("portfolio api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

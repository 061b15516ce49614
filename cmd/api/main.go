// @title           Course Marketplace API
// @version         1.0
// @description     Accounts, course catalogue and enrollment for the course marketplace.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/edumarket/course-api/internal/api"
	"github.com/edumarket/course-api/internal/api/handler"
	"github.com/edumarket/course-api/internal/core/ports"
	"github.com/edumarket/course-api/internal/core/service"
	"github.com/edumarket/course-api/internal/infrastructure/db/mongo"
	"github.com/edumarket/course-api/internal/infrastructure/db/redis"
	"github.com/edumarket/course-api/internal/infrastructure/storage"
	"github.com/edumarket/course-api/internal/pkg/config"
	"github.com/edumarket/course-api/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "course-api",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo init failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes failed")
	}

	checks := map[string]handler.HealthCheck{"mongodb": mongo.Ping(db)}

	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		var rdb *goredis.Client
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis init failed")
		}
		defer rdb.Close()
		limiter = redis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
		checks["redis"] = redis.Ping(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	images, err := storage.NewImageStore(cfg.Uploads.Dir, cfg.Uploads.PublicPath, cfg.Uploads.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir init failed")
	}

	users := mongo.NewUserRepository(db)
	courses := mongo.NewCourseRepository(db)
	tokens := service.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	e := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(users, tokens, limiter, log),
		Courses:      service.NewCourseService(courses, users, images, log),
		Enrollment:   service.NewEnrollmentService(courses, users, log),
		Tokens:       tokens,
		Log:          log,
		UploadDir:    images.Dir(),
		UploadPath:   cfg.Uploads.PublicPath,
		CORSOrigins:  cfg.CORSOrigins,
		HealthChecks: checks,
	})
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campuslink/student-portal/internal/api"
	"github.com/campuslink/student-portal/internal/infrastructure/config"
	portalmongo "github.com/campuslink/student-portal/internal/infrastructure/db/mongo"
	portalredis "github.com/campuslink/student-portal/internal/infrastructure/db/redis"
	"github.com/campuslink/student-portal/internal/infrastructure/mail"
	"github.com/campuslink/student-portal/pkg/logger"
)

// @title        Student Portal API
// @version      1.0
// @description  Signup, OTP login, stream-based access control and student reporting.
// @BasePath     /
func main() {
	// A missing .env is fine in deployed environments; config comes from
	// the real environment there.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, db, err := portalmongo.Connect(ctx, portalmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := portalmongo.NewIdentityRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := portalredis.Connect(ctx, portalredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil {
		log.Fatal().Str("token_ttl", cfg.TokenTTL).Msg("invalid TOKEN_TTL")
	}

	notifier := mail.NewSMTPNotifier(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	e := api.NewRouter(db, rdb, api.Deps{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      tokenTTL,
		OperatorEmail: cfg.OperatorEmail,
		Notifier:      notifier,
		Logger:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/config"
	"github.com/andessoft/registro-api/internal/dao"
	"github.com/andessoft/registro-api/internal/database"
	"github.com/andessoft/registro-api/internal/handlers"
	"github.com/andessoft/registro-api/internal/notification"
	"github.com/andessoft/registro-api/internal/router"
	"github.com/andessoft/registro-api/internal/service"
	"github.com/andessoft/registro-api/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to deployment.yaml")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	db, err := database.Initialize(&cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.HealthCheck(ctx); err != nil {
		cancel()
		logger.WithError(err).Fatal("Database health check failed")
	}
	cancel()

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RateLimit.RedisAddr,
			DB:   cfg.RateLimit.RedisDB,
		})
		defer redisClient.Close()
	}

	mailer := notification.NewMailer(&cfg.Notifications, logger)
	storageClient := storage.NewClient(&cfg.Storage, logger)

	tokenDAO := dao.NewTokenDAO(db)
	pendingDAO := dao.NewPendingRecordDAO(db)
	destinationDAO := dao.NewDestinationDAO(db)

	tokenService := service.NewTokenService(tokenDAO, logger)
	registrationService := service.NewRegistrationService(tokenDAO, pendingDAO, db, mailer, logger)
	approvalService := service.NewApprovalService(pendingDAO, destinationDAO, db, mailer, logger)

	engine := router.Setup(cfg, db, &router.Handlers{
		Token:        handlers.NewTokenHandler(tokenService, logger),
		Registration: handlers.NewRegistrationHandler(registrationService, logger),
		Approval:     handlers.NewApprovalHandler(approvalService, logger),
		File:         handlers.NewFileHandler(tokenService, storageClient, logger),
	}, redisClient, logger)

	server := &http.Server{
		Addr:         cfg.Server.GetServerAddress(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.WithField("address", server.Addr).Info("Starting registration management server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}

	logger.Info("Server stopped")
}

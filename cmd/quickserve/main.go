package main

import (
	"context"
	"log"

	"github.com/Renal37/quickserve/internal/broker"
	"github.com/Renal37/quickserve/internal/database"
	router "github.com/Renal37/quickserve/internal/http"
	"github.com/Renal37/quickserve/internal/logger"
	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/services"
	"github.com/Renal37/quickserve/internal/utils"
	"go.uber.org/zap"
)

type eventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := NewConfig()

	if err := logger.Initialize(config.logLevel, config.env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}
	defer func() { _ = logger.Log.Sync() }()

	db, err := database.New(ctx, config.dsn)
	if err != nil {
		log.Fatalf("Database wasn't initialized due to %s", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Migrations weren't run due to %s", err)
	}

	var events eventPublisher
	if config.amqpURL != "" {
		publisher, err := broker.NewPublisher(config.amqpURL, broker.NotificationsExchange)
		if err != nil {
			log.Fatalf("Broker wasn't initialized due to %s", err)
		}
		defer publisher.Close()
		events = publisher
	} else {
		logger.Log.Info("notification events are disabled, AMQP URL is not set")
	}

	jobQueueService := services.NewJobQueueService(ctx, 100, 2)
	defer jobQueueService.Shutdown()

	notificationService := services.NewNotificationService(db, jobQueueService, events)
	cleanupService := services.NewCleanupService(db, jobQueueService)

	if err := cleanupService.Start(config.cleanupInterval); err != nil {
		log.Fatalf("Starting order cleanup was failed due to %s", err)
	}

	utils.HandleTerminationProcess(cancel)

	logger.Log.Info("running server", zap.String("address", config.endpoint))

	err = router.New(
		router.Config{Endpoint: config.endpoint},
		middlewares.Services{
			Auth:         services.NewAuthService(db),
			JWT:          services.NewJWTService(config.authSecretKey),
			Shop:         services.NewShopService(db),
			Menu:         services.NewMenuService(db),
			Order:        services.NewOrderService(db, notificationService),
			Review:       services.NewReviewService(db, notificationService),
			Favorite:     services.NewFavoriteService(db),
			Notification: notificationService,
			Cleanup:      cleanupService,
		},
	).Run(ctx)
	if err != nil {
		logger.Log.Error("server stopped with error", zap.Error(err))
	}
}

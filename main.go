package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notification-service/config"
	"notification-service/consumer"
	"notification-service/controllers"
	"notification-service/database"
	"notification-service/repository"
	"notification-service/routes"
	"notification-service/sender"
	"notification-service/services"
	"notification-service/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.Connect(logger)
	if err != nil {
		logger.Fatal("db connection failed", zap.Error(err))
	}

	emailSender, err := sender.NewSMTPSender(logger)
	if err != nil {
		logger.Fatal("failed to init smtp sender", zap.Error(err))
	}

	hub := ws.NewHub(logger)

	notificationRepo := repository.NewNotificationRepository(db)
	factory := services.NewNotificationFactory()
	eventService := services.NewEventService(notificationRepo, emailSender, hub, factory, logger)
	queryService := services.NewQueryService(notificationRepo, logger)
	notificationController := controllers.NewNotificationController(queryService, logger)

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	sqsConsumer, err := consumer.NewSQSConsumer(consumerCtx, cfg.SQSQueueURL, eventService, logger)
	if err != nil {
		logger.Fatal("failed to init sqs consumer", zap.Error(err))
	}
	go sqsConsumer.Start(consumerCtx)

	r := gin.New()
	r.Use(gin.Recovery())

	// Request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	})

	routes.RegisterRoutes(r, notificationController, hub)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("notification service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("initiating graceful shutdown")
	consumerCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	if err := database.Close(db); err != nil {
		logger.Error("database close error", zap.Error(err))
	}

	logger.Info("notification service stopped")
}

package main

// @title           Classroom Service API
// @version         1.0
// @description     Virtual classroom backend: session management, discussion, attendance and a room-scoped real-time relay
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classroom-service/internal/adapters/kafka"
	"classroom-service/internal/api/routes"
	"classroom-service/internal/config"
	"classroom-service/internal/database"
	"classroom-service/internal/services"
	"classroom-service/internal/websocket"
	"classroom-service/pkg/logger"

	"github.com/IBM/sarama"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logg := logger.New(cfg.LogLevel)
	logg.Info("Starting classroom server")

	redisClient, err := database.NewRedisConnection(&cfg.Redis, logg)
	if err != nil {
		logg.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	db, err := database.NewPostgresConnection(cfg.Database.URI)
	if err != nil {
		logg.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}

	presence := services.NewPresenceService(redisClient)

	// Activity feed is optional: no brokers configured means no emission
	var producer sarama.SyncProducer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.InitKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.ActivityTopic)
		if err != nil {
			logg.Error("Failed to connect to Kafka, activity feed disabled", "error", err)
			producer = nil
		}
	}
	activity := services.NewActivityService(producer, cfg.Kafka.ActivityTopic)
	defer activity.Close()

	registry := websocket.NewRoomRegistry()
	hub := websocket.NewHub(registry, presence, logg)
	go hub.Run()

	router := routes.NewRouter(
		hub,
		presence,
		activity,
		db,
		cfg.JWT.Secret,
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hub.Stop()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("Server forced to shutdown", "error", err)
	}

	logg.Info("Server stopped")
}

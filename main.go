package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"culturepass/internal/analytics"
	"culturepass/internal/api"
	"culturepass/internal/auth"
	"culturepass/internal/booking"
	"culturepass/internal/config"
	"culturepass/internal/cpid"
	"culturepass/internal/kafka"
	"culturepass/internal/logger"
	"culturepass/internal/store"
)

const version = "1.0.0"

func connectPostgres(cfg *config.Config, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Connecting to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err == nil {
			err = sqldb.Ping()
		}
		if err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("PostgreSQL connection failed: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Could not connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting CulturePass API initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()

	ctx := context.Background()

	bunDB := connectPostgres(cfg, log)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg, log)
	defer redisClient.Close()

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, kafka.RequiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
	} else {
		log.Warn("KAFKA", "Kafka disabled, domain events will not be published")
	}

	registry := cpid.NewRegistry(bunDB)
	storeDB := store.New(bunDB, registry)

	var googleVerifier auth.Verifier
	if cfg.Auth.GoogleClientID != "" {
		verifier, err := auth.NewGoogleVerifier(ctx, cfg.Auth.GoogleClientID)
		if err != nil {
			log.Fatal("AUTH", fmt.Sprintf("Failed to set up Google verifier: %v", err))
		}
		googleVerifier = verifier
		log.Info("AUTH", "Google federated login enabled")
	} else {
		log.Warn("AUTH", "GOOGLE_CLIENT_ID not set, federated login disabled")
	}

	authService := auth.NewService(
		storeDB,
		googleVerifier,
		auth.NewRedisSessionCache(redisClient),
		log,
		cfg.Auth.SessionTTL,
	)

	var publisher booking.Publisher
	if producer != nil {
		publisher = producer
	}
	bookingService := booking.NewService(
		&booking.DB{Bun: bunDB},
		publisher,
		log,
		cfg.Booking.AllowOversell,
	)

	app := &api.API{
		Store:        storeDB,
		Booking:      bookingService,
		Auth:         authService,
		Registry:     registry,
		Analytics:    analytics.NewService(bunDB),
		Kafka:        publisher,
		Logger:       log,
		Version:      version,
		CookieSecure: cfg.Auth.CookieSecure,
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      app.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("CulturePass API running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "CulturePass API shutdown complete")
	}
}

// Package main is the entry point for the onboarding API.
// It wires storage, cache, notification and event dependencies,
// sets up the HTTP server and shuts everything down on a signal.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/config"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/handlers"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories/cache"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories/memstore"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/routes"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/events"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/merchant"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/notification"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/searchindex"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	checks := map[string]handlers.HealthCheck{}

	// Storage
	var (
		gateway repositories.Gateway
		db      *gorm.DB
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		if config.IsProduction() {
			log.Fatal("STORAGE_DRIVER=memory is not allowed in production")
		}
		log.Println("Using in-memory storage; data is lost on restart")
		gateway = memstore.New()
	default:
		var err error
		db, err = repositories.InitDB(cfg.DB)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := repositories.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		gateway = repositories.NewGormGateway(db)
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get database instance: %v", err)
		}
		checks["database"] = sqlDB.PingContext
		log.Println("✅ Connected to PostgreSQL")
	}

	opts := merchant.Options{
		NotifyTimeout:   cfg.NotifyTimeout,
		DefaultTimeZone: cfg.DefaultTimeZone,
	}

	// Redis backs both the snapshot cache and the notification queue.
	var (
		cacheSvc    *cache.CacheService
		asynqClient *asynq.Client
	)
	redisClient := cache.NewRedisClient(&cfg.Redis)
	if err := cache.Ping(redisClient, 5*time.Second); err != nil {
		log.Printf("⚠️ Redis unavailable, running without cache and queue: %v", err)
		_ = redisClient.Close()
	} else {
		cacheSvc = cache.NewCacheService(redisClient, cfg.SnapshotCacheTTL)
		opts.Cache = cache.NewSnapshotCache(cacheSvc)
		checks["redis"] = cacheSvc.HealthCheck

		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		opts.Dispatcher = notification.NewAsynqDispatcher(asynqClient, cfg.NotifyQueue)
		log.Println("✅ Connected to Redis")
	}

	var kafkaPublisher *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaApprovalTopic))
		opts.Publisher = kafkaPublisher
		log.Printf("Publishing approval events to %s", cfg.KafkaApprovalTopic)
	}

	projector := searchindex.NewProjector(gateway.SearchIndex())
	svc := merchant.NewService(gateway, projector, opts)

	app := fiber.New(fiber.Config{
		AppName:      "qpon-auth-service",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Time-Zone",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api/v1/users/:roleType/register", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Deps{
		Merchant:     svc,
		JWTSecret:    cfg.JWTSecret,
		HealthChecks: checks,
		Cache:        cacheSvc,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}

	// Let in-flight notifications finish before their transports close.
	svc.Wait()

	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Printf("⚠️ Failed to close kafka writer: %v", err)
		}
	}
	if asynqClient != nil {
		if err := asynqClient.Close(); err != nil {
			log.Printf("⚠️ Failed to close asynq client: %v", err)
		}
	}
	if cacheSvc != nil {
		if err := cacheSvc.Close(); err != nil {
			log.Printf("⚠️ Failed to close Redis connection: %v", err)
		}
	}
	repositories.CloseDB(db)
}

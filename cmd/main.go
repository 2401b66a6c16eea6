package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"marketplace-service/internal/config"
	"marketplace-service/internal/database/minio"
	"marketplace-service/internal/database/postgres"
	"marketplace-service/internal/database/redis"
	"marketplace-service/internal/event"
	"marketplace-service/internal/handlers"
	"marketplace-service/internal/recommend"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/marketplace", "log", "marketplace_service")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()
	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=marketplace",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username)

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitConn.Close()

	// repositories
	catalogRepository := repository.NewCatalogRepository(db)
	purchaseRepository := repository.NewPurchaseRepository(db)
	claimRepository := repository.NewClaimRepository(db)
	profileRepository := repository.NewProfileRepository(db)
	sessionRepository := repository.NewSessionRepository(redisClient.GetClient())
	recommendationCache := repository.NewRecommendationCache(redisClient.GetClient())

	// services
	publisher := event.NewNotificationPublisher(rabbitConn)
	documentService := services.NewDocumentService(minioClient)
	catalogService := services.NewCatalogService(catalogRepository)
	purchaseService := services.NewPurchaseService(sessionRepository, purchaseRepository, catalogRepository, documentService, publisher)
	claimService := services.NewClaimService(claimRepository, purchaseRepository, catalogRepository, publisher)
	profileService := services.NewProfileService(profileRepository, publisher)
	engine := recommend.NewEngine(recommend.DefaultRules(), cfg.PremiumCfg.OriginalMarkupPct)
	recommendationService := services.NewRecommendationService(engine, profileRepository, recommendationCache)
	comparisonService := services.NewComparisonService(cfg.ComparisonCfg)

	// handlers
	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Marketplace service is healthy")
	})

	handlers.NewCatalogHandler(catalogService).Register(app)
	handlers.NewPurchaseHandler(purchaseService, documentService).Register(app)
	handlers.NewRecommendationHandler(recommendationService).Register(app)
	handlers.NewComparisonHandler(comparisonService).Register(app)
	handlers.NewProfileHandler(profileService).Register(app)
	handlers.NewClaimHandler(claimService).Register(app)

	// profile_completed events trigger a recommendation re-score
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	consumer := event.NewProfileConsumer(rabbitConn, recommendationService)
	go func() {
		if err := consumer.Start(consumerCtx); err != nil {
			log.Printf("Profile consumer error: %v", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting marketplace-service on port %s", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutting down server...")
}

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

	"question-bank-service/internal/config"
	"question-bank-service/internal/database/mongo"
	"question-bank-service/internal/database/redis"
	"question-bank-service/internal/event"
	"question-bank-service/internal/handlers"
	"question-bank-service/internal/middleware"
	"question-bank-service/internal/repository"
	"question-bank-service/internal/services"
	"question-bank-service/pkg/discovery"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v3/middleware/recover"
)

func setupLogging(logDir string) (*os.File, error) {
	dir := filepath.Join(logDir, "question_bank_service")
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(dir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	cfg := config.ServiceConfig

	logFile, err := setupLogging(cfg.Server.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := mongo.Init(&cfg.MongoDB, cfg.Idempotency.TTL); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	redis.Init(cfg)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(fiberrecover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))
	app.Use(middleware.RequestLogger())

	rateLimiter := middleware.NewRateLimiter(redis.Redis_Client, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	app.Use(rateLimiter.Handler())

	app.Get("/", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"service": cfg.Server.ServiceName,
			"version": cfg.Server.Version,
			"docs":    "/api/v1",
		})
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.Server.ServiceName,
			"version": cfg.Server.Version,
		})
	})

	// Initialize repositories
	questionRepo := repository.NewQuestionRepository(mongo.Database, mongo.QuestionsCollection)
	categoryRepo := repository.NewCategoryRepository(mongo.Database, mongo.CategoriesCollection)
	sourceRepo := repository.NewSourceRepository(mongo.Database, mongo.SourcesCollection)
	eventRepo := repository.NewEventRepository(mongo.Database, mongo.EventsCollection)
	idempotencyRepo := repository.NewIdempotencyRepository(mongo.Database, mongo.IdempotencyCollection)

	// Initialize event publisher
	publisher, err := event.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
		publisher = event.Disabled()
	}

	// Initialize services
	eventService := services.NewEventService(eventRepo, publisher)
	questionService := services.NewQuestionService(questionRepo, idempotencyRepo, eventService)
	categoryService := services.NewCategoryService(categoryRepo)
	sourceService := services.NewSourceService(sourceRepo)
	bulkService := services.NewBulkService(questionRepo, eventService, cfg.Bulk.MaxBatchSize)
	searchService := services.NewSearchService(questionRepo)

	// Initialize and register handlers
	handlers.NewQuestionHandler(questionService).RegisterRoutes(app)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(app)
	handlers.NewSourceHandler(sourceService).RegisterRoutes(app)
	handlers.NewBulkHandler(bulkService).RegisterRoutes(app)
	handlers.NewSearchHandler(searchService).RegisterRoutes(app)
	handlers.NewEventHandler(eventService).RegisterRoutes(app)

	if cfg.Consul.Enabled {
		if err := discovery.InitServiceDiscovery(cfg); err != nil {
			log.Printf("Warning: Failed to initialize service discovery: %v", err)
		}
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := app.Listen(fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("Error closing event publisher: %v", err)
		}
	}

	redis.Close()
	mongo.Disconnect()

	if discovery.ServiceDiscovery != nil {
		if err := discovery.ServiceDiscovery.Deregister(); err != nil {
			log.Printf("Error deregistering from service discovery: %v", err)
		}
	}

	<-doneChan
	log.Println("Server shutdown complete")
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alfredoptarigan/course-evaluator/internal/app"
	"alfredoptarigan/course-evaluator/internal/config"
	"alfredoptarigan/course-evaluator/internal/handlers"
	"alfredoptarigan/course-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize store and repositories
	repos, err := app.OpenRepositories(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize repositories: %v", err)
	}
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	svc := app.NewServices(cfg, repos, nil)
	if err := svc.Exports.EnsureExportDir(); err != nil {
		log.Fatalf("❌ Failed to create export directory: %v", err)
	}
	log.Println("✅ Services initialized successfully")

	// Start period refresher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refresher := services.NewPeriodRefresher(svc.Periods, cfg.Worker.PeriodRefreshInterval)
	refresher.Start(ctx)

	// Create Fiber app
	server := fiber.New(fiber.Config{
		AppName:      "Course Evaluation API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	server.Use(recover.New())
	server.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	server.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Routes
	api := server.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	handlers.Register(api, handlers.Handlers{
		Evaluations: handlers.NewEvaluationHandler(svc.Submissions),
		Periods:     handlers.NewPeriodHandler(svc.Periods),
		Criteria:    handlers.NewCriteriaHandler(svc.Criteria),
		Statistics:  handlers.NewStatisticsHandler(svc.Statistics, svc.Exports),
		Users:       handlers.NewUserHandler(svc.Accounts),
	})
	log.Println("✅ Handlers initialized")

	// Root route
	server.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Course Evaluation API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/evaluations",
				"GET /api/v1/evaluations/:id",
				"GET /api/v1/students/:id/pending?period_id=",
				"GET|POST /api/v1/periods",
				"POST /api/v1/periods/:id/close",
				"GET /api/v1/periods/:id/overview",
				"GET /api/v1/periods/:id/statistics/:report",
				"POST /api/v1/periods/:id/exports/:report",
				"GET|POST|PUT /api/v1/criteria/:courseType",
				"GET|POST|DELETE /api/v1/users",
				"GET /metrics",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		refresher.Stop()
		cancel()
		if err := server.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := server.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

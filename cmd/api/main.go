package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Pranavipulluri/break-even/internal/auth"
	"github.com/Pranavipulluri/break-even/internal/config"
	"github.com/Pranavipulluri/break-even/internal/database"
	"github.com/Pranavipulluri/break-even/internal/handler"
	"github.com/Pranavipulluri/break-even/internal/mail"
	"github.com/Pranavipulluri/break-even/internal/metrics"
	"github.com/Pranavipulluri/break-even/internal/middleware"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/Pranavipulluri/break-even/internal/service"
	"github.com/Pranavipulluri/break-even/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Object storage is optional; QR codes fall back to inline PNGs.
	var minioClient *storage.MinIOClient
	if cfg.MinIO.Endpoint != "" {
		minioClient, err = storage.NewMinIOClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
	} else {
		log.Println("MinIO not configured, QR codes will be served inline")
	}

	// Mail is optional; welcome emails are skipped without SMTP.
	mailer := mail.NewSender(cfg)
	if !mailer.Enabled() {
		log.Println("SMTP not configured, welcome emails disabled")
	}

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg)

	// Initialize repositories
	feedbackRepo := repository.NewFeedbackRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	enricher := service.NewEnrichmentService(subscriberRepo, analyticsRepo, mailer)
	qrService := service.NewQRService(minioClient)

	// Initialize handlers
	feedbackHandler := handler.NewFeedbackHandler(feedbackRepo, enricher)
	interestHandler := handler.NewInterestHandler(interestRepo, enricher)
	newsletterHandler := handler.NewNewsletterHandler(subscriberRepo, enricher)
	authHandler := handler.NewAuthHandler(customerRepo, enricher, jwtService)
	productHandler := handler.NewProductHandler(productRepo)
	messageHandler := handler.NewMessageHandler(messageRepo)
	dashboardHandler := handler.NewDashboardHandler(feedbackRepo, interestRepo, subscriberRepo, messageRepo)
	exportHandler := handler.NewExportHandler(interestRepo)
	qrHandler := handler.NewQRHandler(qrService)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INTERNAL_ERROR",
					"message": err.Error(),
				},
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORS.Origins, ","),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Prometheus scrape endpoint
	app.Get("/metrics", metrics.Handler())

	// API v1 routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Public routes (mini-website submissions)
	public := api.Group("/public")
	public.Post("/feedback", feedbackHandler.Submit)
	public.Get("/feedback/recent", feedbackHandler.Recent)
	public.Post("/interest", interestHandler.Submit)
	public.Post("/newsletter", newsletterHandler.Subscribe)
	public.Post("/register", authHandler.Register)
	public.Post("/login", authHandler.Login)
	public.Post("/messages", messageHandler.Submit)
	public.Get("/products", productHandler.PublicList)

	// Feedback routes (dashboard)
	feedbackRoutes := api.Group("/feedback", authMiddleware.Required())
	feedbackRoutes.Get("/", feedbackHandler.List)
	feedbackRoutes.Get("/stats", feedbackHandler.Stats)

	// Lead routes
	interestRoutes := api.Group("/interests", authMiddleware.Required())
	interestRoutes.Get("/", interestHandler.List)
	interestRoutes.Patch("/:id/status", interestHandler.UpdateStatus)

	// Product routes
	productRoutes := api.Group("/products", authMiddleware.Required())
	productRoutes.Get("/", productHandler.List)
	productRoutes.Post("/", productHandler.Create)
	productRoutes.Patch("/:id", productHandler.Update)
	productRoutes.Delete("/:id", productHandler.Delete)

	// Message routes
	messageRoutes := api.Group("/messages", authMiddleware.Required())
	messageRoutes.Get("/", messageHandler.List)
	messageRoutes.Post("/:id/reply", messageHandler.Reply)
	messageRoutes.Patch("/:id/read", messageHandler.MarkRead)

	// Dashboard routes
	api.Get("/dashboard/stats", authMiddleware.Required(), dashboardHandler.Stats)
	api.Get("/export/leads", authMiddleware.Required(), exportHandler.Leads)
	api.Post("/qrcode", authMiddleware.Required(), qrHandler.Generate)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/footpoets/claimsdb/internal/config"
	"github.com/footpoets/claimsdb/internal/database"
	"github.com/footpoets/claimsdb/internal/handlers"
	"github.com/footpoets/claimsdb/internal/middleware"
	"github.com/footpoets/claimsdb/internal/services"
	"github.com/footpoets/claimsdb/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/footpoets/claimsdb/docs/api" // Swagger docs
)

// @title ClaimsDB API
// @version 1.0.0
// @description Go Fiber data service for poet profile claims
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/footpoets/claimsdb
// @contact.email info@footpoets.org

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name poets_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Structured logger for the service layer
	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create services
	claimStore := services.NewClaimStore(db, cfg.Keys)
	connections := services.NewConnectionStore(db, cfg.Keys)
	steps := services.NewStepTracker(db, cfg.BatchStepKey, cfg.BatchScopedSteps)
	batch := services.NewReassigner(db, cfg.BatchPageSize, zlog)
	sync := services.NewProfileSync(db, cfg.Keys)
	messenger := services.NewMessenger(db, cfg.NotifyUserIDs, zlog)
	nonces := services.NewNonceService(cfg.SessionSecret, 0)

	claimService := services.NewClaimService(db, cfg, claimStore, connections, messenger, zlog)
	resolveService := services.NewResolveService(db, cfg, claimStore, connections, steps,
		batch, sync, messenger, zlog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("claimsdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}
	app.Get("/health", healthHandler.GetHealth)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	claimHandler := &handlers.ClaimHandler{Claims: claimService, Resolve: resolveService}
	poetHandler := &handlers.PoetHandler{
		DB:          db,
		Cfg:         cfg,
		Claims:      claimStore,
		Connections: connections,
		Resolve:     resolveService,
		Nonces:      nonces,
	}

	// Claim form ajax routes (form posts from the public site)
	ajax := api.Group("/ajax")
	ajax.Post("/claim_poet", middleware.AuthUser(cfg.SessionSecret), claimHandler.ClaimPoet)
	ajax.Post("/claim_stop", middleware.AuthUser(cfg.SessionSecret), claimHandler.ClaimStop)
	ajax.Post("/claim_process", middleware.AuthAdmin(cfg.SessionSecret), claimHandler.ClaimProcess)

	// Claim form state
	claims := api.Group("/claims")
	claims.Get("/form/:poet_id", middleware.AuthUser(cfg.SessionSecret), claimHandler.ClaimForm)

	// Poet admin routes
	poets := api.Group("/poets")
	poets.Post("/", middleware.AuthAdmin(cfg.SessionSecret), poetHandler.CreatePoet)
	poets.Get("/:poet_id", poetHandler.GetPoet)
	poets.Post("/:poet_id/poems", middleware.AuthAdmin(cfg.SessionSecret), poetHandler.CreatePoems)
	poets.Get("/:poet_id/resolve", middleware.AuthAdmin(cfg.SessionSecret), poetHandler.ResolveForm)
	poets.Post("/:poet_id/save", middleware.AuthAdmin(cfg.SessionSecret), poetHandler.SavePoet)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check if it's an authorization error
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

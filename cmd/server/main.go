package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"carehome-be-svc/docs"
	"carehome-be-svc/internal/config"
	"carehome-be-svc/internal/database"
	"carehome-be-svc/internal/handler"
	"carehome-be-svc/internal/middleware"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/internal/scheduler"
	"carehome-be-svc/internal/service"
	"carehome-be-svc/pkg/logger"
)

// @title Care Home Backend Service API
// @version 1.0
// @description RESTful API for Care Home Backend Service with billing and resident management
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Care Home Backend Service API"
	docs.SwaggerInfo.Description = "RESTful API for Care Home Backend Service with billing and resident management"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Care Home Backend Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	billRepo := repository.NewBillRepository(db.DB)
	residentRepo := repository.NewResidentRepository(db.DB)
	carePlanRepo := repository.NewCarePlanRepository(db.DB)
	visitRepo := repository.NewVisitRepository(db.DB)
	vitalSignRepo := repository.NewVitalSignRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	schedulerLogRepo := repository.NewSchedulerLogRepository(db.DB)

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, appLogger)
	billingService := service.NewBillingService(billRepo, residentRepo, carePlanRepo, appLogger)
	residentService := service.NewResidentService(residentRepo, carePlanRepo, billingService, appLogger)
	visitService := service.NewVisitService(visitRepo, residentRepo, notificationService, appLogger)
	vitalSignService := service.NewVitalSignService(vitalSignRepo, residentRepo, appLogger)

	// Initialize and start scheduler
	billingScheduler := scheduler.NewBillingScheduler(
		billingService,
		notificationService,
		schedulerLogRepo,
		appLogger,
		cfg.Scheduler.MonthlyBillingCronExpression,
		cfg.Scheduler.OverdueReminderCronExpression,
	)
	if err := billingScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start billing scheduler")
	}

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(
		router,
		billingService,
		residentService,
		visitService,
		vitalSignService,
		notificationService,
		carePlanRepo,
		cfg.JWT.Secret,
		appLogger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop scheduled jobs before draining requests
	billingScheduler.Stop()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}

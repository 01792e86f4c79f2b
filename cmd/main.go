package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lumenacademy/learn-service/docs"
	authMiddleware "github.com/lumenacademy/learn-service/internal/auth/middleware"
	authService "github.com/lumenacademy/learn-service/internal/auth/service"
	"github.com/lumenacademy/learn-service/internal/config"
	"github.com/lumenacademy/learn-service/internal/grader"
	"github.com/lumenacademy/learn-service/internal/handlers"
	"github.com/lumenacademy/learn-service/internal/logger"
	loggerMiddleware "github.com/lumenacademy/learn-service/internal/logger/middleware"
	"github.com/lumenacademy/learn-service/internal/middlewares"
	"github.com/lumenacademy/learn-service/internal/repositories"
	"github.com/lumenacademy/learn-service/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const maxRequestSize = 1 * 1024 * 1024 // 1MB, quiz submissions are small JSON

// @title LumenAcademy Learn API
// @version 1.0
// @description API for course enrollment, lesson progression and quiz-gated completion
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@lumenacademy.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description JWT access token, prefixed with "Bearer "
// @securityDefinitions.apikey ApiKey
// @in header
// @name X-API-Key
// @description API key for service-to-service authentication
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LumenAcademy Learn Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator (for auth middleware)
	tokenGenerator := authService.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize external grader client
	graderClient := grader.NewClient(cfg.Grader.URL, cfg.Grader.Timeout)

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	blockRepo := repositories.NewContentBlockRepository(db)
	questionRepo := repositories.NewQuizQuestionRepository(db)
	attemptRepo := repositories.NewQuizAttemptRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	progressRepo := repositories.NewLessonProgressRepository(db)
	certRepo := repositories.NewCertificateRepository(db)

	// Initialize services
	enrollmentService := services.NewEnrollmentService(courseRepo, enrollmentRepo)
	quizService := services.NewQuizService(questionRepo, attemptRepo, graderClient, logger.Logger)
	completionService := services.NewCompletionService(
		lessonRepo,
		questionRepo,
		progressRepo,
		enrollmentRepo,
		certRepo,
		quizService,
	)
	catalogService := services.NewCatalogService(
		courseRepo,
		lessonRepo,
		blockRepo,
		progressRepo,
		enrollmentRepo,
		questionRepo,
		certRepo,
	)
	adminResetService := services.NewAdminResetService(attemptRepo, progressRepo, enrollmentRepo)

	// Initialize middleware
	authMw := authMiddleware.AuthMiddleware(tokenGenerator)
	apiKeyMw := authMiddleware.APIKeyMiddleware(cfg.APIKey)

	// Initialize handlers
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, logger.Logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger.Logger)
	completionHandler := handlers.NewCompletionHandler(completionService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminResetService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		enrollmentHandler.RegisterRoutes(r, authMw)
		catalogHandler.RegisterRoutes(r, authMw)
		completionHandler.RegisterRoutes(r, authMw)
		adminHandler.RegisterRoutes(r, apiKeyMw)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // grading calls can take a while
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "learn_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cling-reminder.backend/internal/config"
	"cling-reminder.backend/internal/infrastructure/email"
	"cling-reminder.backend/internal/infrastructure/imagegen"
	"cling-reminder.backend/internal/infrastructure/jobs"
	"cling-reminder.backend/internal/infrastructure/repositories"
	"cling-reminder.backend/internal/interfaces/http/handlers"
	"cling-reminder.backend/internal/interfaces/http/middleware"
	"cling-reminder.backend/internal/usecases"
	"cling-reminder.backend/pkg/jwt"
	"cling-reminder.backend/pkg/logger"
	"cling-reminder.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewOneTimeCodeRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)

	// Initialize outbound email
	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	// Initialize image providers
	var rehoster *imagegen.Rehoster
	if cfg.Images.SaveLocally {
		rehoster = imagegen.NewRehoster(cfg.Images.UploadsDir, cfg.Images.PublicBaseURL)
	}
	stabilityClient := imagegen.NewStabilityClient(cfg.Stability.APIKey, cfg.Stability.APIURL, rehoster)
	geminiClient := imagegen.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.APIURL)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, codeRepo, reminderRepo, sender, jwtService, cfg.OTP.TTL, cfg.OTP.Cooldown)
	reminderUsecase := usecases.NewReminderUsecase(reminderRepo)
	imageUsecase := usecases.NewImageUsecase(stabilityClient, geminiClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, cfg.Server.IsProduction())
	dashboardHandler := handlers.NewDashboardHandler(authUsecase)
	reminderHandler := handlers.NewReminderHandler(reminderUsecase)
	imageHandler := handlers.NewImageHandler(imageUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reconcileJob := jobs.NewOverdueReconcileJob(reminderUsecase, cfg.Jobs.ReconcileInterval)
	go reconcileJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, cfg.CORS.Origin)
	registerHealthRoute(r)
	registerAPIRoutes(r, routeDeps{
		authHandler:      authHandler,
		dashboardHandler: dashboardHandler,
		reminderHandler:  reminderHandler,
		imageHandler:     imageHandler,
		session:          middleware.SessionMiddleware(jwtService),
		optionalSession:  middleware.OptionalSession(jwtService),
	})

	if cfg.Images.SaveLocally {
		r.Static("/uploads", cfg.Images.UploadsDir)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		reconcileJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Cling Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	_ "github.com/account360/account360-api/docs" // Swagger docs (generated)
	"github.com/account360/account360-api/internal/ai"
	"github.com/account360/account360-api/internal/auth"
	"github.com/account360/account360-api/internal/config"
	"github.com/account360/account360-api/internal/contact"
	"github.com/account360/account360-api/internal/database"
	"github.com/account360/account360-api/internal/email"
	httpServer "github.com/account360/account360-api/internal/http"
	"github.com/account360/account360-api/internal/logging"
	"github.com/account360/account360-api/internal/profile"
	"github.com/account360/account360-api/internal/ratelimit"
	"github.com/account360/account360-api/internal/user"
)

// @title           Account360 API
// @version         1.0
// @description     Console backend with account management, a shared contact directory, and an AI assistant over the directory.

// @contact.name   API Support
// @contact.email  support@account360.dev

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Run schema migrations before serving traffic
	if err := database.RunMigrations(cfg.Database.URL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis connection
	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := user.NewRepository(db)
	contactRepo := contact.NewRepository(db)

	// Initialize rate limiter
	rateLimiter := ratelimit.NewLimiter(redisClient)

	// Initialize PASETO service
	pasetoService, err := auth.NewPasetoService(cfg.Auth.PasetoKey)
	if err != nil {
		return fmt.Errorf("failed to initialize PASETO service: %w", err)
	}

	// Initialize email service
	emailService := email.NewService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Server.FrontendURL,
		cfg.Server.BackendURL,
	)

	// Initialize auth service
	authService := auth.NewService(
		userRepo,
		pasetoService,
		emailService,
		logger,
		cfg.Auth.SessionTokenDuration,
		cfg.Auth.EmailTokenDuration,
		cfg.Auth.AllowedEmailDomains,
	)

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(
		authService,
		rateLimiter,
		logger,
		cfg.Server.FrontendURL,
	)
	googleHandler := auth.NewGoogleHandler(
		authService,
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Server.BackendURL+"/api/auth/google/callback",
		logger,
		cfg.Server.FrontendURL,
	)
	authMiddleware := auth.NewMiddleware(pasetoService)

	profileHandler := profile.NewHandler(userRepo, logger)
	contactHandler := contact.NewHandler(contactRepo, logger)

	aiClient := ai.NewClient(cfg.AI.APIURL, cfg.AI.APIKey, cfg.AI.Model)
	aiHandler := ai.NewHandler(aiClient, contactRepo, logger)

	// Initialize router
	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:    authHandler,
		Google:  googleHandler,
		Profile: profileHandler,
		Contact: contactHandler,
		AI:      aiHandler,
	}, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return database.NewBunDB(sqlDB), nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

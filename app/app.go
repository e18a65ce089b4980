// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"grafik-auth-api/config"
	"grafik-auth-api/db"
	"grafik-auth-api/handler"
	"grafik-auth-api/logger"
	"grafik-auth-api/repository"
	"grafik-auth-api/router"
	"grafik-auth-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(config.AppConfig.Mail.Region))
	if err != nil {
		logger.Log.Fatalf("Error loading AWS configuration: %v", err)
	}
	mailService := service.NewMailService(
		ses.NewFromConfig(awsCfg),
		config.AppConfig.Mail.FromEmail,
		config.AppConfig.Server.FrontendURL,
	)

	r, err := buildRouter(database, redisClient, mailService)
	if err != nil {
		logger.Log.Fatalf("Error wiring services: %v", err)
	}

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires repositories, services and handlers together.
func buildRouter(database *sql.DB, redisClient *redis.Client, mailService service.IMailService) (http.Handler, error) {
	tokenRepo := repository.NewTokenRepository(database)
	userRepo := repository.NewUserRepository(database)
	roleRepo := repository.NewRoleRepository(database)

	hashService := service.NewHashService(config.AppConfig.Bcrypt.Cost)

	tokenService, err := service.NewTokenService(
		config.AppConfig.JWT.SecretKey,
		service.TokenDurations{
			Auth:     config.AppConfig.JWT.AuthTokenExpiresIn,
			Refresh:  config.AppConfig.JWT.RefreshTokenExpiresIn,
			Recovery: config.AppConfig.JWT.RecoveryTokenExpiresIn,
			Verify:   config.AppConfig.JWT.VerifyTokenExpiresIn,
		},
		tokenRepo,
	)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo, roleRepo, hashService, tokenService, mailService, redisClient)
	authService := service.NewAuthService(hashService, tokenService, userService, mailService)
	authHandler := handler.NewAuthHandler(authService)

	return router.NewRouter(authHandler, tokenService, config.AppConfig.Server.AdminRoleID), nil
}

// TestApp bundles the wired stack for integration tests.
type TestApp struct {
	DB     *sql.DB
	Redis  *redis.Client
	Router http.Handler
}

// NewTestApp wires the full stack against test infrastructure. The mail
// service is injected so tests can stub the transport.
func NewTestApp(database *sql.DB, redisClient *redis.Client, mailService service.IMailService) (*TestApp, error) {
	r, err := buildRouter(database, redisClient, mailService)
	if err != nil {
		return nil, err
	}
	return &TestApp{
		DB:     database,
		Redis:  redisClient,
		Router: r,
	}, nil
}

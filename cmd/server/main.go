package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookmodels "campusbooks/backend/book/models"
	chatmodels "campusbooks/backend/chat/models"
	"campusbooks/backend/pkg/config"
	"campusbooks/backend/pkg/di"
	"campusbooks/backend/pkg/logger"
	"campusbooks/backend/pkg/router"
	"campusbooks/backend/pkg/secrets"
	"campusbooks/backend/shared/observability"
	usermodels "campusbooks/backend/user/models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logConfig := logger.DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logConfig.Level = level
	}
	logConfig.JSON = os.Getenv("LOG_FORMAT") != "text"

	appLog := logger.New(logConfig)
	logger.SetGlobal(appLog)

	appLog.Info("starting campusbooks backend", "version", os.Getenv("APP_VERSION"))

	cfg := config.New()

	// Secrets come from Vault when enabled, environment otherwise.
	secretManager, err := secrets.NewManager(appLog)
	if err != nil {
		appLog.LogError(err, "failed to initialize secrets manager")
		os.Exit(1)
	}
	ctx := context.Background()
	sessionSecret := secretManager.GetSecretWithDefault(ctx, "session_secret", cfg.Session.Secret)
	booksAPIKey := secretManager.GetSecretWithDefault(ctx, "google_books_api_key", cfg.Books.LookupAPIKey)

	shutdownTracing := observability.SetupTracing("campusbooks-backend")
	defer shutdownTracing()
	observability.SetupPrometheusMetrics()

	db, err := config.NewDB()
	if err != nil {
		appLog.LogError(err, "failed to initialize database")
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&usermodels.Account{},
		&bookmodels.Book{},
		&chatmodels.ChatRoom{},
		&chatmodels.ChatMessage{},
	); err != nil {
		appLog.LogError(err, "failed to migrate database")
		os.Exit(1)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_room_created ON chat_messages(chat_room_id, created_at)").Error; err != nil {
		appLog.LogError(err, "failed to create message index", "index", "idx_messages_room_created")
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_books_seller ON books(seller_id)").Error; err != nil {
		appLog.LogError(err, "failed to create book index", "index", "idx_books_seller")
	}

	container := di.New(db, di.Options{
		LoggerConfig:  logConfig,
		SessionSecret: sessionSecret,
		BooksAPIKey:   booksAPIKey,
	})
	container.Health.Start()

	r := router.New(container)
	r.SetupRoutes()

	if schemaPath := os.Getenv("OPENAPI_SCHEMA_PATH"); schemaPath != "" {
		r.AddOpenAPIValidation(schemaPath)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	go func() {
		appLog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.LogError(err, "server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.LogError(err, "server forced to shutdown")
	}

	appLog.Info("server exited gracefully")
}

package di

import (
	"time"

	bookrepo "campusbooks/backend/book/repository"
	bookservice "campusbooks/backend/book/service"
	chatrepo "campusbooks/backend/chat/repository"
	chatservice "campusbooks/backend/chat/service"
	"campusbooks/backend/pkg/cache"
	"campusbooks/backend/pkg/config"
	"campusbooks/backend/pkg/health"
	"campusbooks/backend/pkg/logger"
	"campusbooks/backend/pkg/session"
	"campusbooks/backend/shared/redis"
	userrepo "campusbooks/backend/user/repository"
	userservice "campusbooks/backend/user/service"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application.
type Container struct {
	DB       *gorm.DB
	Logger   *logger.Logger
	Config   *config.Config
	Verifier *session.Verifier
	Health   *health.Checker

	Directory   *userservice.Directory
	BookService *bookservice.BookService
	Lookup      *bookservice.LookupClient
	ChatService *chatservice.ChatService
}

// Options configures the container.
type Options struct {
	LoggerConfig  logger.Config
	SessionSecret string
	BooksAPIKey   string
	// DisableRedis skips the redis-backed directory cache.
	DisableRedis bool
}

// New wires repositories, services and shared infrastructure together.
func New(db *gorm.DB, opts Options) *Container {
	log := logger.New(opts.LoggerConfig)
	cfg := config.Get()

	var directoryCache *redis.Client
	if !opts.DisableRedis {
		directoryCache = redis.NewClient()
	}

	accountRepo := userrepo.NewGormAccountRepository(db)
	directory := userservice.NewDirectory(accountRepo, directoryCache)

	lookupCache := cache.New(cache.Options{
		DefaultExpiration: cfg.Cache.TTL,
		CleanupInterval:   cfg.Cache.PurgeWindow,
		MaxItems:          cfg.Cache.MaxSize,
	})

	apiKey := opts.BooksAPIKey
	if apiKey == "" {
		apiKey = cfg.Books.LookupAPIKey
	}
	lookup := bookservice.NewLookupClient(bookservice.LookupConfig{
		BaseURL:  cfg.Books.LookupBaseURL,
		APIKey:   apiKey,
		Timeout:  cfg.Books.LookupTimeout,
		CacheTTL: cfg.Books.LookupCacheTTL,
	}, lookupCache, log)

	bookService := bookservice.NewBookService(bookrepo.NewGormBookRepository(db))
	chatService := chatservice.NewChatService(chatrepo.NewGormChatRepository(db), accountRepo)

	checker := health.NewChecker(log, 30*time.Second)
	checker.RegisterDatabaseCheck(func() error {
		return config.TestConnection(db)
	})

	return &Container{
		DB:          db,
		Logger:      log,
		Config:      cfg,
		Verifier:    session.NewVerifier(opts.SessionSecret, cfg.Session.Issuer),
		Health:      checker,
		Directory:   directory,
		BookService: bookService,
		Lookup:      lookup,
		ChatService: chatService,
	}
}

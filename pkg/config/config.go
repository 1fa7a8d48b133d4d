package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded once from the
// environment.
type Config struct {
	// Server configuration
	Server struct {
		Port    string
		Env     string
		Timeout time.Duration
		BaseURL string
	}

	// Database configuration
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		MaxConns int
	}

	// Session token validation (tokens are issued by the external identity
	// provider; this service only verifies them)
	Session struct {
		Secret string
		Issuer string
	}

	// Security configuration
	Security struct {
		RateLimit      float64
		RateLimitBurst int
		AllowedOrigins []string
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}

	// Chat settings
	Chat struct {
		PollInterval time.Duration
	}

	// Book metadata lookup (Google Books volumes API)
	Books struct {
		LookupBaseURL  string
		LookupAPIKey   string
		LookupTimeout  time.Duration
		LookupCacheTTL time.Duration
	}

	// In-process cache settings
	Cache struct {
		TTL         time.Duration
		MaxSize     int
		PurgeWindow time.Duration
	}

	// Redis settings
	Redis struct {
		URL string
	}
}

var (
	instance *Config
	once     sync.Once
)

// New loads configuration from the environment. Uses a singleton so every
// caller observes the same values.
func New() *Config {
	once.Do(func() {
		godotenv.Load()

		instance = &Config{}

		instance.Server.Port = getEnvString("PORT", "8080")
		instance.Server.Env = getEnvString("APP_ENV", "development")
		instance.Server.Timeout = getEnvDuration("SERVER_TIMEOUT", 30*time.Second)
		instance.Server.BaseURL = getEnvString("BASE_URL", "http://localhost:"+instance.Server.Port)

		instance.Database.Host = getEnvString("DB_HOST", "localhost")
		instance.Database.Port = getEnvString("DB_PORT", "5432")
		instance.Database.User = getEnvString("DB_USER", "postgres")
		instance.Database.Password = getEnvString("DB_PASSWORD", "postgres")
		instance.Database.Name = getEnvString("DB_NAME", "campusbooks")
		instance.Database.SSLMode = getEnvString("DB_SSL_MODE", "disable")
		instance.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 20)

		instance.Session.Secret = getEnvString("SESSION_SECRET", "")
		instance.Session.Issuer = getEnvString("SESSION_ISSUER", "")

		instance.Security.RateLimit = float64(getEnvInt("RATE_LIMIT", 10))
		instance.Security.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 20)
		instance.Security.AllowedOrigins = getEnvStringSlice("ALLOWED_ORIGINS", []string{"*"})

		instance.Logging.Level = getEnvString("LOG_LEVEL", "info")
		instance.Logging.Format = getEnvString("LOG_FORMAT", "json")

		instance.Chat.PollInterval = getEnvDuration("CHAT_POLL_INTERVAL", 3*time.Second)

		instance.Books.LookupBaseURL = getEnvString("BOOKS_LOOKUP_URL", "https://www.googleapis.com/books/v1/volumes")
		instance.Books.LookupAPIKey = getEnvString("GOOGLE_BOOKS_API_KEY", "")
		instance.Books.LookupTimeout = getEnvDuration("BOOKS_LOOKUP_TIMEOUT", 10*time.Second)
		instance.Books.LookupCacheTTL = getEnvDuration("BOOKS_LOOKUP_CACHE_TTL", time.Hour)

		instance.Cache.TTL = getEnvDuration("CACHE_TTL", 5*time.Minute)
		instance.Cache.MaxSize = getEnvInt("CACHE_MAX_SIZE", 1000)
		instance.Cache.PurgeWindow = getEnvDuration("CACHE_PURGE_WINDOW", 10*time.Minute)

		instance.Redis.URL = getEnvString("REDIS_URL", "localhost:6379")
	})

	return instance
}

// Get returns the singleton Config instance.
func Get() *Config {
	if instance == nil {
		return New()
	}
	return instance
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by the storage factory.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config centralises runtime configuration.
type Config struct {
	HTTPPort        string
	AllowedOrigins  []string
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int

	StoreBackend string
	MongoURL     string
	MongoDBName  string
	DatabaseURL  string

	SecretKey      string
	Algorithm      string
	AccessTokenTTL time.Duration
	BcryptCost     int

	PublicUserListing bool

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from the environment, after applying .env if present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (Config, error) {
	httpPort := getEnv("HTTP_PORT", "")
	if httpPort == "" {
		httpPort = getEnv("PORT", "8000")
	}

	var env envParser
	cfg := Config{
		HTTPPort:          httpPort,
		AllowedOrigins:    splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeoutSec:    env.intEnv("HTTP_READ_TIMEOUT", 15),
		WriteTimeoutSec:   env.intEnv("HTTP_WRITE_TIMEOUT", 15),
		IdleTimeoutSec:    env.intEnv("HTTP_IDLE_TIMEOUT", 60),
		MongoURL:          getEnv("MONGO_DB_URL", ""),
		MongoDBName:       getEnv("MONGO_DB_NAME", "candidates"),
		SecretKey:         getEnv("SECRET_KEY", ""),
		Algorithm:         strings.ToUpper(getEnv("ALGORITHM", "HS256")),
		AccessTokenTTL:    time.Duration(env.intEnv("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		BcryptCost:        env.intEnv("BCRYPT_COST", 0),
		PublicUserListing: env.boolEnv("PUBLIC_USER_LISTING", false),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}
	if err := env.err(); err != nil {
		return Config{}, err
	}

	databaseURL, err := resolveDatabaseURL()
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseURL = databaseURL

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	cfg.StoreBackend = strings.ToLower(getEnv("STORE_BACKEND", ""))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = inferBackend(cfg)
	}

	switch cfg.StoreBackend {
	case BackendMongo:
		if cfg.MongoURL == "" {
			return Config{}, fmt.Errorf("MONGO_DB_URL is required for the mongo backend")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database configuration missing: provide DATABASE_URL or PG* env vars")
		}
	case BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return cfg, nil
}

func inferBackend(cfg Config) string {
	switch {
	case cfg.MongoURL != "":
		return BackendMongo
	case cfg.DatabaseURL != "":
		return BackendPostgres
	default:
		return BackendMemory
	}
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}

// envParser reads typed variables and remembers every malformed value.
type envParser struct {
	errs []error
}

func (p *envParser) intEnv(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not an integer", key, val))
		return fallback
	}
	return n
}

func (p *envParser) boolEnv(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a boolean", key, val))
		return fallback
	}
	return b
}

func (p *envParser) err() error {
	return errors.Join(p.errs...)
}

func splitCSV(value string) []string {
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return []string{"*"}
	}
	return parts
}

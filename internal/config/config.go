package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string
	JWTTTL    time.Duration

	Admin   AdminConfig
	CORS    CORSConfig
	Store   StoreConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	S3      S3Config
	Gemini  GeminiConfig
	Breaker BreakerConfig
	Kafka   KafkaConfig
	Worker  WorkerConfig
}

// AdminConfig is the single dashboard operator credential.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt
}

type CORSConfig struct {
	AllowedHosts []string
}

// StoreConfig selects the durable medium behind the persistent store.
type StoreConfig struct {
	Driver    string
	KeyPrefix string
	DataDir   string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// S3Config contains the bucket used by the s3 store driver. Credentials come
// from the standard AWS chain when AccessKeyID is empty.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// GeminiConfig configures the generative AI service. An empty APIKey puts the
// advisory gateway in offline mode.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// BreakerConfig configures the circuit breaker around AI calls.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// KafkaConfig enables the notification publisher when Brokers is non-empty.
type KafkaConfig struct {
	Brokers     []string
	NotifyTopic string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	AlertInterval time.Duration
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AuthEnabled reports whether dashboard routes require a JWT.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Missing .env is fine; production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	cfg.Admin = AdminConfig{
		Email:        getEnv("ADMIN_EMAIL", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	cfg.CORS = CORSConfig{
		AllowedHosts: getEnvList("CORS_ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000,localhost:5173"),
	}

	cfg.Store = StoreConfig{
		Driver:    strings.ToLower(getEnv("STORE_DRIVER", StoreFile)),
		KeyPrefix: getEnv("STORE_KEY_PREFIX", "duckwolf_"),
		DataDir:   getEnv("STORE_DATA_DIR", "data"),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "ap-southeast-1"),
		Bucket:          getEnv("S3_BUCKET", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		UsePathStyle:    getEnvBool("S3_USE_PATH_STYLE", false),
	}

	// Gemini; API_KEY is accepted for compatibility with older deployments.
	cfg.Gemini = GeminiConfig{
		APIKey:  getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		Model:   getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		BaseURL: getEnv("GEMINI_BASE_URL", ""),
	}

	cfg.Breaker = BreakerConfig{
		MaxRequests:      uint32(getEnvInt("BREAKER_MAX_REQUESTS", 1)),
		FailureThreshold: uint32(getEnvInt("BREAKER_FAILURE_THRESHOLD", 5)),
	}

	cfg.Kafka = KafkaConfig{
		Brokers:     getEnvList("KAFKA_BROKERS", ""),
		NotifyTopic: getEnv("KAFKA_NOTIFY_TOPIC", "dashboard-notifications"),
	}

	// Durations
	var err error
	if cfg.Gemini.Timeout, err = parseDurationEnv("GEMINI_TIMEOUT", "60s"); err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TIMEOUT: %w", err)
	}
	if cfg.Breaker.Interval, err = parseDurationEnv("BREAKER_INTERVAL", "60s"); err != nil {
		return nil, fmt.Errorf("invalid BREAKER_INTERVAL: %w", err)
	}
	if cfg.Breaker.Timeout, err = parseDurationEnv("BREAKER_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid BREAKER_TIMEOUT: %w", err)
	}
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.Worker.AlertInterval, err = parseDurationEnv("ALERT_INTERVAL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid ALERT_INTERVAL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreFile, StoreRedis:
	case StorePostgres:
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
			return errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			return errors.New("S3_BUCKET must be set for the s3 store driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want memory, file, redis, postgres or s3)", c.Store.Driver)
	}

	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.AuthEnabled() && (c.Admin.Email == "" || c.Admin.PasswordHash == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set when JWT_SECRET is set")
	}
	if c.Breaker.FailureThreshold == 0 {
		return errors.New("BREAKER_FAILURE_THRESHOLD must be > 0")
	}

	return nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvList splits a comma-separated variable, dropping blanks.
func getEnvList(key, def string) []string {
	raw := getEnv(key, def)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	OTP       OTPConfig
	SMTP      SMTPConfig
	Stability StabilityConfig
	Gemini    GeminiConfig
	Images    ImagesConfig
	Jobs      JobsConfig
	CORS      CORSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// IsProduction reports whether the server runs in production mode
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	// RawURL, when set, wins over the individual parts.
	RawURL   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	if c.RawURL != "" {
		return c.RawURL
	}
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// OTPConfig holds login code configuration
type OTPConfig struct {
	TTL      time.Duration
	Cooldown time.Duration
}

// SMTPConfig holds outbound email configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// StabilityConfig holds the image-generation provider configuration
type StabilityConfig struct {
	APIKey string
	APIURL string
}

// GeminiConfig holds the icon keyword provider configuration
type GeminiConfig struct {
	APIKey string
	APIURL string
}

// ImagesConfig controls local re-hosting of generated images
type ImagesConfig struct {
	SaveLocally   bool
	UploadsDir    string
	PublicBaseURL string
}

// JobsConfig holds background job configuration
type JobsConfig struct {
	ReconcileInterval time.Duration
}

// CORSConfig holds the allowed browser origin
type CORSConfig struct {
	Origin string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			RawURL:   getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cling"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "change-this-in-production"),
			ExpiresIn: getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		},
		OTP: OTPConfig{
			TTL:      getEnvAsDuration("OTP_TTL", 10*time.Minute),
			Cooldown: getEnvAsDuration("OTP_RATE_LIMIT", time.Minute),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("FROM_EMAIL", "no-reply@cling.local"),
		},
		Stability: StabilityConfig{
			APIKey: getEnv("STABILITY_API_KEY", ""),
			APIURL: getEnv("STABILITY_API_URL", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			APIURL: getEnv("GEMINI_API_URL", ""),
		},
		Images: ImagesConfig{
			SaveLocally:   getEnvAsBool("SAVE_IMAGE", false),
			UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		},
		Jobs: JobsConfig{
			ReconcileInterval: getEnvAsDuration("RECONCILE_INTERVAL", 10*time.Minute),
		},
		CORS: CORSConfig{
			Origin: getEnv("FRONTEND_ORIGIN", "http://localhost:3002"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

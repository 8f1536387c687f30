package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	BranchCode BranchCodeConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the attendance business parameters. The timezone
// drives the day boundary and the late cutoff; it used to be a hidden
// Asia/Jakarta assumption and is now explicit.
type AttendanceConfig struct {
	Timezone     string
	RadiusMeters float64
	QRTokenTTL   time.Duration
	LateCutoff   string // "HH:MM" local time
}

// BranchCodeConfig controls generated branch codes (PREFIX + digits).
type BranchCodeConfig struct {
	Prefix string
	Length int
}

func Load() (*Config, error) {
	// .env is optional; absence just means plain environment variables.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "okehris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	radius, err := strconv.ParseFloat(getEnv("ATTENDANCE_RADIUS_METERS", "1500"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_RADIUS_METERS: %w", err)
	}

	qrTTL, err := time.ParseDuration(getEnv("ATTENDANCE_QR_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_QR_TTL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:     getEnv("ATTENDANCE_TIMEZONE", "Asia/Jakarta"),
		RadiusMeters: radius,
		QRTokenTTL:   qrTTL,
		LateCutoff:   getEnv("ATTENDANCE_LATE_CUTOFF", "09:00"),
	}

	// Branch code configuration
	codeLength, err := strconv.Atoi(getEnv("BRANCH_CODE_LENGTH", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid BRANCH_CODE_LENGTH: %w", err)
	}

	config.BranchCode = BranchCodeConfig{
		Prefix: getEnv("BRANCH_CODE_PREFIX", "OKE"),
		Length: codeLength,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	if _, err := time.Parse("15:04", c.Attendance.LateCutoff); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_LATE_CUTOFF: %w", err)
	}
	if c.Attendance.RadiusMeters <= 0 {
		return fmt.Errorf("ATTENDANCE_RADIUS_METERS must be positive")
	}
	if c.BranchCode.Length <= len(c.BranchCode.Prefix) {
		return fmt.Errorf("BRANCH_CODE_LENGTH must exceed the prefix length")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

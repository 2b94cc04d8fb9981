package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pickem-app-go/logging"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Auth     AuthConfig     `json:"auth"`
	App      AppConfig      `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host string `json:"host"`
	Port string `json:"port"`
}

// DatabaseConfig holds MongoDB configuration
type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string `json:"jwt_secret"`
}

// AppConfig holds pick'em competition configuration
type AppConfig struct {
	// DeadlineTime is the daily pick lock time in 24-hour "HH:MM" format,
	// interpreted in Timezone on each game's date.
	DeadlineTime string `json:"deadline_time"`
	// Timezone is the IANA zone id the deadline is evaluated in.
	Timezone       string `json:"timezone"`
	WeeksPerSeason int    `json:"weeks_per_season"`
	GamesPerWeek   int    `json:"games_per_week"`
	IsDevelopment  bool   `json:"is_development"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; environment variables still apply
		logging.Debugf("No .env file loaded: %v", err)
	}

	config := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "127.0.0.1"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "pickem_app"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", ""),
			EnableColor: getBoolEnv("LOG_COLOR", true),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		App: AppConfig{
			DeadlineTime:   getEnv("PICK_DEADLINE_TIME", "16:30"),
			Timezone:       getEnv("PICK_TIMEZONE", "America/Los_Angeles"),
			WeeksPerSeason: getIntEnv("WEEKS_PER_SEASON", 16),
			GamesPerWeek:   getIntEnv("GAMES_PER_WEEK", 20),
			IsDevelopment:  getBoolEnv("IS_DEVELOPMENT", false),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.JWTSecret == "" && !c.App.IsDevelopment {
		return fmt.Errorf("JWT secret is required")
	}

	if _, _, err := ParseDeadline(c.App.DeadlineTime); err != nil {
		return fmt.Errorf("invalid PICK_DEADLINE_TIME %q: %w", c.App.DeadlineTime, err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid PICK_TIMEZONE %q: %w", c.App.Timezone, err)
	}

	if c.App.WeeksPerSeason < 1 {
		return fmt.Errorf("weeks per season must be positive, got: %d", c.App.WeeksPerSeason)
	}
	if c.App.GamesPerWeek < 1 {
		return fmt.Errorf("games per week must be positive, got: %d", c.App.GamesPerWeek)
	}

	return nil
}

// ParseDeadline parses a 24-hour "HH:MM" deadline string into hour and minute
func ParseDeadline(deadline string) (hour, minute int, err error) {
	parts := strings.SplitN(deadline, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM format")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour %q", parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute %q", parts[1])
	}
	return hour, minute, nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s", c.GetServerAddress())
	logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database,
		c.Database.Username, c.Database.Password != "")
	logging.Infof("Logging: Level=%s, Color=%t", c.Logging.Level, c.Logging.EnableColor)
	logging.Infof("App: Deadline=%s %s, Weeks=%d, GamesPerWeek=%d, Development=%t",
		c.App.DeadlineTime, c.App.Timezone, c.App.WeeksPerSeason,
		c.App.GamesPerWeek, c.App.IsDevelopment)
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

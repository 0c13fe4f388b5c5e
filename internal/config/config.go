package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort             = 8080
	DefaultSweepIntervalSec = 60
	DefaultTokenTTLDays     = 30
	DefaultFrontendURL      = "http://localhost:5173"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Push     PushConfig
	Sweep    SweepConfig
}

type ServerConfig struct {
	Env         string
	Host        string
	Port        int
	LogLevel    string
	CorsOrigins string
}

type DatabaseConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration

	// BootstrapUsers seeds staff accounts at startup, formatted as a
	// comma-separated list of username:password:role:areaId entries.
	BootstrapUsers string
}

type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
}

type SweepConfig struct {
	Interval time.Duration

	// LinkURL is the deep link embedded in session-over notifications.
	LinkURL string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Env:         getEnv("APP_ENV", "development"),
			Host:        getEnv("HOST", "0.0.0.0"),
			Port:        getEnvInt("PORT", DefaultPort),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CorsOrigins: getEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			TokenTTL:       time.Duration(getEnvInt("TOKEN_TTL_DAYS", DefaultTokenTTLDays)) * 24 * time.Hour,
			BootstrapUsers: getEnv("BOOTSTRAP_USERS", ""),
		},
		Push: PushConfig{
			VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
			VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
			Subscriber:      getEnv("VAPID_SUBSCRIBER", ""),
		},
		Sweep: SweepConfig{
			Interval: time.Duration(getEnvInt("SWEEP_INTERVAL", DefaultSweepIntervalSec)) * time.Second,
			LinkURL:  getEnv("NOTIFICATION_LINK_URL", DefaultFrontendURL),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

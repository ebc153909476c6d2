package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories/cache"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/notification"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv parses values such as "30s" or "5m".
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("invalid duration for %s: %q, using %s", key, val, defaultVal)
	}
	return defaultVal
}

// GetListEnv splits a comma separated variable, dropping empty items.
func GetListEnv(key string, defaultVal []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config gathers the settings of both binaries.
type Config struct {
	Port          string
	StorageDriver string
	JWTSecret     string
	CORSOrigins   string

	DB    repositories.DBConfig
	Redis cache.RedisConfig
	Util  notification.UtilConfig

	SnapshotCacheTTL    time.Duration
	NotifyTimeout       time.Duration
	NotifyQueue         string
	NotifierConcurrency int
	DefaultTimeZone     string

	KafkaBrokers       []string
	KafkaApprovalTopic string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:          GetEnv("PORT", "3000"),
		StorageDriver: GetEnv("STORAGE_DRIVER", StorageDriverPostgres),
		JWTSecret:     GetEnv("JWT_SECRET", ""),
		CORSOrigins:   GetEnv("CORS_ORIGINS", "*"),
		DB: repositories.DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", ""),
			Name:            GetEnv("DB_NAME", "qpon_auth"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		},
		Redis: cache.RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		Util: notification.UtilConfig{
			BaseURL:  GetEnv("UTIL_BASE_URL", "http://localhost:8082"),
			SMSPath:  GetEnv("UTIL_SEND_SMS_PATH", "/api/v1/notification/sms"),
			MailPath: GetEnv("UTIL_SEND_MAIL_PATH", "/api/v1/notification/mail"),
			AppKey:   GetEnv("UTIL_APP_KEY", ""),
			Timeout:  GetDurationEnv("UTIL_TIMEOUT", 10*time.Second),
		},
		SnapshotCacheTTL:    GetDurationEnv("SNAPSHOT_CACHE_TTL", 10*time.Minute),
		NotifyTimeout:       GetDurationEnv("NOTIFY_TIMEOUT", 10*time.Second),
		NotifyQueue:         GetEnv("NOTIFY_QUEUE", notification.DefaultQueue),
		NotifierConcurrency: GetIntEnv("NOTIFIER_CONCURRENCY", 10),
		DefaultTimeZone:     GetEnv("DEFAULT_TIME_ZONE", notification.DefaultTimeZone),
		KafkaBrokers:        GetListEnv("KAFKA_BROKERS", nil),
		KafkaApprovalTopic:  GetEnv("KAFKA_APPROVAL_TOPIC", "merchant.approval.decided"),
	}
}

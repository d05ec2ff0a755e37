package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	LogLevel    string

	AdminAddr         string
	AdminUser         string
	AdminPasswordHash string
	SessionTTL        time.Duration
	SessionMax        int
	CSRFSecure        bool

	APIBaseURL     string
	APITimeout     time.Duration
	APITokenSecret []byte
}

type DevAPIConfig struct {
	ServiceName string
	LogLevel    string

	Addr         string
	DatabaseURL  string
	SQLitePath   string
	KafkaBrokers []string
	TokenSecret  []byte
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("Notice: %s file not found: %v. Using system environment variables", path, err)
	}
}

func Load() *Config {
	loadDotEnv(".env")

	return &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "order-admin"),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		AdminAddr:         EnvDefault("ADMIN_ADDR", ":8080"),
		AdminUser:         os.Getenv("ADMIN_USER"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionTTL:        EnvDurationDefault("SESSION_TTL", 30*time.Minute),
		SessionMax:        EnvIntDefault("SESSION_MAX", 1000),
		CSRFSecure:        EnvBoolDefault("CSRF_SECURE", false),

		APIBaseURL:     EnvDefault("API_BASE_URL", "https://localhost:3010/api"),
		APITimeout:     EnvDurationDefault("API_TIMEOUT", 0),
		APITokenSecret: []byte(os.Getenv("API_TOKEN_SECRET")),
	}
}

func LoadDevAPI() *DevAPIConfig {
	loadDotEnv(".env")

	return &DevAPIConfig{
		ServiceName: EnvDefault("SERVICE_NAME", "order-devapi"),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		Addr:         EnvDefault("DEVAPI_ADDR", ":3010"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SQLitePath:   EnvDefault("DEVAPI_SQLITE", ":memory:"),
		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		TokenSecret:  []byte(os.Getenv("API_TOKEN_SECRET")),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
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

// EnvDurationDefault accepts Go duration strings ("15s") or a bare number of seconds.
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n := EnvIntDefault(key, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

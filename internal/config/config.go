package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client reads from the environment.
type Config struct {
	APIBaseURL     string
	SessionBackend string // "file" or "redis"
	SessionFile    string
	RedisAddr      string
	PageSize       int
	PollInterval   time.Duration
	Debug          bool
}

// Load reads a .env file when present, then the environment.
func Load() *Config {
	_ = godotenv.Load() // missing .env is fine

	return &Config{
		APIBaseURL:     getEnv("LINKVIEW_API_URL", "http://localhost:8080"),
		SessionBackend: getEnv("LINKVIEW_SESSION_BACKEND", "file"),
		SessionFile:    getEnv("LINKVIEW_SESSION_FILE", ""),
		RedisAddr:      getEnv("LINKVIEW_REDIS_ADDR", "localhost:6379"),
		PageSize:       getEnvInt("LINKVIEW_PAGE_SIZE", 10),
		PollInterval:   getEnvDuration("LINKVIEW_POLL_INTERVAL", 30*time.Second),
		Debug:          getEnv("LINKVIEW_DEBUG", "") != "",
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}

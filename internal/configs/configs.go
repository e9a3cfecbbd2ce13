package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	SessionBackend         string
	SessionKeyPrefix       string
	JWTSecret              string
	JWTTTLHours            int
	AvatarDir              string
	AvatarMaxBytes         int64
	CORSAllowedOrigins     []string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		SessionBackend:         getEnv("SESSION_BACKEND", SessionBackendRedis),
		SessionKeyPrefix:       getEnv("SESSION_KEY_PREFIX", "task_manager"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTTTLHours:            getEnvAsInt("JWT_TTL_HOURS", 24*7),
		AvatarDir:              getEnv("AVATAR_DIR", "avatars"),
		AvatarMaxBytes:         int64(getEnvAsInt("AVATAR_MAX_BYTES", 2<<20)),
		CORSAllowedOrigins:     getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.SessionBackend != SessionBackendRedis && cfg.SessionBackend != SessionBackendMemory {
		log.Fatal("SESSION_BACKEND must be redis or memory")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("JWT_SECRET must be at least 32 characters")
	}
	if cfg.JWTTTLHours <= 0 {
		log.Fatal("JWT_TTL_HOURS must be greater than 0")
	}
	if cfg.AvatarDir == "" {
		log.Fatal("AVATAR_DIR must not be empty")
	}
	if cfg.AvatarMaxBytes <= 0 {
		log.Fatal("AVATAR_MAX_BYTES must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		log.Fatal("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

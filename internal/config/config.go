package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env          string `validate:"required"`
	Port         int    `validate:"gte=1,lte=65535"`
	StoreBackend string `validate:"oneof=redis postgres memory"`

	// postgres backend
	DBURL string

	// redis backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// empty disables tracing
	OTLPEndpoint string

	MaxBodyBytes int64 `validate:"gt=0"`
}

// Load reads the configuration from the environment and validates it.
// Everything has a dev-friendly default so a bare `go run` works.
func Load() (Config, error) {
	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		Port:          getEnvInt("PORT", 8080),
		StoreBackend:  getEnv("STORE_BACKEND", "redis"),
		DBURL:         buildDBURL(),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		MaxBodyBytes:  int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
	}

	err := validator.New().Struct(cfg)

	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "eventica")
	pass := getEnv("DB_PASSWORD", "eventica")
	name := getEnv("DB_NAME", "eventica")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}

	return fallback
}

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT string
	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	DB_AUTO_MIGRATE      bool
	// search config, empty disables indexing
	ELASTIC_URL string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
}

// LoadEnvConfig reads an optional .env file, then the process environment.
func LoadEnvConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:             getEnvString("APP_PORT", getEnvString("PORT", "3000")),
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "hr_records"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		DB_AUTO_MIGRATE:      getEnvBool("DB_AUTO_MIGRATE", false),
		ELASTIC_URL:          getEnvString("ELASTIC_URL", ""),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}

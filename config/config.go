package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	TelegramToken string
	DBPath        string
	Store         string
	HTTPAddr      string
	JWTSecret     string
	Workers       int
	QueueSize     int
	LogLevel      string
	ReportTimeout time.Duration
}

// LoadConfig подгружает переменные из env-файлов и читает конфиг.
// Без аргументов читается .env из текущей директории, если он есть;
// явно указанный файл обязан существовать.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("env file: %w", err)
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBPath:        getEnvOrDefault("DB_PATH", "payroll-bot.db"),
		Store:         getEnvOrDefault("STORE", StoreSQLite),
		HTTPAddr:      getEnvOrDefault("HTTP_ADDR", ":3000"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Workers, err = getIntOrDefault("WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = getIntOrDefault("QUEUE_SIZE", 32); err != nil {
		return nil, err
	}
	timeout := getEnvOrDefault("REPORT_TIMEOUT", "30s")
	if cfg.ReportTimeout, err = time.ParseDuration(timeout); err != nil {
		return nil, fmt.Errorf("REPORT_TIMEOUT: %w", err)
	}
	if cfg.Store != StoreSQLite && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("STORE: unknown store %q", cfg.Store)
	}
	return cfg, nil
}

// RequireToken нужен только для запуска бота.
func (c *Config) RequireToken() error {
	if c.TelegramToken == "" {
		return ErrNoToken{}
	}
	return nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN не задан в окружении"
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

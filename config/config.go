package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	SQSQueueURL string
	Environment string
}

func Load() Config {
	// .env is a development convenience; in deployment the variables come
	// from the environment.
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8087"),
		SQSQueueURL: getEnv("SQS_QUEUE_URL", ""),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

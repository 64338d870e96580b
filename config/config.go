package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	// Path to the SQLite database file shared by the whole application.
	DBPath string

	JWTSecret string

	LogLevel  string
	LogFormat string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		AppPort: get("APP_PORT", "3000"),
		AppEnv:  get("APP_ENV", "dev"),

		DBPath: get("DB_PATH", "classroom.db"),

		JWTSecret: get("JWT_SECRET", "dev-secret"),

		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "console"),
	}
}

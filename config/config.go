package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env               string
	Port              string
	DBURL             string
	AccessTokenSecret string
	AccessExpiryMin   int
}

// Load reads the configuration from the environment. DB_URL may be left
// empty, in which case the service runs on the in-memory store.
func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DBURL:             getEnv("DB_URL", ""),
		AccessTokenSecret: mustGetEnv("ACCESS_TOKEN_SECRET"),
		AccessExpiryMin:   getEnvAsInt("ACCESS_TOKEN_EXPIRY", 15),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

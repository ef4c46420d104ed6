package configs

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "socialfeed"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 3600)) * time.Second,
	}
}

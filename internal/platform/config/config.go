package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime int // minutes

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MediaEndpoint  string
	MediaRegion    string
	MediaBucket    string
	MediaAccessKey string
	MediaSecretKey string
	MediaBaseURL   string
	MediaTimeoutS  int

	AuthRateLimitWindowS int
	AuthRateLimitMax     int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:        getEnv("API_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "user"),
		DBPassword:     getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "stayhub_db"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),

		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetime: getEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		MediaEndpoint:  getEnv("MEDIA_S3_ENDPOINT", "http://localhost:9000"),
		MediaRegion:    getEnv("MEDIA_S3_REGION", "us-east-1"),
		MediaBucket:    getEnv("MEDIA_S3_BUCKET", "stayhub-media"),
		MediaAccessKey: getEnv("MEDIA_S3_ACCESS_KEY", "minioadmin"),
		MediaSecretKey: getEnv("MEDIA_S3_SECRET_KEY", "minioadmin"),
		MediaBaseURL:   getEnv("MEDIA_PUBLIC_BASE_URL", "http://localhost:9000/stayhub-media"),
		MediaTimeoutS:  getEnvAsInt("MEDIA_TIMEOUT_SECONDS", 15),

		AuthRateLimitWindowS: getEnvAsInt("AUTH_RATE_LIMIT_WINDOW_SECONDS", 60),
		AuthRateLimitMax:     getEnvAsInt("AUTH_RATE_LIMIT_MAX_REQUESTS", 10),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"travelhub/constants"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string

	AccessTokenSecret string
	AccessTokenTTL    time.Duration

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	GeoCacheTTL   time.Duration

	CloudinaryURL string
	RabbitMQURL   string

	GeoDeletePolicy string
	AutoMigrate     bool

	AdminEmail    string
	AdminPassword string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

// Load đọc .env rồi tới biến môi trường
func Load() *Config {
	LoadEnv()

	cfg := &Config{
		Env:               getEnv("ENV", "dev"),
		Port:              getEnv("PORT", "8083"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AccessTokenSecret: os.Getenv("SECRET_KEY_ACCESS_TOKEN"),
		AccessTokenTTL:    time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 60*24*3)) * time.Minute,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisUser:         os.Getenv("REDIS_USER"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		GeoCacheTTL:       getEnvDuration("GEO_CACHE_TTL", 10*time.Minute),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		GeoDeletePolicy:   strings.ToLower(getEnv("GEO_DELETE_POLICY", constants.GeoDeleteRestrict)),
		AutoMigrate:       getEnvBool("AUTO_MIGRATE", true),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.GeoDeletePolicy != constants.GeoDeleteCascade {
		cfg.GeoDeletePolicy = constants.GeoDeleteRestrict
	}
	if cfg.AccessTokenSecret == "" {
		log.Println("Warning: SECRET_KEY_ACCESS_TOKEN chưa được cấu hình")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

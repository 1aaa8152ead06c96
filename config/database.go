package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getDBConfigByEnv(env string) (string, error) {
	var prefix string

	switch env {
	case "dev":
		prefix = "DEV_DB_"
	case "qc":
		prefix = "QC_DB_"
	case "prod":
		prefix = "PROD_DB_"
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}

	sslMode := getEnv(prefix+"SSLMODE", "require")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Ho_Chi_Minh",
		os.Getenv(prefix+"HOST"),
		os.Getenv(prefix+"USER"),
		os.Getenv(prefix+"PASSWORD"),
		os.Getenv(prefix+"NAME"),
		os.Getenv(prefix+"PORT"),
		sslMode,
	)
	return dsn, nil
}

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn, err := getDBConfigByEnv(cfg.Env)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	return db, nil
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	BcryptCost int
	Database   DatabaseConfig
}

type DatabaseConfig struct {
	URL  string
	Name string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		URL:  getEnv("DB_URL", "mongodb://localhost:27017"),
		Name: getEnv("DB_NAME", "library"),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 5000),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),
		Database:   dbConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

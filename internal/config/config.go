package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Game     Game
}

type Server struct {
	Address string
}

type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Auth struct {
	SessionSecret string
	AdminEmail    string
}

type Game struct {
	MaxPlayers int
}

// Load reads configuration from the environment. A .env file is honored
// when present so local development works without exporting anything.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: Server{
			Address: getEnv("SERVER_ADDRESS", ":8080"),
		},
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "quizz_game"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: Auth{
			SessionSecret: getEnv("SESSION_SECRET", "quizz-game-dev-secret"),
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@gmail.com"),
		},
		Game: Game{
			MaxPlayers: 4,
		},
	}

	portStr := getEnv("DB_PORT", "5432")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %v", err)
	}
	cfg.Database.Port = port

	return cfg, nil
}

// DSN builds the postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// getEnv retrieves an environment variable value or returns a default value if not set
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

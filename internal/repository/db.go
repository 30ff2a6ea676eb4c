package repository

import (
	"github.com/Jaden827827/Quizz-game/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database wraps the shared gorm handle passed to every repository.
type Database struct {
	*gorm.DB
}

func NewDatabase(cfg config.Database) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return &Database{DB: db}, nil
}

package repository

import (
	"errors"
	"fmt"

	"github.com/fadilmartias/skillsnap/internal/model"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Models lists every table the service owns, in creation order.
func Models() []any {
	return []any{
		&model.User{},
		&model.ResumeAnalysis{},
		&model.RoadmapStep{},
		&model.ProgressEvent{},
	}
}

// Migrate creates the pgvector extension on Postgres and migrates all models.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("create vector extension: %w", err)
		}
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

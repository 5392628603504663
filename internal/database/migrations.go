package database

import (
	"fmt"

	"github.com/yukikurage/idea-tracker-api/internal/logger"
	"github.com/yukikurage/idea-tracker-api/internal/models"
	"gorm.io/gorm"
)

// requiredIndexes lists indexes the queries depend on. Names match the model tags.
var requiredIndexes = []struct {
	model any
	name  string
}{
	// Owner-scoped listing, newest first
	{&models.Idea{}, "idx_ideas_user_created"},
	{&models.Idea{}, "idx_ideas_status"},

	// Login lookup and duplicate detection
	{&models.User{}, "idx_users_email"},
}

// Migrate brings the schema up to date and makes sure the indexes exist.
func Migrate(db *gorm.DB, log *logger.Logger) error {
	log.Info("Running database migrations...")
	if err := db.AutoMigrate(&models.User{}, &models.Idea{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := ensureIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

// ensureIndexes creates any index missing from a schema migrated by an older build.
func ensureIndexes(db *gorm.DB, log *logger.Logger) error {
	migrator := db.Migrator()
	for _, idx := range requiredIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Info("Created index", "index", idx.name)
	}

	return nil
}

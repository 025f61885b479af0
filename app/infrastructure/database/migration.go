package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
)

// SchemaVersion is bumped whenever a registered schema changes shape.
const SchemaVersion = "000003"

type DatabaseMigration struct {
	gorm.Model
	Version string `gorm:"not null;uniqueIndex"`
}

type DBMigrator struct {
	db *gorm.DB
}

func NewDBMigrator(db *gorm.DB) *DBMigrator {
	return &DBMigrator{
		db: db,
	}
}

func (d *DBMigrator) currentVersion(ctx context.Context) (string, error) {
	var record DatabaseMigration
	err := d.db.WithContext(ctx).Order("id DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query migration records: %w", err)
	}
	return record.Version, nil
}

// Migrate creates or alters the registered tables. Existing rows are kept,
// AutoMigrate only adds columns and indexes.
func (d *DBMigrator) Migrate() error {
	ctx := context.Background()
	if err := d.db.AutoMigrate(&DatabaseMigration{}); err != nil {
		return fmt.Errorf("failed to create 'database_migration' table: %w", err)
	}
	version, err := d.currentVersion(ctx)
	if err != nil {
		return err
	}
	if version >= SchemaVersion {
		logger.GetLogger().Infof("database schema is up to date: %s", version)
		return nil
	}
	for _, model := range SchemaRegistry {
		if err := d.db.AutoMigrate(model); err != nil {
			logger.GetLogger().
				WithField("error_code", "75333e43-8157-4f0a-8e34-aa34e6e7c285").
				Errorf("failed to auto migrate schema: %T, error: %v", model, err)
			return err
		}
	}
	if err := d.db.WithContext(ctx).Create(&DatabaseMigration{Version: SchemaVersion}).Error; err != nil {
		return fmt.Errorf("failed to record migration %s: %w", SchemaVersion, err)
	}
	logger.GetLogger().Infof("database schema migrated from %q to %s", version, SchemaVersion)
	return nil
}

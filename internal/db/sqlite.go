/**
 * @description
 * SQLite connection manager using GORM.
 * The whole dataset lives in a single database file; schema creation is
 * idempotent and safe to run on every startup.
 *
 * @dependencies
 * - gorm.io/gorm: ORM library
 * - github.com/glebarez/sqlite: Pure-Go SQLite driver
 */

package db

import (
	"github.com/foodlens-project/backend/internal/config"
	"github.com/foodlens-project/backend/internal/logger"
	"github.com/foodlens-project/backend/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ConnectSQLite opens (creating if needed) the SQLite database file
func ConnectSQLite(cfg *config.Config) (*gorm.DB, error) {
	// Configure GORM logger based on environment
	gormLogLevel := gormLogger.Error
	if cfg.Server.Env == "development" {
		gormLogLevel = gormLogger.Info
	} else if cfg.Server.Env == "staging" {
		gormLogLevel = gormLogger.Warn
	}

	gdb, err := gorm.Open(sqlite.Open(cfg.DB.Path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, err
	}

	// The pipeline is single-threaded and the file driver serializes writes;
	// keep a single connection so writers never contend on the file lock.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	logger.Info("✅ Connected to SQLite at %s", cfg.DB.Path)
	return gdb, nil
}

// Migrate creates the four tables if absent; a no-op otherwise
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.Product{},
		&models.Item{},
		&models.PriceHistory{},
		&models.Meal{},
	)
}

package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/handlersyss/BarSystem/pkg/config"
)

var db *gorm.DB

// InitDB opens the database connection for the configured backend
// (postgres or sqlite) and applies the pool settings.
func InitDB(cfg *config.Config) error {
	var (
		dialector gorm.Dialector
		err       error
	)

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DB.GetDSN(),
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		})
	case config.BackendSQLite:
		dialector = sqlite.Open(cfg.DB.SQLitePath)
	default:
		return fmt.Errorf("backend %q does not use a database", cfg.Storage.Backend)
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(cfg.DB.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database object: %w", err)
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

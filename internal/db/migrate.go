package db

import (
	"currency_wizard/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger levels
)

// Open connects to MySQL with driver errors translated into gorm errors
func Open(dsn string, isProd bool) (*gorm.DB, error) {
	level := logger.Info // Verbose SQL logging during development
	if isProd {
		level = logger.Warn
	}
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true, // Surface duplicate keys as gorm.ErrDuplicatedKey
		Logger:         logger.Default.LogMode(level),
	})
}

// AutoMigrate creates or updates the users and conversion_history tables
func AutoMigrate(db *gorm.DB) error {
	// Users first, conversion_history references users.username
	return db.AutoMigrate(&domain.User{}, &domain.ConversionRecord{})
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn, false) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

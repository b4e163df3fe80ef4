package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abekenov/taskdep/internal/models"
)

var DB *gorm.DB

// Initialize sets up the database connection, runs migrations and seeds
// the default project and user
func Initialize() error {
	dbPath, err := getDatabasePath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create taskdep directory: %w", err)
	}

	// Open database connection
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db

	// Run auto-migrations
	if err := Migrate(DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedDefaults(); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	return nil
}

// getDatabasePath returns the path to the SQLite database file
func getDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskdep", "taskdep.db"), nil
}

// Migrate creates/updates the database schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.User{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskDependency{},
		&models.TaskEvent{},
	)
}

// seedDefaults makes sure the "inbox" project and the "me" user exist so
// the CLI works without any setup.
func seedDefaults() error {
	var user models.User
	if err := DB.Where(models.User{Name: "me"}).FirstOrCreate(&user).Error; err != nil {
		return err
	}

	var project models.Project
	if err := DB.Where(models.Project{Name: "inbox"}).FirstOrCreate(&project).Error; err != nil {
		return err
	}

	member := models.ProjectMember{ProjectID: project.ID, UserID: user.ID}
	return DB.Where(models.ProjectMember{ProjectID: project.ID, UserID: user.ID}).
		FirstOrCreate(&member).Error
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

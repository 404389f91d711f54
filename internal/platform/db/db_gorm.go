// Package db opens the application database connection.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "taskboard/internal/feature/auth/adapters"
	authentity "taskboard/internal/feature/auth/domain/entity"
	taskentity "taskboard/internal/feature/tasks/domain/entity"
)

// Config holds the database connection parameters read from the environment.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// LoadConfig reads connection parameters from environment variables.
func LoadConfig() Config {
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}
	return Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		SSLMode:  sslmode,
	}
}

// BuildDSN builds a Postgres DSN from the config.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// OpenDB connects to Postgres, retrying for up to a minute so the app survives
// the database coming up after it. When RUN_MIGRATIONS=true it also runs the
// schema migrations.
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfig())

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// Migrate creates or updates the users, tasks, and sessions tables.
// Users must come first so the tasks foreign key has something to reference.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authentity.User{},
		&taskentity.Task{},
		&authadapters.SessionModel{},
	)
}

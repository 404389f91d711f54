// Package entity defines the domain entities for the tasks feature.
package entity

import (
	"time"

	authentity "taskboard/internal/feature/auth/domain/entity"
)

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// Title is the short summary of the task. It must not be empty.
	Title string `gorm:"size:255;not null"`

	// Description is optional free text.
	Description string `gorm:"type:text"`

	// Completed marks whether the task is done. New tasks start incomplete.
	Completed bool `gorm:"not null;default:false"`

	// UserID is the owning user. Every ownership check compares against it.
	// Deleting the user cascades to the user's tasks.
	UserID uint `gorm:"index;not null"`

	// User backs the foreign key so the store enforces referential integrity.
	User authentity.User `gorm:"constraint:OnDelete:CASCADE"`

	// CreatedAt is the timestamp when the task was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the task was last updated.
	UpdatedAt time.Time
}

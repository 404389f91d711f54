// Package adapters provides repository implementations for the tasks feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskboard/internal/feature/tasks/domain/entity"
	"taskboard/internal/feature/tasks/usecase"
)

// taskPostgres is a GORM implementation of the TaskRepository interface.
type taskPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure taskPostgres implements TaskRepository.
var _ usecase.TaskRepository = (*taskPostgres)(nil)

// NewTaskPostgres creates a new instance of taskPostgres with the given gorm.DB connection.
func NewTaskPostgres(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// Create inserts the task into the database.
// The User association is omitted: UserID is set directly and the foreign key
// constraint rejects owners that do not exist.
func (r *taskPostgres) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Omit("User").Create(task).Error
}

// FindByID retrieves a task by ID.
// It returns usecase.ErrTaskNotFound if the task does not exist.
func (r *taskPostgres) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindByUserID retrieves all tasks owned by the user, oldest first.
func (r *taskPostgres) FindByUserID(ctx context.Context, userID uint) ([]*entity.Task, error) {
	var tasks []*entity.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves the task's current field values.
func (r *taskPostgres) Update(ctx context.Context, task *entity.Task) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task permanently.
func (r *taskPostgres) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

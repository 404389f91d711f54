package usecase

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/feature/tasks/domain/entity"
	"taskboard/internal/shared/validation"
)

// TaskRepository abstracts the persistence layer for task entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	// Create persists a new task to the storage.
	Create(ctx context.Context, task *entity.Task) error

	// FindByID retrieves a task by ID regardless of owner.
	// It returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Task, error)

	// FindByUserID retrieves all tasks owned by the user in creation order.
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Task, error)

	// Update persists changes to an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes a task permanently.
	Delete(ctx context.Context, id uint) error
}

// TaskInput carries the user-editable task fields.
type TaskInput struct {
	Title       string
	Description string
	Completed   bool
}

// tasksUsecase implements task CRUD scoped to the acting user. The acting user
// id is always an explicit parameter; nothing is read from ambient state.
type tasksUsecase struct {
	tasks TaskRepository
}

// NewTasksUsecase creates a new tasksUsecase.
func NewTasksUsecase(tasks TaskRepository) *tasksUsecase {
	return &tasksUsecase{tasks: tasks}
}

// validateTitle rejects empty or blank titles.
func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", validation.FieldErrors{"title": "title is required"}
	}
	return trimmed, nil
}

// List returns the acting user's tasks in creation order.
func (u *tasksUsecase) List(ctx context.Context, userID uint) ([]*entity.Task, error) {
	return u.tasks.FindByUserID(ctx, userID)
}

// Create persists a new incomplete task owned by the acting user.
func (u *tasksUsecase) Create(ctx context.Context, userID uint, in TaskInput) (*entity.Task, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	task := &entity.Task{
		Title:       title,
		Description: in.Description,
		Completed:   false,
		UserID:      userID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns the task if it exists and is owned by the acting user.
func (u *tasksUsecase) Get(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return u.ownedTask(ctx, userID, taskID)
}

// Update applies the input fields to a task after the ownership check.
func (u *tasksUsecase) Update(ctx context.Context, userID, taskID uint, in TaskInput) (*entity.Task, error) {
	task, err := u.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = in.Description
	task.Completed = in.Completed
	if err := u.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task after the ownership check.
func (u *tasksUsecase) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := u.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	return u.tasks.Delete(ctx, task.ID)
}

// ownedTask is the single ownership guard every id-scoped operation goes
// through: resource.UserID must equal the acting user id before any read
// exposure or mutation. Not-found and not-owned stay distinguishable here;
// the transport layer collapses them into one opaque denial.
func (u *tasksUsecase) ownedTask(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	task, err := u.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}

// Package handler provides the HTTP handlers for the tasks feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard/internal/feature/tasks/domain/entity"
	"taskboard/internal/feature/tasks/transport/http/dto"
	"taskboard/internal/feature/tasks/usecase"
	"taskboard/internal/platform/csrf"
	"taskboard/internal/platform/session"
	"taskboard/internal/shared/validation"
)

// TasksUsecase defines the task operations the handlers depend on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TasksUsecase interface {
	List(ctx context.Context, userID uint) ([]*entity.Task, error)
	Create(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error)
	Get(ctx context.Context, userID, taskID uint) (*entity.Task, error)
	Update(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error)
	Delete(ctx context.Context, userID, taskID uint) error
}

// TaskHandler serves the task list, create, edit, update, and delete pages
// and actions. All routes sit behind session.AuthRequired.
type TaskHandler struct {
	tasks TasksUsecase
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks TasksUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Index handles GET /tasks.
func (h *TaskHandler) Index(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("task list failed", "error", err, "user_id", userID)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	c.HTML(http.StatusOK, "tasks_index.tmpl", gin.H{
		"CSRF":  csrf.Token(c),
		"Tasks": tasks,
	})
}

// ShowCreate handles GET /tasks/create.
func (h *TaskHandler) ShowCreate(c *gin.Context) {
	h.renderCreate(c, http.StatusOK, dto.TaskForm{}, nil)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderCreate(c, http.StatusUnprocessableEntity, form, validation.FromBindingError(err))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, usecase.TaskInput{
		Title:       form.Title,
		Description: form.Description,
	})
	if err != nil {
		if fe, ok := validation.AsFieldErrors(err); ok {
			h.renderCreate(c, http.StatusUnprocessableEntity, form, fe)
			return
		}
		slog.Error("task create failed", "error", err, "user_id", userID)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	slog.Info("task created", "task_id", task.ID, "user_id", userID)
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// ShowEdit handles GET /tasks/:id/edit.
func (h *TaskHandler) ShowEdit(c *gin.Context) {
	userID, taskID, ok := h.scope(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		h.denyOrFail(c, err, userID, taskID)
		return
	}

	h.renderEdit(c, http.StatusOK, task.ID, dto.TaskForm{
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
	}, nil)
}

// Update handles PUT /tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, taskID, ok := h.scope(c)
	if !ok {
		return
	}

	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderEdit(c, http.StatusUnprocessableEntity, taskID, form, validation.FromBindingError(err))
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), userID, taskID, usecase.TaskInput{
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
	})
	if err != nil {
		if fe, ok := validation.AsFieldErrors(err); ok {
			h.renderEdit(c, http.StatusUnprocessableEntity, taskID, form, fe)
			return
		}
		h.denyOrFail(c, err, userID, taskID)
		return
	}

	slog.Info("task updated", "task_id", task.ID, "user_id", userID)
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, taskID, ok := h.scope(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		h.denyOrFail(c, err, userID, taskID)
		return
	}

	slog.Info("task deleted", "task_id", taskID, "user_id", userID)
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// scope extracts the acting user and the :id route parameter. A malformed id
// renders the same denial page as a missing task.
func (h *TaskHandler) scope(c *gin.Context) (userID, taskID uint, ok bool) {
	userID, found := session.UserID(c)
	if !found {
		c.Redirect(http.StatusSeeOther, "/login")
		return 0, 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.renderDenied(c)
		return 0, 0, false
	}
	return userID, uint(id), true
}

// denyOrFail renders not-found and not-owned identically so a caller cannot
// probe for the existence of other users' tasks.
func (h *TaskHandler) denyOrFail(c *gin.Context, err error, userID, taskID uint) {
	if errors.Is(err, usecase.ErrTaskNotFound) || errors.Is(err, usecase.ErrNotTaskOwner) {
		slog.Warn("task access denied", "error", err, "task_id", taskID, "user_id", userID)
		h.renderDenied(c)
		return
	}
	slog.Error("task operation failed", "error", err, "task_id", taskID, "user_id", userID)
	c.String(http.StatusInternalServerError, "something went wrong")
}

func (h *TaskHandler) renderDenied(c *gin.Context) {
	c.HTML(http.StatusNotFound, "denied.tmpl", gin.H{})
}

func (h *TaskHandler) renderCreate(c *gin.Context, status int, form dto.TaskForm, fe validation.FieldErrors) {
	c.HTML(status, "tasks_create.tmpl", gin.H{
		"CSRF":        csrf.Token(c),
		"Title":       form.Title,
		"Description": form.Description,
		"Errors":      fe,
	})
}

func (h *TaskHandler) renderEdit(c *gin.Context, status int, taskID uint, form dto.TaskForm, fe validation.FieldErrors) {
	c.HTML(status, "tasks_edit.tmpl", gin.H{
		"CSRF":        csrf.Token(c),
		"TaskID":      taskID,
		"Title":       form.Title,
		"Description": form.Description,
		"Completed":   form.Completed,
		"Errors":      fe,
	})
}

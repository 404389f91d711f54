package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"taskboard/internal/feature/tasks/domain/entity"
	"taskboard/internal/feature/tasks/usecase"
	"taskboard/internal/platform/session"
	"taskboard/internal/shared/validation"
	"taskboard/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockTasksUsecase is a mock implementation of the TasksUsecase interface.
type mockTasksUsecase struct {
	ListFunc   func(ctx context.Context, userID uint) ([]*entity.Task, error)
	CreateFunc func(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error)
	GetFunc    func(ctx context.Context, userID, taskID uint) (*entity.Task, error)
	UpdateFunc func(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error)
	DeleteFunc func(ctx context.Context, userID, taskID uint) error
}

func (m *mockTasksUsecase) List(ctx context.Context, userID uint) ([]*entity.Task, error) {
	return m.ListFunc(ctx, userID)
}

func (m *mockTasksUsecase) Create(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error) {
	return m.CreateFunc(ctx, userID, in)
}

func (m *mockTasksUsecase) Get(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return m.GetFunc(ctx, userID, taskID)
}

func (m *mockTasksUsecase) Update(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error) {
	return m.UpdateFunc(ctx, userID, taskID, in)
}

func (m *mockTasksUsecase) Delete(ctx context.Context, userID, taskID uint) error {
	return m.DeleteFunc(ctx, userID, taskID)
}

// setupRouter registers the task routes with the acting user already resolved,
// the way session.AuthRequired leaves the context in production.
func setupRouter(h *TaskHandler, userID uint) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.Use(func(c *gin.Context) {
		c.Set(session.ContextUserID, userID)
	})
	r.GET("/tasks", h.Index)
	r.GET("/tasks/create", h.ShowCreate)
	r.POST("/tasks", h.Create)
	r.GET("/tasks/:id/edit", h.ShowEdit)
	r.PUT("/tasks/:id", h.Update)
	r.DELETE("/tasks/:id", h.Delete)
	return r
}

func doForm(router *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_Index(t *testing.T) {
	mockUC := &mockTasksUsecase{
		ListFunc: func(ctx context.Context, userID uint) ([]*entity.Task, error) {
			assert.Equal(t, uint(1), userID)
			return []*entity.Task{
				{ID: 10, Title: "buy milk", UserID: 1},
				{ID: 11, Title: "walk the dog", UserID: 1, Completed: true},
			}, nil
		},
	}
	router := setupRouter(NewTaskHandler(mockUC), 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "buy milk")
	assert.Contains(t, w.Body.String(), "walk the dog")
}

func TestTaskHandler_Index_ListError(t *testing.T) {
	mockUC := &mockTasksUsecase{
		ListFunc: func(ctx context.Context, userID uint) ([]*entity.Task, error) {
			return nil, errors.New("db down")
		},
	}
	router := setupRouter(NewTaskHandler(mockUC), 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTaskHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		form           url.Values
		mockCreateFunc func(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: redirects to the task list",
			form: url.Values{"title": {"buy milk"}, "description": {"2 liters"}},
			mockCreateFunc: func(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error) {
				assert.Equal(t, uint(1), userID)
				assert.Equal(t, "buy milk", in.Title)
				assert.Equal(t, "2 liters", in.Description)
				return &entity.Task{ID: 10, Title: in.Title, UserID: userID}, nil
			},
			expectedStatus: http.StatusSeeOther,
		},
		{
			name:           "failure: missing title re-renders the form",
			form:           url.Values{"description": {"no title"}},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "title is required",
		},
		{
			name: "failure: usecase validation re-renders the form",
			form: url.Values{"title": {"   "}},
			mockCreateFunc: func(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error) {
				return nil, validation.FieldErrors{"title": "title must not be blank"}
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "title must not be blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(NewTaskHandler(&mockTasksUsecase{CreateFunc: tt.mockCreateFunc}), 1)

			w := doForm(router, http.MethodPost, "/tasks", tt.form)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			if tt.expectedStatus == http.StatusSeeOther {
				assert.Equal(t, "/tasks", w.Header().Get("Location"))
			}
		})
	}
}

func TestTaskHandler_ShowEdit(t *testing.T) {
	mockUC := &mockTasksUsecase{
		GetFunc: func(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, uint(10), taskID)
			return &entity.Task{ID: 10, Title: "buy milk", Description: "2 liters", UserID: 1}, nil
		},
	}
	router := setupRouter(NewTaskHandler(mockUC), 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/10/edit", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "buy milk")
	assert.Contains(t, w.Body.String(), "2 liters")
}

func TestTaskHandler_Update(t *testing.T) {
	var got usecase.TaskInput
	mockUC := &mockTasksUsecase{
		UpdateFunc: func(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error) {
			got = in
			return &entity.Task{ID: taskID, Title: in.Title, Completed: in.Completed, UserID: userID}, nil
		},
	}
	router := setupRouter(NewTaskHandler(mockUC), 1)

	w := doForm(router, http.MethodPut, "/tasks/10", url.Values{
		"title":     {"buy milk"},
		"completed": {"true"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/tasks", w.Header().Get("Location"))
	assert.Equal(t, "buy milk", got.Title)
	assert.True(t, got.Completed)
}

func TestTaskHandler_Delete(t *testing.T) {
	deleted := false
	mockUC := &mockTasksUsecase{
		DeleteFunc: func(ctx context.Context, userID, taskID uint) error {
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, uint(10), taskID)
			deleted = true
			return nil
		},
	}
	router := setupRouter(NewTaskHandler(mockUC), 1)

	w := doForm(router, http.MethodDelete, "/tasks/10", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, deleted)
}

// Not-found and not-owned must be indistinguishable from the outside, so a
// caller cannot probe for the existence of other users' tasks.
func TestTaskHandler_DenialIsUniform(t *testing.T) {
	operations := []struct {
		name string
		do   func(router *gin.Engine) *httptest.ResponseRecorder
	}{
		{
			name: "show edit",
			do: func(router *gin.Engine) *httptest.ResponseRecorder {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/10/edit", nil))
				return w
			},
		},
		{
			name: "update",
			do: func(router *gin.Engine) *httptest.ResponseRecorder {
				return doForm(router, http.MethodPut, "/tasks/10", url.Values{"title": {"x"}})
			},
		},
		{
			name: "delete",
			do: func(router *gin.Engine) *httptest.ResponseRecorder {
				return doForm(router, http.MethodDelete, "/tasks/10", url.Values{})
			},
		},
	}

	for _, op := range operations {
		t.Run(op.name, func(t *testing.T) {
			var bodies []string
			for _, cause := range []error{usecase.ErrTaskNotFound, usecase.ErrNotTaskOwner} {
				mockUC := &mockTasksUsecase{
					GetFunc: func(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
						return nil, cause
					},
					UpdateFunc: func(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error) {
						return nil, cause
					},
					DeleteFunc: func(ctx context.Context, userID, taskID uint) error {
						return cause
					},
				}
				w := op.do(setupRouter(NewTaskHandler(mockUC), 1))

				assert.Equal(t, http.StatusNotFound, w.Code)
				bodies = append(bodies, w.Body.String())
			}
			assert.Equal(t, bodies[0], bodies[1], "denial pages must be byte-identical")
		})
	}
}

func TestTaskHandler_MalformedIDIsDenied(t *testing.T) {
	router := setupRouter(NewTaskHandler(&mockTasksUsecase{}), 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/not-a-number/edit", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_ShowCreate(t *testing.T) {
	router := setupRouter(NewTaskHandler(&mockTasksUsecase{}), 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/create", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New task")
}

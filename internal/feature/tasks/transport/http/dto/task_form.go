// Package dto defines the form objects for the tasks feature's HTTP transport layer.
package dto

// TaskForm represents the POST /tasks and PUT /tasks/:id form bodies.
// Completed is a checkbox: absent means false, so it carries no binding tag.
type TaskForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Completed   bool   `form:"completed"`
}

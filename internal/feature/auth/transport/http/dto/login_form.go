// Package dto defines the form objects for the auth feature's HTTP transport layer.
package dto

// LoginForm represents the POST /login form body.
// It uses Gin's binding tags for validation (required, email format).
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

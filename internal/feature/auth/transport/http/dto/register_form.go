package dto

// RegisterForm represents the POST /register form body.
// The confirmation must match the password (eqfield) before the usecase runs.
type RegisterForm struct {
	Name                 string `form:"name" binding:"required"`
	Email                string `form:"email" binding:"required,email"`
	Password             string `form:"password" binding:"required,min=8"`
	PasswordConfirmation string `form:"password_confirmation" binding:"required,eqfield=Password"`
}

package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{
		"title": "title is required",
		"email": "email is not a valid address",
	}

	// Field order is deterministic regardless of map iteration order.
	assert.Equal(t, "email: email is not a valid address; title: title is required", fe.Error())
}

func TestAsFieldErrors(t *testing.T) {
	fe := FieldErrors{"title": "title is required"}

	t.Run("direct", func(t *testing.T) {
		got, ok := AsFieldErrors(fe)
		assert.True(t, ok)
		assert.Equal(t, fe, got)
	})

	t.Run("wrapped", func(t *testing.T) {
		got, ok := AsFieldErrors(fmt.Errorf("create task: %w", fe))
		assert.True(t, ok)
		assert.Equal(t, fe, got)
	})

	t.Run("unrelated error", func(t *testing.T) {
		got, ok := AsFieldErrors(errors.New("db down"))
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}

func TestFromBindingError(t *testing.T) {
	type form struct {
		Name                 string `form:"name" binding:"required"`
		Email                string `form:"email" binding:"required,email"`
		Password             string `form:"password" binding:"required,min=8"`
		PasswordConfirmation string `form:"password_confirmation" binding:"eqfield=Password"`
	}

	tests := []struct {
		name     string
		input    form
		expected FieldErrors
	}{
		{
			name:  "missing required fields",
			input: form{Password: "password123", PasswordConfirmation: "password123"},
			expected: FieldErrors{
				"name":  "name is required",
				"email": "email is required",
			},
		},
		{
			name:  "malformed email",
			input: form{Name: "Alice", Email: "not-an-email", Password: "password123", PasswordConfirmation: "password123"},
			expected: FieldErrors{
				"email": "email is not a valid address",
			},
		},
		{
			name:  "short password",
			input: form{Name: "Alice", Email: "a@x.com", Password: "short", PasswordConfirmation: "short"},
			expected: FieldErrors{
				"password": "password must be at least 8 characters long",
			},
		},
		{
			name:  "confirmation mismatch",
			input: form{Name: "Alice", Email: "a@x.com", Password: "password123", PasswordConfirmation: "different456"},
			expected: FieldErrors{
				"password_confirmation": "password confirmation does not match",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.input)
			if assert.Error(t, err) {
				assert.Equal(t, tt.expected, FromBindingError(err))
			}
		})
	}
}

func TestFromBindingError_NonValidatorError(t *testing.T) {
	fe := FromBindingError(errors.New("unexpected EOF"))
	assert.Equal(t, FieldErrors{"form": "invalid request"}, fe)
}

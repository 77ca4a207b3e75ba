package dto

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/NoteLegend/CodeKeep/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the only envelope that carries the token at the top
// level; clients read token and user directly.
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	} else if utf8.RuneCountInString(r.Name) > 50 {
		errs = append(errs, FieldError{Field: "name", Message: "Name cannot be more than 50 characters"})
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: "Please include a valid email"})
	}

	if utf8.RuneCountInString(r.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}

	return errs
}

func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: "Please include a valid email"})
	}

	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}

	return errs
}

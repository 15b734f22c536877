package model

import (
	"net/http"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by repositories when no document matches
var ErrNotFound = errors.New("document not found")

// ValidationError error when inputs are invalid
type ValidationError struct {
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserError when user is disallowed from resource
type UserError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *UserError) Error() string {
	return e.Message
}

// NotFound builds a 404 UserError
func NotFound(message string) *UserError {
	return &UserError{Message: message, StatusCode: http.StatusNotFound}
}

// Forbidden builds a 403 UserError
func Forbidden(message string) *UserError {
	return &UserError{Message: message, StatusCode: http.StatusForbidden}
}

// Unauthorized builds a 401 UserError
func Unauthorized(message string) *UserError {
	return &UserError{Message: message, StatusCode: http.StatusUnauthorized}
}

package domain

import (
	"fmt"
	"net/http"
)

// ConfigError means the tool cannot start: a required setting is missing or invalid.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// AuthError means the token was rejected.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "authentication failed: check that GITHUB_TOKEN is valid"
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api: %d %s", e.StatusCode, e.Message)
}

// Reason renders the error for the operator.
func (e *APIError) Reason() string {
	switch e.StatusCode {
	case http.StatusNotFound:
		return "repository not found or already deleted"
	case http.StatusForbidden:
		return "permission denied (check that the token has the delete_repo scope)"
	}
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("%d - %s", e.StatusCode, msg)
}

// InputError is operator input that could not be used.
type InputError struct {
	Input string
	Msg   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%q: %s", e.Input, e.Msg)
}

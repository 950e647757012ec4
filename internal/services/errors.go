package services

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrAIUnavailable      = errors.New("AI assistant unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("viewer session not found")
)

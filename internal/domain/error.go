package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidPlan        = errors.New("invalid or missing plan")
	ErrValidation         = errors.New("missing required input")
	ErrSubscriptionClosed = errors.New("subscription is closed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrOTPExpired         = errors.New("one-time code expired")

	// Infrastructure-boundary errors
	ErrInvalidExecContext = errors.New("invalid query execution context")
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)

package domain

import "errors"

// Errors returned by the use cases. Handlers map them to status codes with errors.Is.
var (
	ErrInvalidArgument    = errors.New("household_income and max_rent must be non-negative")
	ErrValidationFailure  = errors.New("validation failure")
	ErrRetrievalFailure   = errors.New("candidate retrieval failed")
	ErrPersistenceFailure = errors.New("recommendation persistence failed")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrInvalidWeights     = errors.New("score weights must sum to 1")
)

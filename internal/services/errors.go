package services

import (
	"errors"

	apperrors "github.com/rafkix/cefr-exam-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Exam specific errors
	ErrExamNotFound  = errors.New("exam not found")
	ErrExamNotActive = errors.New("exam is not active")

	// Attempt specific errors
	ErrAttemptNotFound        = errors.New("attempt not found")
	ErrAttemptNotActive       = errors.New("attempt is not active")
	ErrAttemptAlreadyFinished = errors.New("attempt already finished")
	ErrNoLiveSession          = errors.New("no live session for attempt")

	// Grading specific errors
	ErrResultNotFound  = errors.New("result not found")
	ErrAttemptNotEnded = errors.New("attempt has not been finished")

	// Writing specific errors
	ErrWritingTaskNotFound = errors.New("writing task not found")
)

// Use shared validation errors from the errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, ErrWritingTaskNotFound)
}

// IsConflict checks if error represents a state conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAttemptAlreadyFinished) ||
		errors.Is(err, ErrAttemptNotActive) ||
		errors.Is(err, ErrAttemptNotEnded) ||
		errors.Is(err, ErrExamNotActive)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

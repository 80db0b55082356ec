package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a lookup miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrValidation(domain, message string) *AppError {
	return New(CodeValidationFailed, domain, message, http.StatusBadRequest)
}

// InternalError wraps an unexpected error as a 500.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// DatabaseError wraps a persistence failure as a 500.
func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Database operation failed", http.StatusInternalServerError)
}

// ErrModelUnavailable is returned by the prediction surface when no
// trained artifacts can be loaded. Callers of the engine itself get the
// -1.0 sentinel instead; this error is only for the HTTP layer.
var ErrModelUnavailable = New(
	CodeModelUnavailable,
	"ml",
	"Prediction model is not available",
	http.StatusServiceUnavailable,
)

// ErrTrainingFailed wraps a failed training run (503 is deliberate: the
// previous artifacts stay in place and serving continues).
func ErrTrainingFailed(err error) *AppError {
	return Wrap(err, CodeTrainingFailed, "ml", "Model training failed", http.StatusServiceUnavailable)
}

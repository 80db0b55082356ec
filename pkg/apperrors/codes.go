package apperrors

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// System level
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeUnknownError  ErrorCode = "UNKNOWN_ERROR"

	// Business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// ML pipeline
	CodeModelUnavailable ErrorCode = "MODEL_UNAVAILABLE"
	CodeTrainingFailed   ErrorCode = "TRAINING_FAILED"
)

package apperrors

// ErrorCode is a stable, machine-checkable error kind.
type ErrorCode string

const (
	CodeInternalError ErrorCode = "INTERNAL_ERROR"

	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeNotConfigured    ErrorCode = "NOT_CONFIGURED"

	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeInvalidOTP         ErrorCode = "INVALID_OTP"
	CodeTooManyAttempts    ErrorCode = "TOO_MANY_ATTEMPTS"
	CodeWeakPassword       ErrorCode = "WEAK_PASSWORD"
)

package apperrors

import "net/http"

// Factories for wrapping repository errors.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Auth domain.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusBadRequest,
)

// ErrPasswordlessAccount is returned on password login against an account
// provisioned via OTP or OAuth, which has no hash to compare.
var ErrPasswordlessAccount = New(
	CodeInvalidCredentials,
	"auth",
	"This account was created using OTP. Please use OTP login or set a password first.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeWeakPassword,
	"auth",
	"Password must be at least 6 characters long",
	http.StatusBadRequest,
)

var ErrOTPNotFound = New(
	CodeNotFound,
	"auth",
	"OTP not found or expired. Please request a new OTP.",
	http.StatusBadRequest,
)

var ErrInvalidOTP = New(
	CodeInvalidOTP,
	"auth",
	"Invalid OTP. Please try again.",
	http.StatusBadRequest,
)

var ErrTooManyOTPAttempts = New(
	CodeTooManyAttempts,
	"auth",
	"Too many invalid attempts. Please request a new OTP.",
	http.StatusBadRequest,
)

var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired reset token",
	http.StatusBadRequest,
)

var ErrOAuthNotConfigured = New(
	CodeNotConfigured,
	"auth",
	"Google OAuth not configured",
	http.StatusNotImplemented,
)

// Jobs and applications.

var ErrJobNotFound = New(
	CodeNotFound,
	"jobs",
	"Job not found",
	http.StatusNotFound,
)

var ErrApplicationNotFound = New(
	CodeNotFound,
	"applications",
	"Application not found",
	http.StatusNotFound,
)

var ErrDuplicateApplication = New(
	CodeConflict,
	"applications",
	"Already applied",
	http.StatusConflict,
)

var ErrNotJobOwner = New(
	CodeForbidden,
	"applications",
	"Access denied",
	http.StatusForbidden,
)

var ErrRateLimited = New(
	CodeLimitExceeded,
	"request",
	"Too many requests. Please try again later.",
	http.StatusTooManyRequests,
)

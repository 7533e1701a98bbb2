package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeInvalidAPIKey   = "invalid_api_key"
	ErrCodeInvalidAdminKey = "invalid_admin_key"
	ErrCodeLoginFailed     = "login_failed"
	ErrCodeInvalidSession  = "invalid_session"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"

	// Quiz protocol errors
	ErrCodeInsufficientPool = "insufficient_pool"
	ErrCodeMalformedToken   = "malformed_token"
	ErrCodeExpiredToken     = "expired_token"
	ErrCodeInvalidSelection = "invalid_selection"

	// Upload errors
	ErrCodeUploadFailed    = "upload_failed"
	ErrCodeUnsupportedFile = "unsupported_file"
	ErrCodeFileTooLarge    = "file_too_large"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)

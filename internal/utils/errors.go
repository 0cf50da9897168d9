package utils

// API error codes carried in the response envelope.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeNotConfigured   = "AI_NOT_CONFIGURED"
	CodeAdvisoryFailed  = "AI_REQUEST_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for
// stable client handling.
const (
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeNotActivated       = "not_activated"
	ErrCodeCurrentPassword    = "current_password"
	ErrCodeConflict           = "conflict"
	ErrCodeForbidden          = "forbidden"
	ErrCodeForgery            = "forgery"
	ErrCodeNotFound           = "not_found"
	ErrCodeDispatchFailed     = "dispatch_failed"
	ErrCodeInternal           = "internal_error"
)

package apperrors

import "errors"

// Error taxonomy shared by every action
var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrPermissionDenied      = errors.New("not authorized")
	ErrValidationFailed      = errors.New("validation failed")
	ErrResourceNotFound      = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrDependentRecordsExist = errors.New("dependent records exist")
	ErrDownstream            = errors.New("downstream failure")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// CustomError carries a user-facing message on top of a taxonomy sentinel.
// Message is what the dashboard shows verbatim.
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithField records the offending form field
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError creates a validation failure with a form-level message
func NewValidationError(message string) *CustomError {
	return NewCustomError(ErrValidationFailed, message)
}

// NewNotFoundError creates a not-found failure
func NewNotFoundError(message string) *CustomError {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewConflictError creates a conflict failure
func NewConflictError(message string) *CustomError {
	return NewCustomError(ErrConflict, message)
}

// NewForbiddenError creates a not-authorized failure
func NewForbiddenError(message string) *CustomError {
	return NewCustomError(ErrPermissionDenied, message)
}

// NewDependentRecordsError creates a delete-blocked failure
func NewDependentRecordsError(message string) *CustomError {
	return NewCustomError(ErrDependentRecordsExist, message)
}

// NewDownstreamError wraps a store failure. The message shown to the user is
// the fallback text; the cause stays reachable through errors.Unwrap.
func NewDownstreamError(cause error, message string) *CustomError {
	return &CustomError{
		Err:     errors.Join(ErrDownstream, cause),
		Message: message,
	}
}

// Message extracts the user-facing message of err, or fallback
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

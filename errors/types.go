package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Wizard state errors
	ErrCodeStateNotHydrated ErrorCode = "STATE_NOT_HYDRATED"
	ErrCodeStateCorrupt     ErrorCode = "STATE_CORRUPT"
	ErrCodePhotosMisaligned ErrorCode = "PHOTOS_MISALIGNED"

	// Media errors
	ErrCodeMediaCopyFailed ErrorCode = "MEDIA_COPY_FAILED"
	ErrCodeMediaNotFound   ErrorCode = "MEDIA_NOT_FOUND"
	ErrCodeImportWatch     ErrorCode = "IMPORT_WATCH_FAILED"

	// Backend errors
	ErrCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	ErrCodeSendRejected       ErrorCode = "SEND_REJECTED"
	ErrCodeCodeVerification   ErrorCode = "CODE_VERIFICATION_FAILED"
	ErrCodePurchaseFailed     ErrorCode = "PURCHASE_FAILED"

	// History store errors
	ErrCodeHistoryOpen  ErrorCode = "HISTORY_OPEN_FAILED"
	ErrCodeHistoryQuery ErrorCode = "HISTORY_QUERY_FAILED"

	// General errors
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
)

// MiraError represents a structured error with context
type MiraError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *MiraError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MiraError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *MiraError) WithDetail(key string, value interface{}) *MiraError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *MiraError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new MiraError
func New(code ErrorCode, message string) *MiraError {
	return &MiraError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a MiraError
func Wrap(err error, code ErrorCode, message string) *MiraError {
	return &MiraError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific MiraError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	miraErr, ok := err.(*MiraError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return miraErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	miraErr, ok := err.(*MiraError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return miraErr.Code
}

package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *MiraError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *MiraError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// StateNotHydrated creates an error for gating decisions attempted before hydration
func StateNotHydrated(op string) *MiraError {
	return New(ErrCodeStateNotHydrated,
		fmt.Sprintf("'%s' requires hydrated wizard state", op)).
		WithDetail("operation", op)
}

// StateCorrupt creates an error for unreadable persisted wizard state
func StateCorrupt(key string, cause error) *MiraError {
	return Wrap(cause, ErrCodeStateCorrupt,
		fmt.Sprintf("persisted state for '%s' could not be decoded", key)).
		WithDetail("key", key)
}

// PhotosMisaligned creates an error for an id/url length mismatch
func PhotosMisaligned(ids, urls int) *MiraError {
	return New(ErrCodePhotosMisaligned,
		fmt.Sprintf("photo ids (%d) and urls (%d) must be index-aligned", ids, urls)).
		WithDetail("ids", ids).
		WithDetail("urls", urls)
}

// MediaCopyFailed creates an error for a failed copy into permanent storage
func MediaCopyFailed(uri string, cause error) *MiraError {
	return Wrap(cause, ErrCodeMediaCopyFailed,
		fmt.Sprintf("failed to copy '%s' into permanent storage", uri)).
		WithDetail("uri", uri)
}

// MediaNotFound creates an error for a missing source media file
func MediaNotFound(uri string) *MiraError {
	return New(ErrCodeMediaNotFound, fmt.Sprintf("media file not found: %s", uri)).
		WithDetail("uri", uri)
}

// BackendUnavailable creates an error for an unreachable backend
func BackendUnavailable(endpoint string, cause error) *MiraError {
	return Wrap(cause, ErrCodeBackendUnavailable,
		fmt.Sprintf("backend unreachable at %s", endpoint)).
		WithDetail("endpoint", endpoint)
}

// SendRejected creates an error for a rejected message send
func SendRejected(idempotencyKey, reason string) *MiraError {
	return New(ErrCodeSendRejected, fmt.Sprintf("message send rejected: %s", reason)).
		WithDetail("idempotency_key", idempotencyKey).
		WithDetail("reason", reason)
}

// CodeVerificationFailed creates an error for a failed one-time code check
func CodeVerificationFailed(phone string) *MiraError {
	return New(ErrCodeCodeVerification, "one-time code did not match").
		WithDetail("phone", phone)
}

// PurchaseFailed creates an error for a failed product purchase
func PurchaseFailed(productID string, cause error) *MiraError {
	return Wrap(cause, ErrCodePurchaseFailed,
		fmt.Sprintf("purchase of '%s' failed", productID)).
		WithDetail("product_id", productID)
}

// HistoryOpen creates an error for a history database that could not be opened
func HistoryOpen(path string, cause error) *MiraError {
	return Wrap(cause, ErrCodeHistoryOpen,
		fmt.Sprintf("failed to open history database at %s", path)).
		WithDetail("path", path)
}

// PermissionDenied creates a permission denied error. Permanently denied
// permissions carry the settings route so callers can direct the user there
// instead of re-prompting.
func PermissionDenied(resource string, permanent bool) *MiraError {
	return New(ErrCodePermissionDenied,
		fmt.Sprintf("permission denied for %s", resource)).
		WithDetail("resource", resource).
		WithDetail("permanent", permanent)
}

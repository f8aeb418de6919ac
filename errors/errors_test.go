package errors

import (
	"fmt"
	"testing"
)

func TestMiraError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeSendRejected, "send rejected")
	if err.Code != ErrCodeSendRejected {
		t.Errorf("expected code %s, got %s", ErrCodeSendRejected, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeBackendUnavailable, "backend down")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeBackendUnavailable) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeSendRejected) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("conversation", "c-42").WithDetail("attempt", 2)
	if detailed.Details["conversation"] != "c-42" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test PhotosMisaligned
	err := PhotosMisaligned(3, 2)
	if err.Code != ErrCodePhotosMisaligned {
		t.Errorf("expected code %s, got %s", ErrCodePhotosMisaligned, err.Code)
	}
	if err.Details["ids"] != 3 {
		t.Error("PhotosMisaligned should include ids detail")
	}

	// Test SendRejected
	err = SendRejected("key-1", "conversation closed")
	if err.Code != ErrCodeSendRejected {
		t.Errorf("expected code %s, got %s", ErrCodeSendRejected, err.Code)
	}
	if err.Details["idempotency_key"] != "key-1" {
		t.Error("SendRejected should include idempotency key detail")
	}

	// Test PermissionDenied carries the permanent flag
	err = PermissionDenied("camera", true)
	if err.Details["permanent"] != true {
		t.Error("PermissionDenied should include permanent detail")
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}

	err := MediaNotFound("file:///tmp/a.jpg")
	if GetCode(err) != ErrCodeMediaNotFound {
		t.Errorf("GetCode = %s, want %s", GetCode(err), ErrCodeMediaNotFound)
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if GetCode(wrapped) != ErrCodeMediaNotFound {
		t.Error("GetCode should unwrap to find the code")
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	base := QuotaExceeded("monthly AI credit limit reached")
	wrapped := Wrap(base, "daily analysis failed")

	if !HasCode(wrapped, CodeQuotaExceeded) {
		t.Errorf("expected QUOTA_EXCEEDED after wrap, got %s", GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("wrapped error must unwrap to its cause")
	}
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("connection refused"), "database query failed")
	if !HasCode(wrapped, CodeInternalError) {
		t.Errorf("plain causes default to INTERNAL_ERROR, got %s", GetCode(wrapped))
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("wrapping nil must return nil")
	}
	if Wrapf(nil, "ignored %d", 1) != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if got := GetCode(fmt.Errorf("plain")); got != "UNKNOWN" {
		t.Errorf("expected UNKNOWN, got %s", got)
	}
}

func TestErrorMessage(t *testing.T) {
	err := UpstreamError(fmt.Errorf("status 500"))
	if err.Error() != "AI provider request failed: status 500" {
		t.Errorf("unexpected message %q", err.Error())
	}

	plain := ValidationError("contents must contain at least one item")
	if plain.Error() != "contents must contain at least one item" {
		t.Errorf("unexpected message %q", plain.Error())
	}
}

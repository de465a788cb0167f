package testutil

import (
	"errors"
	"testing"

	apperrors "expensebook/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertFieldError checks that err is an INVALID_INPUT AppError whose field
// map carries message for field.
func AssertFieldError(t *testing.T, err error, field, message string) {
	t.Helper()

	AssertAppError(t, err, apperrors.ErrInvalidInput.Code)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return
	}
	got, ok := appErr.Fields[field]
	if !ok {
		t.Fatalf("expected field error for %q, got fields %v", field, appErr.Fields)
	}
	if got != message {
		t.Errorf("expected %q message %q, got %q", field, message, got)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("User", "123")

	// Test error message
	expected := `User with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	// Test helper function
	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestInvalidArgumentError(t *testing.T) {
	tests := []struct {
		name     string
		argument string
		message  string
		expected string
	}{
		{
			name:     "WithArgument",
			argument: "id",
			message:  "must not be nil",
			expected: `invalid argument "id": must not be nil`,
		},
		{
			name:     "WithoutArgument",
			argument: "",
			message:  "entity is nil",
			expected: "invalid argument: entity is nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInvalidArgumentError(tt.argument, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, ErrInvalidArgument) {
				t.Error("InvalidArgumentError should match ErrInvalidArgument")
			}

			if !IsInvalidArgument(err) {
				t.Error("IsInvalidArgument should return true for InvalidArgumentError")
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := NewStoreError("GetItem", cause)

	expected := "store operation GetItem failed: connection reset"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Error("StoreError should match ErrStoreUnavailable")
	}

	if !IsStoreUnavailable(err) {
		t.Error("IsStoreUnavailable should return true for StoreError")
	}

	// Non-throttled store errors must not match ErrThrottled
	if IsThrottled(err) {
		t.Error("IsThrottled should return false for a plain StoreError")
	}

	// The underlying cause is preserved through wrapping
	if !errors.Is(err, cause) {
		t.Error("StoreError should unwrap to its cause")
	}
}

func TestThrottledError(t *testing.T) {
	cause := fmt.Errorf("throughput exceeded")
	err := NewThrottledError("BatchWriteItem", cause)

	expected := "store operation BatchWriteItem throttled: throughput exceeded"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsThrottled(err) {
		t.Error("IsThrottled should return true for a throttled StoreError")
	}

	// A throttled failure is still a store failure
	if !IsStoreUnavailable(err) {
		t.Error("IsStoreUnavailable should return true for a throttled StoreError")
	}
}

func TestErrorWrapping(t *testing.T) {
	inner := NewNotFoundError("Player", "P1")
	wrapped := fmt.Errorf("loading player: %w", inner)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should see through fmt.Errorf wrapping")
	}

	var nfe *NotFoundError
	if !errors.As(wrapped, &nfe) {
		t.Fatal("errors.As should extract NotFoundError")
	}
	if nfe.Type != "Player" || nfe.Key != "P1" {
		t.Errorf("Unexpected NotFoundError contents: %+v", nfe)
	}
}

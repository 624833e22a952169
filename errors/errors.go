/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidArgument is returned when a required identifier or entity is missing
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable is returned when the underlying store cannot serve a request
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrThrottled is returned when the underlying store rejects a request due to throughput limits
	ErrThrottled = errors.New("store request throttled")

	// ErrNoTableMapping is returned when no table mapping is registered for a type
	ErrNoTableMapping = errors.New("no table mapping found for type")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidArgumentError represents a missing or malformed required argument
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	if e.Argument != "" {
		return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// StoreError wraps a failure reported by the underlying store client
type StoreError struct {
	Op        string
	Throttled bool
	Err       error
}

func (e *StoreError) Error() string {
	if e.Throttled {
		return fmt.Sprintf("store operation %s throttled: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	if e.Throttled && target == ErrThrottled {
		return true
	}
	return target == ErrStoreUnavailable
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(argument, message string) error {
	return &InvalidArgumentError{Argument: argument, Message: message}
}

// NewStoreError wraps err as a store-unavailable failure for the given operation
func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// NewThrottledError wraps err as a throttling failure for the given operation
func NewThrottledError(op string, err error) error {
	return &StoreError{Op: op, Throttled: true, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsStoreUnavailable checks if an error originated in the store client
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsThrottled checks if an error is a store throttling error
func IsThrottled(err error) bool {
	return errors.Is(err, ErrThrottled)
}

// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetDenied        = errors.New("reset password mismatch")
	ErrPermanentOperator  = errors.New("operator is permanent and cannot be removed")
	ErrDuplicateOperator  = errors.New("operator login already exists")
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrInsufficientDays   = errors.New("insufficient business days")
	ErrFeedUnavailable    = errors.New("feed unavailable")
	ErrNoCycle            = errors.New("no active cycle")
	ErrNoData             = errors.New("not enough data")
	ErrConfigInvalid      = errors.New("invalid configuration")
	ErrDatabaseError      = errors.New("database error")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// FeedError represents an error from a remote tabular feed.
type FeedError struct {
	Source  string
	Message string
	Err     error
}

func (e *FeedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed error [%s]: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("feed error [%s]: %s", e.Source, e.Message)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// NewFeedError creates a new FeedError.
func NewFeedError(source, message string, err error) *FeedError {
	return &FeedError{
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// StoreError represents a persistence-layer error.
type StoreError struct {
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s]: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Err:       err,
	}
}

// AdvisorError represents an error from the performance advisor.
type AdvisorError struct {
	Operation string
	Err       error
}

func (e *AdvisorError) Error() string {
	return fmt.Sprintf("advisor error [%s]: %v", e.Operation, e.Err)
}

func (e *AdvisorError) Unwrap() error {
	return e.Err
}

// NewAdvisorError creates a new AdvisorError.
func NewAdvisorError(operation string, err error) *AdvisorError {
	return &AdvisorError{
		Operation: operation,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

package domain

import (
	"errors"
	"fmt"
)

// ValidationError is a malformed or semantically invalid request. It is always raised before any write.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

type NotFoundError struct {
	Kind string
	ID   uint64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func NewNotFoundError(kind string, id uint64) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// StorageError wraps a read or write failure. Err is for logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return "storage: " + e.Op
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// ConcurrencyError means a concurrent mutation invalidated the cart snapshot.
type ConcurrencyError struct {
	Reason string
}

func (e *ConcurrencyError) Error() string { return e.Reason }

func NewConcurrencyError(reason string) *ConcurrencyError {
	return &ConcurrencyError{Reason: reason}
}

var ErrConcurrentCheckout = &ConcurrencyError{Reason: "cart changed during checkout, please review your cart and retry"}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

func IsConcurrency(err error) bool {
	var target *ConcurrencyError
	return errors.As(err, &target)
}

package core

import (
	"errors"
	"fmt"
)

// ValidationError means the caller supplied bad or missing input.
// Recoverable by correcting the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// QuotaError means a numeric ceiling was reached, e.g. the per-user
// project quota.
type QuotaError struct {
	Resource string
	Limit    int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s quota reached (max %d)", e.Resource, e.Limit)
}

// DuplicateError means a uniqueness constraint was violated. Field names
// the constraint where determinable ("email", "project_hash", "label
// name", "membership").
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "duplicate entry"
	}
	return fmt.Sprintf("duplicate %s", e.Field)
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StorageError wraps any other persistence failure. Error() is a generic
// message so engine-internal text never reaches the UI layer; the cause
// stays reachable through Unwrap for logging.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: operation failed", e.Op)
}

func (e *StorageError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsQuota(err error) bool {
	var target *QuotaError
	return errors.As(err, &target)
}

func IsDuplicate(err error) bool {
	var target *DuplicateError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

package api

import (
	stderrors "errors"
	"fmt"
)

// ValidationError indicates malformed input parameters. It is always surfaced
// before any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ResourceConflictError indicates the bucket name collides with a resource
// owned by an unrelated account. Fatal, never retried and never adopted.
type ResourceConflictError struct {
	BucketName string
}

func (e *ResourceConflictError) Error() string {
	return fmt.Sprintf("bucket %q already exists and is owned by another account", e.BucketName)
}

// TransientProviderError wraps provider throttling and other short-lived
// failures that are worth a single retry.
type TransientProviderError struct {
	Op    OpKind
	Cause error
}

func (e *TransientProviderError) Error() string {
	return fmt.Sprintf("transient provider error during %s: %v", e.Op, e.Cause)
}

func (e *TransientProviderError) Unwrap() error {
	return e.Cause
}

// PermissionError indicates the provider denied a specific action. Fatal.
type PermissionError struct {
	Action string
	Cause  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied for %s: %v", e.Action, e.Cause)
}

func (e *PermissionError) Unwrap() error {
	return e.Cause
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

func IsResourceConflict(err error) bool {
	var target *ResourceConflictError
	return stderrors.As(err, &target)
}

func IsTransient(err error) bool {
	var target *TransientProviderError
	return stderrors.As(err, &target)
}

func IsPermissionDenied(err error) bool {
	var target *PermissionError
	return stderrors.As(err, &target)
}

package domain

import (
	"errors"
	"fmt"
)

// Domain error categories. Typed errors below match one of these with errors.Is,
// so callers can branch on the category without knowing the concrete type.
var (
	// ErrValidation indicates missing or malformed input. No side effect was attempted.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a member region, document or roster entry does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates the request contradicts recorded state (e.g. duplicate submit).
	ErrConflict = errors.New("conflict")

	// ErrExternalCall indicates a required call to an external collaborator failed.
	ErrExternalCall = errors.New("external call failed")
)

// ValidationError describes a single invalid input field.
type ValidationError struct {
	Field string
	Issue string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Issue)
}

// Is reports whether target is ErrValidation.
func (e ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError names the missing resource and its lookup key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Is reports whether target is ErrNotFound.
func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError is returned when a write would overwrite write-once state.
type ConflictError struct {
	Member string
	Reason string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("member %q: %s", e.Member, e.Reason)
}

// Is reports whether target is ErrConflict.
func (e ConflictError) Is(target error) bool { return target == ErrConflict }

// ExternalCallError wraps a failure of the task source, document store, rewrite
// service or ledger backend. Op names the failing operation.
type ExternalCallError struct {
	Op     string
	Member string
	Err    error
}

func (e ExternalCallError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s (member %q): %v", e.Op, e.Member, e.Err)
}

func (e ExternalCallError) Unwrap() error { return e.Err }

// Is reports whether target is ErrExternalCall.
func (e ExternalCallError) Is(target error) bool { return target == ErrExternalCall }

// PartialDeleteError is returned when clearing a member region stopped half way.
// The region is left partially cleared; callers decide whether to retry the whole
// replacement. It is never retried automatically.
type PartialDeleteError struct {
	Label     string
	Removed   int
	Remaining int
	Err       error
}

func (e PartialDeleteError) Error() string {
	return fmt.Sprintf("clear region %q: removed %d node(s), %d remaining: %v",
		e.Label, e.Removed, e.Remaining, e.Err)
}

func (e PartialDeleteError) Unwrap() error { return e.Err }

// Is reports whether target is ErrExternalCall.
func (e PartialDeleteError) Is(target error) bool { return target == ErrExternalCall }

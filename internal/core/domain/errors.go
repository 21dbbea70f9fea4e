package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Login-flow errors. The flow stays retryable within its current phase.
	ErrUnknownUser     = errors.New("invalid username")
	ErrEmailMismatch   = errors.New("email does not match")
	ErrInvalidOTP      = errors.New("invalid OTP")
	ErrInvalidPassword = errors.New("invalid password")

	// Signup.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// Store lookups.
	ErrIdentityNotFound = errors.New("identity not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrContentNotFound  = errors.New("content not found")

	// ErrNotAStudent rejects stream resolution for accounts without the
	// student role.
	ErrNotAStudent = errors.New("account has no stream")

	// ErrNotFoundOverride is a deliberate access denial disguised as absence.
	// It must surface as a plain 404, indistinguishable from a missing page.
	ErrNotFoundOverride = errors.New("page not found")
)

// ValidationErrors collects per-field, user-correctable signup failures.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(v))
	for _, f := range fields {
		msgs = append(msgs, f+": "+v[f])
	}
	return strings.Join(msgs, "; ")
}

// NotificationError wraps a delivery failure from the notification service.
// It is non-fatal: state already committed when the send was attempted is
// never rolled back.
type NotificationError struct {
	Kind string // "otp", "student_welcome", "operator_alert"
	Err  error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification %s failed: %v", e.Kind, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

package ports

import "context"

// OTPStore is the ephemeral key-value slot holding the pending login code.
//
// The slot is a single process-wide value, not scoped to a user or session:
// a second RequestOTP call overwrites whatever code was pending, regardless
// of who asked for it. There is no expiry and the value is not invalidated
// on use. Callers must not assume the code they read belongs to them.
type OTPStore interface {
	Put(ctx context.Context, code int64) error
	// Get returns the pending code; ok is false when no code was ever stored.
	Get(ctx context.Context) (code int64, ok bool, err error)
}

// Notifier delivers a templated message to an address.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// otpKey is the single process-wide slot holding the pending login code.
// There is deliberately one key for the whole deployment: a later RequestOTP
// call overwrites whatever code was pending, whoever asked for it, and the
// value never expires. See OTPStore in ports for the contract.
const otpKey = "otp:verification_code"

// OTPStore keeps the pending one-time code in Redis.
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore wraps the given Redis client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Put stores the code, replacing any pending one. No TTL.
func (s *OTPStore) Put(ctx context.Context, code int64) error {
	if err := s.client.Set(ctx, otpKey, code, 0).Err(); err != nil {
		return fmt.Errorf("otp put: %w", err)
	}
	return nil
}

// Get reads the pending code. ok is false when the slot was never written.
func (s *OTPStore) Get(ctx context.Context) (int64, bool, error) {
	val, err := s.client.Get(ctx, otpKey).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("otp get: %w", err)
	}

	code, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("otp get: corrupt slot value %q: %w", val, err)
	}
	return code, true, nil
}

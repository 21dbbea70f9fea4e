package ports

import (
	"context"

	"github.com/campuslink/student-portal/internal/core/domain"
)

// OTPIssue is the outcome of the first login phase. MailErr is set when the
// code was stored but could not be delivered; the flow still moved forward.
type OTPIssue struct {
	Email   string
	MailErr error
}

// Session is a finalized login.
type Session struct {
	Token    string
	Identity *domain.Identity
}

// LoginService is the two-phase OTP login flow.
//
// Phase 1 (RequestOTP) checks username and email, generates a six-digit code,
// stashes it in the shared slot and mails it out. Phase 2 (VerifyOTP) compares
// the submitted code against the slot and then authenticates the password.
// OTP attempts are unbounded; a wrong password keeps the phase-2 state so the
// caller may retry the password without requesting a new code.
type LoginService interface {
	RequestOTP(ctx context.Context, username, email string) (*OTPIssue, error)
	VerifyOTP(ctx context.Context, username, otp, password string) (*Session, error)
}

// SignupInput carries a raw signup submission.
type SignupInput struct {
	FullName     string
	Email        string
	Password     string
	MobileNumber string
	StreamID     int64
	JoiningYear  int
	PassingYear  int
}

// SignupService validates and creates new student accounts.
type SignupService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.Identity, error)
}

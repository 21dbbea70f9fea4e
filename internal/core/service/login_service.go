package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// LoginService implements the two-phase OTP login flow.
type LoginService struct {
	identities ports.IdentityRepository
	otps       ports.OTPStore
	history    ports.LoginHistoryRepository
	notifier   ports.Notifier
	jwtSecret  string
	tokenTTL   time.Duration
	logger     zerolog.Logger
}

func NewLoginService(
	identities ports.IdentityRepository,
	otps ports.OTPStore,
	history ports.LoginHistoryRepository,
	notifier ports.Notifier,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *LoginService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &LoginService{
		identities: identities,
		otps:       otps,
		history:    history,
		notifier:   notifier,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// RequestOTP is phase 1: check the username/email pair, generate a six-digit
// code, stash it in the shared slot and mail it to the submitted address.
//
// A delivery failure does not abort the phase transition: the code is already
// stored, so the caller gets the issue back with MailErr set and may retry
// from phase 2. Ambiguous usernames (zero or several matches) are rejected
// before anything is stored.
func (s *LoginService) RequestOTP(ctx context.Context, username, email string) (*ports.OTPIssue, error) {
	matches, err := s.identities.FindByName(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("request otp: %w", err)
	}
	if len(matches) != 1 {
		return nil, domain.ErrUnknownUser
	}

	identity := matches[0]
	if identity.Email != email {
		return nil, domain.ErrEmailMismatch
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("request otp: %w", err)
	}

	if err := s.otps.Put(ctx, code); err != nil {
		return nil, fmt.Errorf("request otp: store code: %w", err)
	}

	issue := &ports.OTPIssue{Email: email}
	body := fmt.Sprintf("Your OTP for login is: %d", code)
	if err := s.notifier.Send(ctx, email, "Your OTP for Login", body); err != nil {
		issue.MailErr = &domain.NotificationError{Kind: "otp", Err: err}
		s.logger.Warn().Err(err).Str("email", email).Msg("OTP email delivery failed")
	}

	s.logger.Info().Str("username", username).Msg("OTP issued")
	return issue, nil
}

// VerifyOTP is phase 2: compare the submitted code against the shared slot,
// then authenticate the password and finalize the session.
//
// The comparison is numeric on both sides, so "123456" and 123456 are the
// same submission. A wrong password leaves the pending code in place; the
// caller retries the password without requesting a new OTP.
func (s *LoginService) VerifyOTP(ctx context.Context, username, otp, password string) (*ports.Session, error) {
	stored, ok, err := s.otps.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("verify otp: read code: %w", err)
	}
	submitted, parseErr := strconv.ParseInt(strings.TrimSpace(otp), 10, 64)
	if !ok || parseErr != nil || submitted != stored {
		return nil, domain.ErrInvalidOTP
	}

	matches, err := s.identities.FindByName(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if len(matches) != 1 {
		return nil, domain.ErrInvalidPassword
	}

	identity := matches[0]
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidPassword
	}

	token, err := s.generateToken(identity)
	if err != nil {
		return nil, fmt.Errorf("verify otp: sign token: %w", err)
	}

	rec := &domain.LoginRecord{IdentityID: identity.ID, LoggedInAt: time.Now().UTC()}
	if err := s.history.Record(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Str("uid", identity.ID).Msg("failed to record login")
	}

	s.logger.Info().Str("uid", identity.ID).Str("username", username).Msg("login finalized")
	return &ports.Session{Token: token, Identity: identity}, nil
}

func (s *LoginService) generateToken(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"uid":   identity.ID,
		"name":  identity.Name,
		"roles": identity.Roles,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateCode draws a uniform six-digit code. The range starts at 100000 so
// codes are leading-zero-free by construction.
func generateCode() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, err
	}
	return otpMin + n.Int64(), nil
}

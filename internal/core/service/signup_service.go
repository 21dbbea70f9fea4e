package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

const (
	minJoiningYear = 2020
	maxJoiningYear = 2024
	minPassingYear = 2024
	maxPassingYear = 2028
	maxCourseYears = 4
)

// SignupService creates new student accounts.
type SignupService struct {
	identities    ports.IdentityRepository
	directory     ports.DirectoryRepository
	notifier      ports.Notifier
	operatorEmail string
	logger        zerolog.Logger
}

func NewSignupService(
	identities ports.IdentityRepository,
	directory ports.DirectoryRepository,
	notifier ports.Notifier,
	operatorEmail string,
	logger zerolog.Logger,
) *SignupService {
	return &SignupService{
		identities:    identities,
		directory:     directory,
		notifier:      notifier,
		operatorEmail: operatorEmail,
		logger:        logger,
	}
}

// Signup validates the submission, creates the identity with the student role
// and notifies both the new student and the operator address. Field failures
// are collected into a single ValidationErrors before anything is persisted.
func (s *SignupService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Identity, error) {
	ve := domain.ValidationErrors{}
	if len(in.MobileNumber) != 10 {
		ve["mobile_number"] = "mobile number must be exactly 10 digits"
	}
	if in.JoiningYear < minJoiningYear || in.JoiningYear > maxJoiningYear {
		ve["joining_year"] = fmt.Sprintf("joining year must be between %d and %d", minJoiningYear, maxJoiningYear)
	}
	if in.PassingYear < minPassingYear || in.PassingYear > maxPassingYear {
		ve["passing_year"] = fmt.Sprintf("passing year must be between %d and %d", minPassingYear, maxPassingYear)
	} else if in.PassingYear > in.JoiningYear+maxCourseYears {
		ve["passing_year"] = fmt.Sprintf("passing year must be within %d years of joining year", maxCourseYears)
	}

	stream, err := s.directory.FindByID(ctx, in.StreamID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			ve["stream"] = "unknown stream"
		} else {
			return nil, fmt.Errorf("signup: resolve stream: %w", err)
		}
	}
	if len(ve) > 0 {
		return nil, ve
	}

	if _, err := s.identities.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	studentID, err := generateStudentID()
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	now := time.Now().UTC()
	streamID := in.StreamID
	identity := &domain.Identity{
		Name:         in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Active:       true,
		MobileNumber: in.MobileNumber,
		StreamID:     &streamID,
		JoiningYear:  in.JoiningYear,
		PassingYear:  in.PassingYear,
		StudentID:    studentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	identity.AssignRole(domain.RoleStudent)

	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.notify(ctx, created, stream.Name)

	s.logger.Info().Str("uid", created.ID).Str("student_id", studentID).Msg("student registered")
	return created, nil
}

// notify sends the welcome mail and the operator alert. Failures are logged
// and never roll back the created account.
func (s *SignupService) notify(ctx context.Context, identity *domain.Identity, streamName string) {
	profile := fmt.Sprintf(
		"Email: %s, Mobile Number: %s, Stream: %s, Joining Year: %d, Passing Year: %d",
		identity.Email, identity.MobileNumber, streamName, identity.JoiningYear, identity.PassingYear,
	)

	welcome := fmt.Sprintf("Dear %s, your student ID is %s. Your registration details are as follows: %s.",
		identity.Name, identity.StudentID, profile)
	if err := s.notifier.Send(ctx, identity.Email, "Welcome to the Student Portal", welcome); err != nil {
		s.logger.Warn().Err(err).Str("email", identity.Email).Msg("welcome email delivery failed")
	}

	alert := fmt.Sprintf("New student registered with details: Full Name: %s, %s.", identity.Name, profile)
	if err := s.notifier.Send(ctx, s.operatorEmail, "New Student Registration", alert); err != nil {
		s.logger.Warn().Err(err).Str("email", s.operatorEmail).Msg("operator email delivery failed")
	}
}

// generateStudentID returns a unique token in the format student_XXXXXXXX.
func generateStudentID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate student id: %w", err)
	}
	return fmt.Sprintf("student_%08X", b), nil
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

// StreamService resolves stream categories for the signup form and the
// per-student stream redirect.
type StreamService struct {
	identities ports.IdentityRepository
	directory  ports.DirectoryRepository
	logger     zerolog.Logger
}

func NewStreamService(identities ports.IdentityRepository, directory ports.DirectoryRepository, logger zerolog.Logger) *StreamService {
	return &StreamService{identities: identities, directory: directory, logger: logger}
}

// Options lists every selectable stream.
func (s *StreamService) Options(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.directory.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("stream options: %w", err)
	}
	return cats, nil
}

// RedirectPath resolves the principal's assigned stream to its page path:
// /taxonomy/term/{slug}, slug being the lowercase category name with spaces
// replaced by hyphens. Non-students are rejected with ErrNotAStudent.
func (s *StreamService) RedirectPath(ctx context.Context, principal *domain.Principal) (string, error) {
	if !principal.HasRole(domain.RoleStudent) {
		return "", domain.ErrNotAStudent
	}

	identity, err := s.identities.FindByID(ctx, principal.UID)
	if err != nil {
		return "", fmt.Errorf("stream redirect: %w", err)
	}
	if identity.StreamID == nil {
		return "", domain.ErrCategoryNotFound
	}

	cat, err := s.directory.FindByID(ctx, *identity.StreamID)
	if err != nil {
		return "", fmt.Errorf("stream redirect: %w", err)
	}
	return "/taxonomy/term/" + cat.Slug(), nil
}

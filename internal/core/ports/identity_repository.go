package ports

import (
	"context"
	"time"

	"github.com/campuslink/student-portal/internal/core/domain"
)

// IdentityFilter narrows student listings. Zero values mean "no filter";
// StreamID filters by the already-resolved category ID, Name by
// case-insensitive substring.
type IdentityFilter struct {
	StreamID    *int64
	JoiningYear int
	PassingYear int
	Name        string
}

// IdentityRepository is the typed boundary over the identity store.
type IdentityRepository interface {
	// FindByName returns every identity with the exact display name.
	// Callers decide how to treat zero or ambiguous matches.
	FindByName(ctx context.Context, name string) ([]*domain.Identity, error)
	// FindByEmail returns ErrIdentityNotFound when no identity has the email.
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	// Save persists mutations to an existing identity (role assignment).
	Save(ctx context.Context, identity *domain.Identity) error
	// ListInactive returns disabled accounts created inside [from, to].
	ListInactive(ctx context.Context, from, to time.Time) ([]*domain.Identity, error)
	// ListStudents returns role-student identities matching the filter.
	ListStudents(ctx context.Context, filter IdentityFilter) ([]*domain.Identity, error)
}

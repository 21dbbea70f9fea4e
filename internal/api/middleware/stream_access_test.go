package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

type stubIdentityRepo struct {
	identities map[string]*domain.Identity
}

func (s *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	if identity, ok := s.identities[id]; ok {
		return identity, nil
	}
	return nil, domain.ErrIdentityNotFound
}

func (s *stubIdentityRepo) FindByName(context.Context, string) ([]*domain.Identity, error) {
	return nil, nil
}

func (s *stubIdentityRepo) FindByEmail(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrIdentityNotFound
}

func (s *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	return identity, nil
}

func (s *stubIdentityRepo) Save(context.Context, *domain.Identity) error { return nil }

func (s *stubIdentityRepo) ListInactive(context.Context, time.Time, time.Time) ([]*domain.Identity, error) {
	return nil, nil
}

func (s *stubIdentityRepo) ListStudents(context.Context, ports.IdentityFilter) ([]*domain.Identity, error) {
	return nil, nil
}

type stubContentRepo struct {
	items map[int64]*domain.ContentItem
}

func (s *stubContentRepo) FindByID(_ context.Context, id int64) (*domain.ContentItem, error) {
	if item, ok := s.items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrContentNotFound
}

func int64ptr(v int64) *int64 { return &v }

// runFilter sends one request through StreamAccess with the given principal
// and reports the middleware's verdict. The inner handler records whether it
// was reached.
func runFilter(t *testing.T, identities ports.IdentityRepository, content ports.ContentRepository, path string, principal *domain.Principal) (reached bool, err error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalKey, principal)
	}

	mw := StreamAccess(identities, content, zerolog.Nop())
	handler := mw(func(echo.Context) error {
		reached = true
		return nil
	})
	err = handler(c)
	return reached, err
}

func studentPrincipal(uid string) *domain.Principal {
	return &domain.Principal{UID: uid, Name: "Asha Verma", Roles: []string{domain.RoleStudent}}
}

func repoWithStudent(uid string, streamID *int64) *stubIdentityRepo {
	return &stubIdentityRepo{identities: map[string]*domain.Identity{
		uid: {ID: uid, Name: "Asha Verma", StreamID: streamID, Roles: []string{domain.RoleStudent}},
	}}
}

func TestStreamAccess_CategoryOwnStreamAllowed(t *testing.T) {
	identities := repoWithStudent("u1", int64ptr(5))
	content := &stubContentRepo{}

	reached, err := runFilter(t, identities, content, "/category/5", studentPrincipal("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatalf("handler not reached")
	}
}

func TestStreamAccess_CategoryOtherStreamDenied(t *testing.T) {
	identities := repoWithStudent("u1", int64ptr(5))
	content := &stubContentRepo{}

	reached, err := runFilter(t, identities, content, "/category/7", studentPrincipal("u1"))
	if !errors.Is(err, domain.ErrNotFoundOverride) {
		t.Fatalf("err = %v, want ErrNotFoundOverride", err)
	}
	if reached {
		t.Fatalf("handler reached on denied request")
	}
}

func TestStreamAccess_CategoryStudentWithoutStreamDenied(t *testing.T) {
	identities := repoWithStudent("u1", nil)
	content := &stubContentRepo{}

	_, err := runFilter(t, identities, content, "/category/7", studentPrincipal("u1"))
	if !errors.Is(err, domain.ErrNotFoundOverride) {
		t.Fatalf("err = %v, want ErrNotFoundOverride", err)
	}
}

func TestStreamAccess_CategoryAnonymousAllowed(t *testing.T) {
	identities := &stubIdentityRepo{}
	content := &stubContentRepo{}

	reached, err := runFilter(t, identities, content, "/category/7", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatalf("handler not reached")
	}
}

func TestStreamAccess_CategoryNonStudentAllowed(t *testing.T) {
	identities := &stubIdentityRepo{}
	content := &stubContentRepo{}
	admin := &domain.Principal{UID: "a1", Roles: []string{domain.RoleAdmin}}

	reached, err := runFilter(t, identities, content, "/category/7", admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatalf("handler not reached")
	}
}

func TestStreamAccess_SubjectContentOtherStreamDenied(t *testing.T) {
	identities := repoWithStudent("u1", int64ptr(5))
	content := &stubContentRepo{items: map[int64]*domain.ContentItem{
		42: {ID: 42, TypeTag: domain.ContentTypeSubjects, Title: "Databases", StreamID: int64ptr(7)},
	}}

	_, err := runFilter(t, identities, content, "/content/42", studentPrincipal("u1"))
	if !errors.Is(err, domain.ErrNotFoundOverride) {
		t.Fatalf("err = %v, want ErrNotFoundOverride", err)
	}
}

func TestStreamAccess_SubjectContentOwnStreamAllowed(t *testing.T) {
	identities := repoWithStudent("u1", int64ptr(5))
	content := &stubContentRepo{items: map[int64]*domain.ContentItem{
		42: {ID: 42, TypeTag: domain.ContentTypeSubjects, Title: "Databases", StreamID: int64ptr(5)},
	}}

	reached, err := runFilter(t, identities, content, "/content/42", studentPrincipal("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatalf("handler not reached")
	}
}

func TestStreamAccess_SubjectContentWithoutStreamMismatchesViewer(t *testing.T) {
	identities := repoWithStudent("u1", int64ptr(5))
	content := &stubContentRepo{items: map[int64]*domain.ContentItem{
		42: {ID: 42, TypeTag: domain.ContentTypeSubjects, Title: "Orientation", StreamID: nil},
	}}

	_, err := runFilter(t, identities, content, "/content/42", studentPrincipal("u1"))
	if !errors.Is(err, domain.ErrNotFoundOverride) {
		t.Fatalf("err = %v, want ErrNotFoundOverride", err)
	}
}

func TestStreamAccess_NonSubjectContentAllowed(t *testing.T) {
	identities := repoWithStudent("u1", int64ptr(5))
	content := &stubContentRepo{items: map[int64]*domain.ContentItem{
		42: {ID: 42, TypeTag: "announcement", Title: "Holiday Notice", StreamID: int64ptr(7)},
	}}

	reached, err := runFilter(t, identities, content, "/content/42", studentPrincipal("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatalf("handler not reached")
	}
}

func TestStreamAccess_MissingContentFallsThrough(t *testing.T) {
	identities := repoWithStudent("u1", int64ptr(5))
	content := &stubContentRepo{}

	reached, err := runFilter(t, identities, content, "/content/999", studentPrincipal("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatalf("handler not reached")
	}
}

func TestStreamAccess_UnrelatedPathIgnored(t *testing.T) {
	identities := &stubIdentityRepo{}
	content := &stubContentRepo{}

	reached, err := runFilter(t, identities, content, "/api/students", studentPrincipal("missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatalf("handler not reached")
	}
}

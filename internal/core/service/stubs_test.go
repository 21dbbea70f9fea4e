package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

// --- identity store stub ---

type stubIdentityRepo struct {
	identities []*domain.Identity
	nextID     int
	createErr  error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	if i == nil {
		return nil
	}
	clone := *i
	clone.Roles = append([]string(nil), i.Roles...)
	if i.StreamID != nil {
		v := *i.StreamID
		clone.StreamID = &v
	}
	return &clone
}

func (r *stubIdentityRepo) add(i *domain.Identity) *domain.Identity {
	if i.ID == "" {
		r.nextID++
		i.ID = fmt.Sprintf("id_%d", r.nextID)
	}
	r.identities = append(r.identities, cloneIdentity(i))
	return i
}

func (r *stubIdentityRepo) FindByName(_ context.Context, name string) ([]*domain.Identity, error) {
	var out []*domain.Identity
	for _, i := range r.identities {
		if i.Name == name {
			out = append(out, cloneIdentity(i))
		}
	}
	return out, nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, i := range r.identities {
		if i.Email == email {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	for _, i := range r.identities {
		if i.ID == id {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, i := range r.identities {
		if i.Email == identity.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	created := cloneIdentity(identity)
	created.ID = fmt.Sprintf("id_%d", r.nextID)
	r.identities = append(r.identities, created)
	return cloneIdentity(created), nil
}

func (r *stubIdentityRepo) Save(_ context.Context, identity *domain.Identity) error {
	for n, i := range r.identities {
		if i.ID == identity.ID {
			r.identities[n] = cloneIdentity(identity)
			return nil
		}
	}
	return domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) ListInactive(_ context.Context, from, to time.Time) ([]*domain.Identity, error) {
	var out []*domain.Identity
	for _, i := range r.identities {
		if !i.Active && !i.CreatedAt.Before(from) && !i.CreatedAt.After(to) {
			out = append(out, cloneIdentity(i))
		}
	}
	return out, nil
}

func (r *stubIdentityRepo) ListStudents(_ context.Context, f ports.IdentityFilter) ([]*domain.Identity, error) {
	var out []*domain.Identity
	for _, i := range r.identities {
		if !i.HasRole(domain.RoleStudent) {
			continue
		}
		if f.StreamID != nil && !domain.StreamEqual(i.StreamID, f.StreamID) {
			continue
		}
		if f.JoiningYear != 0 && i.JoiningYear != f.JoiningYear {
			continue
		}
		if f.PassingYear != 0 && i.PassingYear != f.PassingYear {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(i.Name), strings.ToLower(f.Name)) {
			continue
		}
		out = append(out, cloneIdentity(i))
	}
	return out, nil
}

// --- ephemeral OTP slot stub ---

type memOTPStore struct {
	code   int64
	stored bool
	putErr error
}

func (s *memOTPStore) Put(_ context.Context, code int64) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.code = code
	s.stored = true
	return nil
}

func (s *memOTPStore) Get(_ context.Context) (int64, bool, error) {
	return s.code, s.stored, nil
}

// --- login history stub ---

type stubHistory struct {
	records []*domain.LoginRecord
	top     []ports.LoginCount
}

func (h *stubHistory) Record(_ context.Context, rec *domain.LoginRecord) error {
	h.records = append(h.records, rec)
	return nil
}

func (h *stubHistory) TopLogins(_ context.Context, limit int64) ([]ports.LoginCount, error) {
	if int64(len(h.top)) > limit {
		return h.top[:limit], nil
	}
	return h.top, nil
}

// --- notifier stub ---

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type stubNotifier struct {
	sent    []sentMail
	sendErr error
}

func (n *stubNotifier) Send(_ context.Context, to, subject, body string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// --- directory stub ---

type stubDirectory struct {
	categories []domain.Category
}

func (d *stubDirectory) ListAll(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), d.categories...), nil
}

func (d *stubDirectory) FindByID(_ context.Context, id int64) (domain.Category, error) {
	for _, c := range d.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func (d *stubDirectory) FindByName(_ context.Context, name string) (domain.Category, error) {
	for _, c := range d.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func int64ptr(v int64) *int64 { return &v }

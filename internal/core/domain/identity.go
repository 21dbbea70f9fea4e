package domain

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Identity models a registered portal account. Email is unique across all
// identities; StreamID is nil for accounts that never picked a stream.
type Identity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	StreamID     *int64    `json:"stream_id,omitempty"`
	JoiningYear  int       `json:"joining_year,omitempty"`
	PassingYear  int       `json:"passing_year,omitempty"`
	StudentID    string    `json:"student_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the identity carries the given role.
func (i *Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AssignRole attaches a role, removing a pre-existing copy first so the
// assignment never duplicates entries.
func (i *Identity) AssignRole(role string) {
	if i.HasRole(role) {
		i.RemoveRole(role)
	}
	i.Roles = append(i.Roles, role)
}

// RemoveRole detaches every copy of the given role.
func (i *Identity) RemoveRole(role string) {
	kept := i.Roles[:0]
	for _, r := range i.Roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	i.Roles = kept
}

// StreamEqual compares two stream references by identity: both absent passes,
// absent versus set fails, otherwise the values are compared.
func StreamEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Principal is the authenticated identity bound to the current request, if
// any. Handlers receive it explicitly; a nil *Principal means anonymous.
type Principal struct {
	UID   string
	Name  string
	Roles []string
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// LoginRecord is one successful login, kept for the activity leaderboard.
type LoginRecord struct {
	IdentityID string    `json:"identity_id"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

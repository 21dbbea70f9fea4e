package ports

import (
	"context"

	"github.com/campuslink/student-portal/internal/core/domain"
)

// InactiveStudent is one row of the admin dashboard listing.
type InactiveStudent struct {
	UID    string `json:"uid"`
	Name   string `json:"name"`
	Stream string `json:"stream"`
}

// InactiveReport is the dashboard listing plus its headline count.
type InactiveReport struct {
	Total    int               `json:"total"`
	Students []InactiveStudent `json:"students"`
}

// ActiveStudent is one leaderboard row.
type ActiveStudent struct {
	Name       string `json:"name"`
	LoginCount int64  `json:"login_count"`
}

// StudentFilter narrows the public student listing. Empty strings and zero
// years mean no filter; Stream matches the category name, not its ID.
type StudentFilter struct {
	Stream      string
	JoiningYear int
	PassingYear int
	Name        string
}

// StudentRecord is the wire shape of one student listing row. Nullable
// attributes are emitted as JSON null.
type StudentRecord struct {
	UID         string  `json:"uid"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Created     string  `json:"created"`
	Stream      *string `json:"stream"`
	JoiningYear *int    `json:"joining_year"`
	PassingYear *int    `json:"passing_year"`
	StudentID   *string `json:"student_id"`
}

// ReportingService serves the read-only aggregations over the identity store.
type ReportingService interface {
	InactiveStudents(ctx context.Context, year, month int) (*InactiveReport, error)
	TopActiveStudents(ctx context.Context) ([]ActiveStudent, error)
	ListStudents(ctx context.Context, filter StudentFilter) ([]StudentRecord, error)
}

// StreamService resolves stream categories for the signup form and the
// per-student stream redirect.
type StreamService interface {
	// Options lists every selectable stream.
	Options(ctx context.Context) ([]domain.Category, error)
	// RedirectPath returns the stream page path for a student principal.
	// Non-students get ErrNotAStudent.
	RedirectPath(ctx context.Context, principal *domain.Principal) (string, error)
}

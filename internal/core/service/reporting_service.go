package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

const leaderboardSize = 5

// ReportingService serves the read-only aggregations over the identity store.
type ReportingService struct {
	identities ports.IdentityRepository
	directory  ports.DirectoryRepository
	history    ports.LoginHistoryRepository
	logger     zerolog.Logger
}

func NewReportingService(
	identities ports.IdentityRepository,
	directory ports.DirectoryRepository,
	history ports.LoginHistoryRepository,
	logger zerolog.Logger,
) *ReportingService {
	return &ReportingService{
		identities: identities,
		directory:  directory,
		history:    history,
		logger:     logger,
	}
}

// InactiveStudents lists disabled accounts created within the given month.
// Zero year/month default to the current date. Rows missing a uid or name are
// dropped from the listing but still counted in the total.
func (s *ReportingService) InactiveStudents(ctx context.Context, year, month int) (*ports.InactiveReport, error) {
	now := time.Now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)

	identities, err := s.identities.ListInactive(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("inactive students: %w", err)
	}

	report := &ports.InactiveReport{Total: len(identities), Students: []ports.InactiveStudent{}}
	for _, identity := range identities {
		if identity.ID == "" || identity.Name == "" {
			continue
		}
		report.Students = append(report.Students, ports.InactiveStudent{
			UID:    identity.ID,
			Name:   identity.Name,
			Stream: s.streamName(ctx, identity.StreamID),
		})
	}
	return report, nil
}

// TopActiveStudents returns the login-count leaderboard, highest first.
// Identities that no longer resolve or lack the student role are skipped.
func (s *ReportingService) TopActiveStudents(ctx context.Context) ([]ports.ActiveStudent, error) {
	counts, err := s.history.TopLogins(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("top active students: %w", err)
	}

	rows := []ports.ActiveStudent{}
	for _, c := range counts {
		identity, err := s.identities.FindByID(ctx, c.IdentityID)
		if err != nil {
			if errors.Is(err, domain.ErrIdentityNotFound) {
				continue
			}
			return nil, fmt.Errorf("top active students: %w", err)
		}
		if !identity.HasRole(domain.RoleStudent) {
			continue
		}
		rows = append(rows, ports.ActiveStudent{Name: identity.Name, LoginCount: c.Count})
	}
	return rows, nil
}

// ListStudents returns the filtered student listing. A stream filter naming
// an unknown category yields an empty result, matching what an inner filter
// on the category name would produce.
func (s *ReportingService) ListStudents(ctx context.Context, filter ports.StudentFilter) ([]ports.StudentRecord, error) {
	repoFilter := ports.IdentityFilter{
		JoiningYear: filter.JoiningYear,
		PassingYear: filter.PassingYear,
		Name:        filter.Name,
	}
	if filter.Stream != "" {
		cat, err := s.directory.FindByName(ctx, filter.Stream)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return []ports.StudentRecord{}, nil
			}
			return nil, fmt.Errorf("list students: %w", err)
		}
		id := cat.ID
		repoFilter.StreamID = &id
	}

	identities, err := s.identities.ListStudents(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	records := make([]ports.StudentRecord, 0, len(identities))
	for _, identity := range identities {
		records = append(records, s.toRecord(ctx, identity))
	}
	return records, nil
}

func (s *ReportingService) toRecord(ctx context.Context, identity *domain.Identity) ports.StudentRecord {
	rec := ports.StudentRecord{
		UID:     identity.ID,
		Name:    identity.Name,
		Email:   identity.Email,
		Created: identity.CreatedAt.Format("2006-01-02"),
	}
	if identity.StreamID != nil {
		if cat, err := s.directory.FindByID(ctx, *identity.StreamID); err == nil {
			name := cat.Name
			rec.Stream = &name
		}
	}
	if identity.JoiningYear != 0 {
		jy := identity.JoiningYear
		rec.JoiningYear = &jy
	}
	if identity.PassingYear != 0 {
		py := identity.PassingYear
		rec.PassingYear = &py
	}
	if identity.StudentID != "" {
		sid := identity.StudentID
		rec.StudentID = &sid
	}
	return rec
}

// streamName resolves a stream reference to its display name, "N/A" when the
// reference is absent or stale.
func (s *ReportingService) streamName(ctx context.Context, streamID *int64) string {
	if streamID == nil {
		return "N/A"
	}
	cat, err := s.directory.FindByID(ctx, *streamID)
	if err != nil {
		return "N/A"
	}
	return cat.Name
}

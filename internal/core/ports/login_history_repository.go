package ports

import (
	"context"

	"github.com/campuslink/student-portal/internal/core/domain"
)

// LoginCount pairs an identity with its historical login total.
type LoginCount struct {
	IdentityID string
	Count      int64
}

// LoginHistoryRepository persists successful logins and aggregates them for
// the activity leaderboard.
type LoginHistoryRepository interface {
	Record(ctx context.Context, rec *domain.LoginRecord) error
	// TopLogins returns up to limit identities ordered by login count,
	// highest first.
	TopLogins(ctx context.Context, limit int64) ([]LoginCount, error)
}

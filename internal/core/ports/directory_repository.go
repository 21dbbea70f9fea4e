package ports

import (
	"context"

	"github.com/campuslink/student-portal/internal/core/domain"
)

// DirectoryRepository reads the stream vocabulary. The directory store owns
// the data; this service never writes categories.
type DirectoryRepository interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
	// FindByID returns ErrCategoryNotFound for unknown IDs.
	FindByID(ctx context.Context, id int64) (domain.Category, error)
	// FindByName returns ErrCategoryNotFound when no category has the name.
	FindByName(ctx context.Context, name string) (domain.Category, error)
}

// ContentRepository reads documents from the content store.
type ContentRepository interface {
	// FindByID returns ErrContentNotFound for unknown IDs.
	FindByID(ctx context.Context, id int64) (*domain.ContentItem, error)
}

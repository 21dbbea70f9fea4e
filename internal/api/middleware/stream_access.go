package middleware

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuslink/student-portal/internal/api/metrics"
	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

var (
	categoryPath = regexp.MustCompile(`^/category/(\d+)$`)
	contentPath  = regexp.MustCompile(`^/content/(\d+)$`)
)

// StreamAccess restricts category and subject-content pages to the viewer's
// own stream. It runs on every request, before the page handler.
//
// Only authenticated students are restricted; anonymous visitors and other
// roles pass through untouched. A denial is reported as a plain not-found,
// never as forbidden, so restricted pages are indistinguishable from missing
// ones. Stream references are compared by identity: both absent passes,
// absent versus set fails.
func StreamAccess(identities ports.IdentityRepository, content ports.ContentRepository, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if m := categoryPath.FindStringSubmatch(path); m != nil {
				id, _ := strconv.ParseInt(m[1], 10, 64)
				if err := checkCategory(c, identities, id, logger); err != nil {
					return err
				}
			} else if m := contentPath.FindStringSubmatch(path); m != nil {
				id, _ := strconv.ParseInt(m[1], 10, 64)
				if err := checkContent(c, identities, content, id, logger); err != nil {
					return err
				}
			}

			return next(c)
		}
	}
}

func checkCategory(c echo.Context, identities ports.IdentityRepository, categoryID int64, logger zerolog.Logger) error {
	principal := CurrentPrincipal(c)
	if !principal.HasRole(domain.RoleStudent) {
		return nil
	}

	streamID, err := viewerStream(c, identities, principal)
	if err != nil {
		return err
	}

	if !domain.StreamEqual(&categoryID, streamID) {
		logger.Info().
			Str("uid", principal.UID).
			Int64("category_id", categoryID).
			Msg("category access denied")
		metrics.AccessDenialsTotal.WithLabelValues("category").Inc()
		return domain.ErrNotFoundOverride
	}
	return nil
}

func checkContent(c echo.Context, identities ports.IdentityRepository, content ports.ContentRepository, contentID int64, logger zerolog.Logger) error {
	item, err := content.FindByID(c.Request().Context(), contentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			// Missing items fall through to the page handler's own 404.
			return nil
		}
		return fmt.Errorf("stream access: %w", err)
	}
	if item.TypeTag != domain.ContentTypeSubjects {
		return nil
	}

	principal := CurrentPrincipal(c)
	if !principal.HasRole(domain.RoleStudent) {
		return nil
	}

	streamID, err := viewerStream(c, identities, principal)
	if err != nil {
		return err
	}

	if !domain.StreamEqual(item.StreamID, streamID) {
		logger.Info().
			Str("uid", principal.UID).
			Int64("content_id", contentID).
			Msg("content access denied")
		metrics.AccessDenialsTotal.WithLabelValues("content").Inc()
		return domain.ErrNotFoundOverride
	}
	return nil
}

func viewerStream(c echo.Context, identities ports.IdentityRepository, principal *domain.Principal) (*int64, error) {
	identity, err := identities.FindByID(c.Request().Context(), principal.UID)
	if err != nil {
		return nil, fmt.Errorf("stream access: load viewer: %w", err)
	}
	return identity.StreamID, nil
}

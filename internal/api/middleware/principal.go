package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/campuslink/student-portal/internal/core/domain"
)

// principalKey is the echo context key the extracted principal lives under.
const principalKey = "principal"

// SessionCookie is the cookie carrying the session token for browser clients.
const SessionCookie = "portal_session"

// Principal extracts the authenticated principal, if any, from a bearer
// header or the session cookie and stores it in the request context. It never
// rejects: an absent or invalid token simply leaves the request anonymous.
// Downstream checks decide what anonymity means for them.
func Principal(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if p := parsePrincipal(token, jwtSecret); p != nil {
					c.Set(principalKey, p)
				}
			}
			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentPrincipal(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// CurrentPrincipal returns the principal bound to the request, or nil for
// anonymous requests.
func CurrentPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func parsePrincipal(token, jwtSecret string) *domain.Principal {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		return nil
	}
	name, _ := claims["name"].(string)

	var roles []string
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}

	return &domain.Principal{UID: uid, Name: name, Roles: roles}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
	"github.com/shopstack-asia/spi-sdb-app/internal/session"
)

const UserDataHeader = "X-User-Data"

// PublicPaths are reachable without a session. "/" matches only itself; the
// rest also cover everything beneath them.
var PublicPaths = []string{"/", "/login", "/register", "/forgot-password", "/callback", "/api/auth"}

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (service.ActiveSession, error)
}

func IsPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == p || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Gate lets public paths through, and requires a resolvable access_token
// cookie everywhere else.
func Gate(resolver SessionResolver, cookies session.CookieOptions, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if IsPublicPath(path) {
			c.Next()
			return
		}

		token, err := c.Cookie(session.AccessTokenCookie)
		if err != nil || token == "" {
			deny(c, path)
			return
		}

		active, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrNoSession) {
				log.Error().Err(err).Str("path", path).Msg("session lookup failed")
				result.Abort(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			session.ClearCookies(c, cookies)
			deny(c, path)
			return
		}

		if userData, err := c.Cookie(session.UserDataCookie); err == nil && userData != "" {
			c.Request.Header.Set(UserDataHeader, userData)
			c.Set(session.UserDataKey, userData)
		}
		session.Attach(c, active)
		c.Next()
	}
}

func deny(c *gin.Context, path string) {
	if strings.HasPrefix(path, "/api/") {
		result.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(path))
	c.Abort()
}

// Package session moves the portal session between cookies and the request context.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie = "access_token"
	UserDataCookie    = "user_data"

	// MaxAge is fixed at seven days regardless of the server side TTL.
	MaxAge = 7 * 24 * time.Hour
)

type CookieOptions struct {
	Secure bool
}

// SetCookies writes both session cookies. userData is stored as given.
func SetCookies(c *gin.Context, opts CookieOptions, token, userData string) {
	write(c, opts, AccessTokenCookie, token, int(MaxAge.Seconds()))
	write(c, opts, UserDataCookie, userData, int(MaxAge.Seconds()))
}

func ClearCookies(c *gin.Context, opts CookieOptions) {
	write(c, opts, AccessTokenCookie, "", -1)
	write(c, opts, UserDataCookie, "", -1)
}

func write(c *gin.Context, opts CookieOptions, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

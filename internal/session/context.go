package session

import (
	"github.com/gin-gonic/gin"

	"github.com/shopstack-asia/spi-sdb-app/internal/csapi"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
)

const (
	currentKey  = "current_session"
	UserDataKey = "user_data"
)

// Attach exposes the session to handlers and hands the upstream bearer
// token to the CS API client through the request context.
func Attach(c *gin.Context, active service.ActiveSession) {
	c.Set(currentKey, active)
	c.Request = c.Request.WithContext(csapi.WithAccessToken(c.Request.Context(), active.UpstreamToken))
}

func Current(c *gin.Context) (service.ActiveSession, bool) {
	v, ok := c.Get(currentKey)
	if !ok {
		return service.ActiveSession{}, false
	}
	active, ok := v.(service.ActiveSession)
	return active, ok
}

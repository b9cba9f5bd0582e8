package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

func (h HandlerSet) ListFacilities(c *gin.Context) {
	facilities, err := h.facilities.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list facilities")
		return
	}
	result.OK(c, facilities)
}

func (h HandlerSet) ListPackages(c *gin.Context) {
	packages, err := h.packages.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list packages")
		return
	}
	result.OK(c, packages)
}

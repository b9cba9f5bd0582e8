package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

type landingPage struct {
	Name     string   `json:"name"`
	Tagline  string   `json:"tagline"`
	Features []string `json:"features"`
	Login    string   `json:"login"`
	Register string   `json:"register"`
}

func (h HandlerSet) Landing(c *gin.Context) {
	result.OK(c, landingPage{
		Name:    "SDB Member Portal",
		Tagline: "Secure safe deposit box services",
		Features: []string{
			"Bank-grade vault security",
			"Private meeting and vault rooms",
			"Visitor check-in and check-out",
		},
		Login:    "/login",
		Register: "/register",
	})
}

// Dashboard backs the /member page.
func (h HandlerSet) Dashboard(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	dashboard, err := h.members.Dashboard(c.Request.Context(), active.Profile)
	if err != nil {
		h.fail(c, err, "dashboard")
		return
	}
	result.OK(c, dashboard)
}

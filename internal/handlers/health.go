package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	Environment string            `json:"environment"`
}

// Health pings every registered backend. A failing backend marks the report
// degraded; the status code stays 200.
func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names)), Environment: h.cfg.Environment}
	for _, name := range names {
		status := "ok"
		if err := h.checks[name].Ping(ctx); err != nil {
			status = "error"
			resp.Status = "degraded"
			h.log.Error().Err(err).Str("backend", name).Msg("health ping failed")
		}
		resp.Checks[name] = status
	}

	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
)

// memberParam answers 404 for any id other than the caller's own.
func memberParam(c *gin.Context, active service.ActiveSession) (string, bool) {
	id := c.Param("id")
	if id != active.MemberID {
		result.Fail(c, repository.ErrMemberNotFound)
		return "", false
	}
	return id, true
}

func (h HandlerSet) GetMember(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := memberParam(c, active)
	if !ok {
		return
	}

	member, err := h.members.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get member")
		return
	}
	result.OK(c, member)
}

func (h HandlerSet) UpdateMember(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := memberParam(c, active)
	if !ok {
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}
	member, err := h.members.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err, "update member")
		return
	}
	result.OKWithMessage(c, "Member updated successfully", member)
}

func (h HandlerSet) ListSubscriptions(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	subs, err := h.members.Subscriptions(c.Request.Context(), active.MemberID)
	if err != nil {
		h.fail(c, err, "list subscriptions")
		return
	}
	result.OK(c, subs)
}

func (h HandlerSet) CreateSubscription(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	var input service.SubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}

	sub, err := h.members.Subscribe(c.Request.Context(), active.MemberID, input)
	if err != nil {
		h.fail(c, err, "create subscription")
		return
	}
	h.log.Info().Str("member_id", active.MemberID).Str("package_id", sub.PackageID).Msg("subscription created")
	result.Created(c, sub)
}

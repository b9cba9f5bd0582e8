package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
)

func (h HandlerSet) ListPayments(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	filter := service.PaymentFilter{
		Query:  c.Query("q"),
		Status: models.PaymentStatus(strings.ToUpper(c.Query("status"))),
		Method: models.PaymentMethod(strings.ToUpper(c.Query("method"))),
	}
	summary, err := h.payments.List(c.Request.Context(), active.MemberID, filter)
	if err != nil {
		h.fail(c, err, "list payments")
		return
	}
	result.OK(c, summary)
}

func (h HandlerSet) CreatePayment(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}

	payment, err := h.payments.Record(c.Request.Context(), active.MemberID, input)
	if err != nil {
		h.fail(c, err, "record payment")
		return
	}
	result.Created(c, payment)
}

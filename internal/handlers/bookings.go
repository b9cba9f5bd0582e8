package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
)

func (h HandlerSet) ListBookings(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	bookings, err := h.bookings.List(c.Request.Context(), active.MemberID)
	if err != nil {
		h.fail(c, err, "list bookings")
		return
	}
	result.OK(c, bookings)
}

func (h HandlerSet) GetBooking(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	booking, err := h.bookings.Get(c.Request.Context(), active.MemberID, c.Param("id"))
	if err != nil {
		h.fail(c, err, "get booking")
		return
	}
	result.OK(c, booking)
}

func (h HandlerSet) CreateBooking(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	var form service.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), active.MemberID, form)
	if err != nil {
		h.fail(c, err, "create booking")
		return
	}
	result.Created(c, booking)
}

func (h HandlerSet) EstimateBooking(c *gin.Context) {
	if _, ok := requireSession(c); !ok {
		return
	}
	var input service.EstimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}

	estimate, err := h.bookings.Estimate(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "estimate booking")
		return
	}
	result.OK(c, estimate)
}

func (h HandlerSet) UpdateBookingStatus(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	var input service.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}

	booking, err := h.bookings.UpdateStatus(c.Request.Context(), active.MemberID, c.Param("id"), input)
	if err != nil {
		h.fail(c, err, "update booking")
		return
	}
	result.OKWithMessage(c, "Booking updated successfully", booking)
}

func (h HandlerSet) AddVisitor(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	var form service.VisitorForm
	if err := c.ShouldBindJSON(&form); err != nil {
		result.Fail(c, result.Validation("Invalid request body", nil))
		return
	}

	visitor, err := h.bookings.AddVisitor(c.Request.Context(), active.MemberID, c.Param("id"), form)
	if err != nil {
		h.fail(c, err, "add visitor")
		return
	}
	result.Created(c, visitor)
}

func (h HandlerSet) RemoveVisitor(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	if err := h.bookings.RemoveVisitor(c.Request.Context(), active.MemberID, c.Param("id"), c.Param("visitorId")); err != nil {
		h.fail(c, err, "remove visitor")
		return
	}
	result.OKWithMessage(c, "Visitor removed", nil)
}

func (h HandlerSet) CheckInVisitor(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	visitor, err := h.bookings.CheckIn(c.Request.Context(), active.MemberID, c.Param("id"), c.Param("visitorId"))
	if err != nil {
		h.fail(c, err, "check in visitor")
		return
	}
	result.OKWithMessage(c, "Visitor checked in", visitor)
}

func (h HandlerSet) CheckOutVisitor(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}
	visitor, err := h.bookings.CheckOut(c.Request.Context(), active.MemberID, c.Param("id"), c.Param("visitorId"))
	if err != nil {
		h.fail(c, err, "check out visitor")
		return
	}
	result.OKWithMessage(c, "Visitor checked out", visitor)
}

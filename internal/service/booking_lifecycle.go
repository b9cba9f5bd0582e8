package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

var (
	ErrInvalidTransition = result.New(result.KindConflict, "Invalid status transition")
	ErrInvalidTimeRange  = result.New(result.KindValidation, "End time must be after start time")
)

const clockLayout = "15:04"

func parseClock(value string) (time.Time, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, result.Validation("Invalid time", map[string]string{"time": fmt.Sprintf("%q is not HH:MM", value)})
	}
	return t, nil
}

// BookingHours is the same-day span between two HH:MM clock times.
func BookingHours(start, end string) (float64, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := parseClock(end)
	if err != nil {
		return 0, err
	}
	if !e.After(s) {
		return 0, ErrInvalidTimeRange
	}
	return e.Sub(s).Hours(), nil
}

// CalculateCost bills every started hour at the facility's hourly rate.
func CalculateCost(start, end string, hourlyRate float64) (float64, error) {
	hours, err := BookingHours(start, end)
	if err != nil {
		return 0, err
	}
	return math.Ceil(hours) * hourlyRate, nil
}

// CheckIn moves a PENDING visitor to CHECKED_IN. v is untouched on error.
func CheckIn(v *models.Visitor, now time.Time) error {
	if v.Status != models.VisitorStatusPending {
		return ErrInvalidTransition
	}
	at := now.UTC()
	v.CheckInTime = &at
	v.Status = models.VisitorStatusCheckedIn
	return nil
}

// CheckOut moves a CHECKED_IN visitor to CHECKED_OUT. The recorded time is
// always strictly after the check-in time.
func CheckOut(v *models.Visitor, now time.Time) error {
	if v.Status != models.VisitorStatusCheckedIn {
		return ErrInvalidTransition
	}
	at := now.UTC()
	if v.CheckInTime != nil && !at.After(*v.CheckInTime) {
		at = v.CheckInTime.Add(time.Millisecond)
	}
	v.CheckOutTime = &at
	v.Status = models.VisitorStatusCheckedOut
	return nil
}

var bookingTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

func TransitionBooking(b *models.Booking, to models.BookingStatus) error {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == to {
			b.Status = to
			return nil
		}
	}
	return ErrInvalidTransition
}

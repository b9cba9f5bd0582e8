package service

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack-asia/spi-sdb-app/internal/ids"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

var (
	ErrFacilityInactive = result.New(result.KindValidation, "Facility is not available for booking")
	ErrVisitorNotFound  = result.New(result.KindNotFound, "Visitor not found")
	ErrBookingClosed    = result.New(result.KindConflict, "Booking no longer accepts changes")
)

type BookingService struct {
	bookings   repository.BookingRepository
	facilities repository.FacilityRepository
	now        func() time.Time
	log        zerolog.Logger

	// locks holds one *sync.Mutex per member/booking pair so that
	// read-modify-write cycles on the same booking run one at a time.
	locks sync.Map
}

func NewBookingService(bookings repository.BookingRepository, facilities repository.FacilityRepository, log zerolog.Logger) *BookingService {
	return &BookingService{
		bookings:   bookings,
		facilities: facilities,
		now:        time.Now,
		log:        log,
	}
}

func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

type VisitorForm struct {
	FullName     string        `json:"full_name" validate:"required,min=2"`
	IDType       models.IDType `json:"id_type" validate:"required,oneof=PASSPORT NATIONAL_ID DRIVER_LICENSE"`
	IDNumber     string        `json:"id_number" validate:"required,min=5"`
	Relationship string        `json:"relationship" validate:"required,min=2"`
	VisitPurpose string        `json:"visit_purpose" validate:"required,min=5"`
}

type BookingForm struct {
	FacilityID  string        `json:"facility_id" validate:"required"`
	BookingDate string        `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string        `json:"start_time" validate:"required"`
	EndTime     string        `json:"end_time" validate:"required"`
	Purpose     string        `json:"purpose" validate:"required,min=5"`
	Visitors    []VisitorForm `json:"visitors" validate:"dive"`
}

type EstimateInput struct {
	FacilityID string `json:"facility_id" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
}

type Estimate struct {
	FacilityID  string  `json:"facility_id"`
	Hours       float64 `json:"hours"`
	BilledHours int     `json:"billed_hours"`
	HourlyRate  float64 `json:"hourly_rate"`
	TotalCost   float64 `json:"total_cost"`
	Currency    string  `json:"currency"`
}

func (s *BookingService) Estimate(ctx context.Context, input EstimateInput) (Estimate, error) {
	if err := validateStruct(input); err != nil {
		return Estimate{}, err
	}
	facility, err := s.bookableFacility(ctx, input.FacilityID)
	if err != nil {
		return Estimate{}, err
	}
	hours, err := BookingHours(input.StartTime, input.EndTime)
	if err != nil {
		return Estimate{}, err
	}
	cost, err := CalculateCost(input.StartTime, input.EndTime, facility.HourlyRate)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		FacilityID:  facility.ID,
		Hours:       hours,
		BilledHours: int(math.Ceil(hours)),
		HourlyRate:  facility.HourlyRate,
		TotalCost:   cost,
		Currency:    facility.Currency,
	}, nil
}

func (s *BookingService) bookableFacility(ctx context.Context, id string) (models.Facility, error) {
	facility, err := s.facilities.Get(ctx, id)
	if err != nil {
		return models.Facility{}, err
	}
	if !facility.IsActive {
		return models.Facility{}, ErrFacilityInactive
	}
	return facility, nil
}

func (s *BookingService) List(ctx context.Context, memberID string) ([]models.Booking, error) {
	return s.bookings.ListByMember(ctx, memberID)
}

func (s *BookingService) Get(ctx context.Context, memberID, id string) (models.Booking, error) {
	return s.bookings.Get(ctx, memberID, id)
}

// Create prices the booking from the facility rate and stores it as PENDING.
func (s *BookingService) Create(ctx context.Context, memberID string, form BookingForm) (models.Booking, error) {
	if err := validateStruct(form); err != nil {
		return models.Booking{}, err
	}
	facility, err := s.bookableFacility(ctx, form.FacilityID)
	if err != nil {
		return models.Booking{}, err
	}
	cost, err := CalculateCost(form.StartTime, form.EndTime, facility.HourlyRate)
	if err != nil {
		return models.Booking{}, err
	}

	now := s.now().UTC()
	booking := models.Booking{
		ID:          ids.New(),
		MemberID:    memberID,
		FacilityID:  facility.ID,
		BookingDate: form.BookingDate,
		StartTime:   form.StartTime,
		EndTime:     form.EndTime,
		Status:      models.BookingStatusPending,
		TotalCost:   cost,
		Currency:    facility.Currency,
		Purpose:     form.Purpose,
		Visitors:    make([]models.Visitor, 0, len(form.Visitors)),
		Facility:    &facility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, vf := range form.Visitors {
		booking.Visitors = append(booking.Visitors, newVisitor(booking.ID, vf))
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return models.Booking{}, err
	}
	s.log.Info().Str("booking_id", created.ID).Str("member_id", memberID).Float64("total_cost", cost).Msg("booking created")
	return created, nil
}

func newVisitor(bookingID string, vf VisitorForm) models.Visitor {
	return models.Visitor{
		ID:           ids.New(),
		BookingID:    bookingID,
		FullName:     vf.FullName,
		IDType:       vf.IDType,
		IDNumber:     vf.IDNumber,
		Relationship: vf.Relationship,
		VisitPurpose: vf.VisitPurpose,
		Status:       models.VisitorStatusPending,
	}
}

type StatusInput struct {
	Status models.BookingStatus `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
}

func (s *BookingService) UpdateStatus(ctx context.Context, memberID, id string, input StatusInput) (models.Booking, error) {
	if err := validateStruct(input); err != nil {
		return models.Booking{}, err
	}
	return s.mutate(ctx, memberID, id, func(b *models.Booking) error {
		return TransitionBooking(b, input.Status)
	})
}

func (s *BookingService) AddVisitor(ctx context.Context, memberID, bookingID string, form VisitorForm) (models.Visitor, error) {
	if err := validateStruct(form); err != nil {
		return models.Visitor{}, err
	}
	visitor := newVisitor(bookingID, form)
	_, err := s.mutate(ctx, memberID, bookingID, func(b *models.Booking) error {
		if !acceptsVisitors(b) {
			return ErrBookingClosed
		}
		b.Visitors = append(b.Visitors, visitor)
		return nil
	})
	if err != nil {
		return models.Visitor{}, err
	}
	return visitor, nil
}

// RemoveVisitor only drops visitors who have not arrived yet.
func (s *BookingService) RemoveVisitor(ctx context.Context, memberID, bookingID, visitorID string) error {
	_, err := s.mutate(ctx, memberID, bookingID, func(b *models.Booking) error {
		for i, v := range b.Visitors {
			if v.ID != visitorID {
				continue
			}
			if v.Status != models.VisitorStatusPending {
				return ErrInvalidTransition
			}
			b.Visitors = append(b.Visitors[:i], b.Visitors[i+1:]...)
			return nil
		}
		return ErrVisitorNotFound
	})
	return err
}

func (s *BookingService) CheckIn(ctx context.Context, memberID, bookingID, visitorID string) (models.Visitor, error) {
	return s.moveVisitor(ctx, memberID, bookingID, visitorID, CheckIn)
}

func (s *BookingService) CheckOut(ctx context.Context, memberID, bookingID, visitorID string) (models.Visitor, error) {
	return s.moveVisitor(ctx, memberID, bookingID, visitorID, CheckOut)
}

func (s *BookingService) moveVisitor(ctx context.Context, memberID, bookingID, visitorID string, step func(*models.Visitor, time.Time) error) (models.Visitor, error) {
	var moved models.Visitor
	_, err := s.mutate(ctx, memberID, bookingID, func(b *models.Booking) error {
		v, ok := b.Visitor(visitorID)
		if !ok {
			return ErrVisitorNotFound
		}
		if err := step(v, s.now()); err != nil {
			return err
		}
		moved = *v
		return nil
	})
	if err != nil {
		return models.Visitor{}, err
	}
	s.log.Info().Str("booking_id", bookingID).Str("visitor_id", visitorID).Str("status", string(moved.Status)).Msg("visitor status changed")
	return moved, nil
}

// mutate loads a booking, applies fn to a private copy and persists it only
// when fn succeeds. Calls for the same booking are serialized.
func (s *BookingService) mutate(ctx context.Context, memberID, id string, fn func(*models.Booking) error) (models.Booking, error) {
	unlock := s.lockBooking(memberID, id)
	defer unlock()

	booking, err := s.bookings.Get(ctx, memberID, id)
	if err != nil {
		return models.Booking{}, err
	}
	working := booking.Clone()
	if err := fn(&working); err != nil {
		return models.Booking{}, err
	}
	working.UpdatedAt = s.now().UTC()
	return s.bookings.Update(ctx, working)
}

func (s *BookingService) lockBooking(memberID, id string) func() {
	m, _ := s.locks.LoadOrStore(memberID+"/"+id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func acceptsVisitors(b *models.Booking) bool {
	return b.Status == models.BookingStatusPending || b.Status == models.BookingStatusConfirmed
}

package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

const dateLayout = "2006-01-02"

var ErrEmptyUpdate = result.New(result.KindValidation, "No fields to update")

type MemberService struct {
	members       repository.MemberRepository
	packages      repository.PackageRepository
	subscriptions repository.SubscriptionRepository
	bookings      repository.BookingRepository
	now           func() time.Time
}

func NewMemberService(
	members repository.MemberRepository,
	packages repository.PackageRepository,
	subscriptions repository.SubscriptionRepository,
	bookings repository.BookingRepository,
) *MemberService {
	return &MemberService{
		members:       members,
		packages:      packages,
		subscriptions: subscriptions,
		bookings:      bookings,
		now:           time.Now,
	}
}

func (s *MemberService) WithClock(now func() time.Time) *MemberService {
	s.now = now
	return s
}

func (s *MemberService) Get(ctx context.Context, id string) (models.Member, error) {
	return s.members.Get(ctx, id)
}

func (s *MemberService) Update(ctx context.Context, id string, patch map[string]any) (models.Member, error) {
	if len(patch) == 0 {
		return models.Member{}, ErrEmptyUpdate
	}
	return s.members.Update(ctx, id, patch)
}

func (s *MemberService) Subscriptions(ctx context.Context, memberID string) ([]models.Subscription, error) {
	return s.subscriptions.ListByMember(ctx, memberID)
}

type SubscribeInput struct {
	PackageID string `json:"package_id" validate:"required"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	AutoRenew bool   `json:"auto_renew"`
}

// Subscribe starts a package today (or on StartDate) for its full duration.
func (s *MemberService) Subscribe(ctx context.Context, memberID string, input SubscribeInput) (models.Subscription, error) {
	if err := validateStruct(input); err != nil {
		return models.Subscription{}, err
	}
	pkg, err := s.packages.Get(ctx, input.PackageID)
	if err != nil {
		return models.Subscription{}, err
	}
	if !pkg.IsActive {
		return models.Subscription{}, result.New(result.KindValidation, "Package is not available")
	}

	start := s.now().UTC()
	if input.StartDate != "" {
		start, _ = time.Parse(dateLayout, input.StartDate)
	}
	sub := models.Subscription{
		MemberID:  memberID,
		PackageID: pkg.ID,
		StartDate: start.Format(dateLayout),
		EndDate:   start.AddDate(0, pkg.DurationMonths, 0).Format(dateLayout),
		Status:    models.SubscriptionStatusActive,
		AutoRenew: input.AutoRenew,
		Package:   &pkg,
	}
	return s.subscriptions.Create(ctx, sub)
}

type Dashboard struct {
	Profile            models.Profile       `json:"profile"`
	ActiveSubscription *models.Subscription `json:"active_subscription"`
	UpcomingBookings   []models.Booking     `json:"upcoming_bookings"`
	NextPayment        *NextPayment         `json:"next_payment"`
}

type NextPayment struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	DueDate  string  `json:"due_date"`
}

// Dashboard summarizes the member's active subscription and the bookings
// dated today or later that are still open.
func (s *MemberService) Dashboard(ctx context.Context, profile models.Profile) (Dashboard, error) {
	subs, err := s.subscriptions.ListByMember(ctx, profile.ID)
	if err != nil {
		return Dashboard{}, err
	}
	bookings, err := s.bookings.ListByMember(ctx, profile.ID)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{Profile: profile, UpcomingBookings: []models.Booking{}}
	for i := range subs {
		if subs[i].Status == models.SubscriptionStatusActive {
			d.ActiveSubscription = &subs[i]
			break
		}
	}
	if sub := d.ActiveSubscription; sub != nil && sub.Package != nil {
		d.NextPayment = &NextPayment{Amount: sub.Package.Price, Currency: sub.Package.Currency, DueDate: sub.EndDate}
	}

	today := s.now().UTC().Format(dateLayout)
	for _, b := range bookings {
		if b.BookingDate >= today && (b.Status == models.BookingStatusPending || b.Status == models.BookingStatusConfirmed) {
			d.UpcomingBookings = append(d.UpcomingBookings, b)
		}
	}
	sort.Slice(d.UpcomingBookings, func(i, j int) bool {
		a, b := d.UpcomingBookings[i], d.UpcomingBookings[j]
		if a.BookingDate != b.BookingDate {
			return a.BookingDate < b.BookingDate
		}
		return a.StartTime < b.StartTime
	})
	return d, nil
}

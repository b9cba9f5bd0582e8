package repository

import (
	"context"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

var (
	ErrFacilityNotFound = result.New(result.KindNotFound, "Facility not found")
	ErrPackageNotFound  = result.New(result.KindNotFound, "Package not found")
	ErrMemberNotFound   = result.New(result.KindNotFound, "Member not found")
	ErrBookingNotFound  = result.New(result.KindNotFound, "Booking not found")
)

type FacilityRepository interface {
	List(ctx context.Context) ([]models.Facility, error)
	Get(ctx context.Context, id string) (models.Facility, error)
}

type PackageRepository interface {
	List(ctx context.Context) ([]models.Package, error)
	Get(ctx context.Context, id string) (models.Package, error)
}

type MemberRepository interface {
	Get(ctx context.Context, id string) (models.Member, error)
	Update(ctx context.Context, id string, patch map[string]any) (models.Member, error)
}

type SubscriptionRepository interface {
	ListByMember(ctx context.Context, memberID string) ([]models.Subscription, error)
	Create(ctx context.Context, sub models.Subscription) (models.Subscription, error)
}

type BookingRepository interface {
	ListByMember(ctx context.Context, memberID string) ([]models.Booking, error)
	Get(ctx context.Context, memberID, id string) (models.Booking, error)
	Create(ctx context.Context, booking models.Booking) (models.Booking, error)
	Update(ctx context.Context, booking models.Booking) (models.Booking, error)
}

type PaymentRepository interface {
	ListByMember(ctx context.Context, memberID string) ([]models.Payment, error)
	Create(ctx context.Context, payment models.Payment) (models.Payment, error)
}

type KYCRepository interface {
	Create(ctx context.Context, record models.KYCRecord) (models.KYCRecord, error)
}

func findByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

package repository

import (
	"context"

	"github.com/shopstack-asia/spi-sdb-app/internal/csapi"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
)

// Upstream repositories forward to the CS API. The caller's context must
// carry the member's bearer token.

type UpstreamFacilityRepository struct{ client *csapi.Client }

func NewUpstreamFacilityRepository(client *csapi.Client) *UpstreamFacilityRepository {
	return &UpstreamFacilityRepository{client: client}
}

func (r *UpstreamFacilityRepository) List(ctx context.Context) ([]models.Facility, error) {
	return r.client.GetFacilities(ctx)
}

func (r *UpstreamFacilityRepository) Get(ctx context.Context, id string) (models.Facility, error) {
	list, err := r.client.GetFacilities(ctx)
	if err != nil {
		return models.Facility{}, err
	}
	f, ok := findByID(list, id, func(f models.Facility) string { return f.ID })
	if !ok {
		return models.Facility{}, ErrFacilityNotFound
	}
	return f, nil
}

type UpstreamPackageRepository struct{ client *csapi.Client }

func NewUpstreamPackageRepository(client *csapi.Client) *UpstreamPackageRepository {
	return &UpstreamPackageRepository{client: client}
}

func (r *UpstreamPackageRepository) List(ctx context.Context) ([]models.Package, error) {
	return r.client.GetPackages(ctx)
}

func (r *UpstreamPackageRepository) Get(ctx context.Context, id string) (models.Package, error) {
	list, err := r.client.GetPackages(ctx)
	if err != nil {
		return models.Package{}, err
	}
	p, ok := findByID(list, id, func(p models.Package) string { return p.ID })
	if !ok {
		return models.Package{}, ErrPackageNotFound
	}
	return p, nil
}

type UpstreamMemberRepository struct{ client *csapi.Client }

func NewUpstreamMemberRepository(client *csapi.Client) *UpstreamMemberRepository {
	return &UpstreamMemberRepository{client: client}
}

func (r *UpstreamMemberRepository) Get(ctx context.Context, id string) (models.Member, error) {
	return r.client.GetMember(ctx, id)
}

func (r *UpstreamMemberRepository) Update(ctx context.Context, id string, patch map[string]any) (models.Member, error) {
	return r.client.UpdateMember(ctx, id, patch)
}

type UpstreamSubscriptionRepository struct{ client *csapi.Client }

func NewUpstreamSubscriptionRepository(client *csapi.Client) *UpstreamSubscriptionRepository {
	return &UpstreamSubscriptionRepository{client: client}
}

func (r *UpstreamSubscriptionRepository) ListByMember(ctx context.Context, memberID string) ([]models.Subscription, error) {
	return r.client.GetSubscriptions(ctx, memberID)
}

func (r *UpstreamSubscriptionRepository) Create(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	return r.client.CreateSubscription(ctx, sub)
}

type UpstreamBookingRepository struct{ client *csapi.Client }

func NewUpstreamBookingRepository(client *csapi.Client) *UpstreamBookingRepository {
	return &UpstreamBookingRepository{client: client}
}

func (r *UpstreamBookingRepository) ListByMember(ctx context.Context, memberID string) ([]models.Booking, error) {
	return r.client.GetBookings(ctx, memberID)
}

// Get filters the member's list; the CS API has no single-booking read.
func (r *UpstreamBookingRepository) Get(ctx context.Context, memberID, id string) (models.Booking, error) {
	list, err := r.client.GetBookings(ctx, memberID)
	if err != nil {
		return models.Booking{}, err
	}
	b, ok := findByID(list, id, func(b models.Booking) string { return b.ID })
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (r *UpstreamBookingRepository) Create(ctx context.Context, booking models.Booking) (models.Booking, error) {
	return r.client.CreateBooking(ctx, booking)
}

func (r *UpstreamBookingRepository) Update(ctx context.Context, booking models.Booking) (models.Booking, error) {
	return r.client.UpdateBooking(ctx, booking.ID, booking)
}

type UpstreamPaymentRepository struct{ client *csapi.Client }

func NewUpstreamPaymentRepository(client *csapi.Client) *UpstreamPaymentRepository {
	return &UpstreamPaymentRepository{client: client}
}

func (r *UpstreamPaymentRepository) ListByMember(ctx context.Context, memberID string) ([]models.Payment, error) {
	return r.client.GetPayments(ctx, memberID)
}

func (r *UpstreamPaymentRepository) Create(ctx context.Context, payment models.Payment) (models.Payment, error) {
	return r.client.CreatePayment(ctx, payment)
}

type UpstreamKYCRepository struct{ client *csapi.Client }

func NewUpstreamKYCRepository(client *csapi.Client) *UpstreamKYCRepository {
	return &UpstreamKYCRepository{client: client}
}

func (r *UpstreamKYCRepository) Create(ctx context.Context, record models.KYCRecord) (models.KYCRecord, error) {
	return r.client.SubmitKYC(ctx, record)
}

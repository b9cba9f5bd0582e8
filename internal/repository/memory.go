package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/shopstack-asia/spi-sdb-app/internal/ids"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

type MemoryFacilityRepository struct {
	items []models.Facility
}

func NewMemoryFacilityRepository(items []models.Facility) *MemoryFacilityRepository {
	return &MemoryFacilityRepository{items: items}
}

func (r *MemoryFacilityRepository) List(context.Context) ([]models.Facility, error) {
	return append([]models.Facility(nil), r.items...), nil
}

func (r *MemoryFacilityRepository) Get(_ context.Context, id string) (models.Facility, error) {
	f, ok := findByID(r.items, id, func(f models.Facility) string { return f.ID })
	if !ok {
		return models.Facility{}, ErrFacilityNotFound
	}
	return f, nil
}

type MemoryPackageRepository struct {
	items []models.Package
}

func NewMemoryPackageRepository(items []models.Package) *MemoryPackageRepository {
	return &MemoryPackageRepository{items: items}
}

func (r *MemoryPackageRepository) List(context.Context) ([]models.Package, error) {
	return append([]models.Package(nil), r.items...), nil
}

func (r *MemoryPackageRepository) Get(_ context.Context, id string) (models.Package, error) {
	p, ok := findByID(r.items, id, func(p models.Package) string { return p.ID })
	if !ok {
		return models.Package{}, ErrPackageNotFound
	}
	return p, nil
}

// MemoryMemberRepository hands out the demo member for any id it has not seen.
type MemoryMemberRepository struct {
	mu      sync.Mutex
	members map[string]models.Member
}

func NewMemoryMemberRepository() *MemoryMemberRepository {
	return &MemoryMemberRepository{members: make(map[string]models.Member)}
}

func (r *MemoryMemberRepository) Get(_ context.Context, id string) (models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(id), nil
}

func (r *MemoryMemberRepository) Update(_ context.Context, id string, patch map[string]any) (models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated, err := applyMemberPatch(r.load(id), patch)
	if err != nil {
		return models.Member{}, err
	}
	r.members[id] = updated
	return updated, nil
}

func (r *MemoryMemberRepository) load(id string) models.Member {
	m, ok := r.members[id]
	if !ok {
		m = SeedMember(id)
		r.members[id] = m
	}
	return m
}

func applyMemberPatch(m models.Member, patch map[string]any) (models.Member, error) {
	base, err := json.Marshal(m)
	if err != nil {
		return models.Member{}, result.Wrap(result.KindInternal, "encode member", err)
	}
	merged := map[string]any{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return models.Member{}, result.Wrap(result.KindInternal, "decode member", err)
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		merged[k] = v
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return models.Member{}, result.Wrap(result.KindInternal, "encode member", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var out models.Member
	if err := dec.Decode(&out); err != nil {
		return models.Member{}, result.Validation("Invalid member update", map[string]string{"body": err.Error()})
	}
	out.ID = m.ID
	return out, nil
}

// memberScoped keeps per-member records, seeding a member's list on first use.
type memberScoped[T any] struct {
	mu    sync.Mutex
	seed  func(memberID string) []T
	items map[string][]T
}

func newMemberScoped[T any](seed func(string) []T) *memberScoped[T] {
	if seed == nil {
		seed = func(string) []T { return nil }
	}
	return &memberScoped[T]{seed: seed, items: make(map[string][]T)}
}

// load must be called with mu held.
func (s *memberScoped[T]) load(memberID string) []T {
	list, ok := s.items[memberID]
	if !ok {
		list = s.seed(memberID)
		s.items[memberID] = list
	}
	return list
}

type MemorySubscriptionRepository struct {
	store *memberScoped[models.Subscription]
}

func NewMemorySubscriptionRepository(seed func(string) []models.Subscription) *MemorySubscriptionRepository {
	return &MemorySubscriptionRepository{store: newMemberScoped(seed)}
}

func (r *MemorySubscriptionRepository) ListByMember(_ context.Context, memberID string) ([]models.Subscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]models.Subscription(nil), r.store.load(memberID)...), nil
}

func (r *MemorySubscriptionRepository) Create(_ context.Context, sub models.Subscription) (models.Subscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if sub.ID == "" {
		sub.ID = ids.New()
	}
	r.store.items[sub.MemberID] = append(r.store.load(sub.MemberID), sub)
	return sub, nil
}

type MemoryBookingRepository struct {
	store *memberScoped[models.Booking]
}

func NewMemoryBookingRepository(seed func(string) []models.Booking) *MemoryBookingRepository {
	return &MemoryBookingRepository{store: newMemberScoped(seed)}
}

func (r *MemoryBookingRepository) ListByMember(_ context.Context, memberID string) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	list := r.store.load(memberID)
	out := make([]models.Booking, 0, len(list))
	for _, b := range list {
		out = append(out, b.Clone())
	}
	return out, nil
}

func (r *MemoryBookingRepository) Get(_ context.Context, memberID, id string) (models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := findByID(r.store.load(memberID), id, func(b models.Booking) string { return b.ID })
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking models.Booking) (models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if booking.ID == "" {
		booking.ID = ids.New()
	}
	r.store.items[booking.MemberID] = append(r.store.load(booking.MemberID), booking.Clone())
	return booking, nil
}

func (r *MemoryBookingRepository) Update(_ context.Context, booking models.Booking) (models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	list := r.store.load(booking.MemberID)
	for i := range list {
		if list[i].ID == booking.ID {
			list[i] = booking.Clone()
			return booking, nil
		}
	}
	return models.Booking{}, ErrBookingNotFound
}

type MemoryPaymentRepository struct {
	store *memberScoped[models.Payment]
}

func NewMemoryPaymentRepository(seed func(string) []models.Payment) *MemoryPaymentRepository {
	return &MemoryPaymentRepository{store: newMemberScoped(seed)}
}

func (r *MemoryPaymentRepository) ListByMember(_ context.Context, memberID string) ([]models.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]models.Payment(nil), r.store.load(memberID)...), nil
}

func (r *MemoryPaymentRepository) Create(_ context.Context, payment models.Payment) (models.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if payment.ID == "" {
		payment.ID = ids.New()
	}
	r.store.items[payment.MemberID] = append(r.store.load(payment.MemberID), payment)
	return payment, nil
}

type MemoryKYCRepository struct {
	store *memberScoped[models.KYCRecord]
}

func NewMemoryKYCRepository() *MemoryKYCRepository {
	return &MemoryKYCRepository{store: newMemberScoped[models.KYCRecord](nil)}
}

func (r *MemoryKYCRepository) Create(_ context.Context, record models.KYCRecord) (models.KYCRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if record.ID == "" {
		record.ID = ids.New()
	}
	r.store.items[record.MemberID] = append(r.store.load(record.MemberID), record)
	return record, nil
}

func (r *MemoryKYCRepository) ListByMember(_ context.Context, memberID string) ([]models.KYCRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]models.KYCRecord(nil), r.store.load(memberID)...), nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
)

type PaymentService struct {
	payments repository.PaymentRepository
	now      func() time.Time
}

func NewPaymentService(payments repository.PaymentRepository) *PaymentService {
	return &PaymentService{payments: payments, now: time.Now}
}

type PaymentFilter struct {
	Query  string
	Status models.PaymentStatus
	Method models.PaymentMethod
}

type PaymentSummary struct {
	Payments       []models.Payment `json:"payments"`
	CompletedTotal float64          `json:"completed_total"`
	PendingTotal   float64          `json:"pending_total"`
}

// List applies filter to the member's payments. Totals always cover the
// whole history, not just the filtered rows.
func (s *PaymentService) List(ctx context.Context, memberID string, filter PaymentFilter) (PaymentSummary, error) {
	all, err := s.payments.ListByMember(ctx, memberID)
	if err != nil {
		return PaymentSummary{}, err
	}

	summary := PaymentSummary{Payments: []models.Payment{}}
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, p := range all {
		switch p.Status {
		case models.PaymentStatusCompleted:
			summary.CompletedTotal += p.Amount
		case models.PaymentStatusPending:
			summary.PendingTotal += p.Amount
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(p.TransactionID), query) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Method != "" && p.PaymentMethod != filter.Method {
			continue
		}
		summary.Payments = append(summary.Payments, p)
	}
	return summary, nil
}

type PaymentInput struct {
	Amount         float64              `json:"amount" validate:"gt=0"`
	Currency       string               `json:"currency" validate:"omitempty,len=3"`
	PaymentMethod  models.PaymentMethod `json:"payment_method" validate:"required,oneof=CREDIT_CARD BANK_TRANSFER CASH"`
	SubscriptionID string               `json:"subscription_id"`
	BookingID      string               `json:"booking_id"`
	Description    string               `json:"description" validate:"required,min=3"`
}

// Record stores a PENDING payment. Nothing is charged.
func (s *PaymentService) Record(ctx context.Context, memberID string, input PaymentInput) (models.Payment, error) {
	if err := validateStruct(input); err != nil {
		return models.Payment{}, err
	}
	currency := input.Currency
	if currency == "" {
		currency = "THB"
	}
	return s.payments.Create(ctx, models.Payment{
		MemberID:       memberID,
		SubscriptionID: input.SubscriptionID,
		BookingID:      input.BookingID,
		Amount:         input.Amount,
		Currency:       currency,
		PaymentMethod:  input.PaymentMethod,
		Status:         models.PaymentStatusPending,
		PaymentDate:    s.now().UTC().Format(dateLayout),
		Description:    input.Description,
	})
}

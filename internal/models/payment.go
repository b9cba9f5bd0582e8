package models

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID             string        `json:"id"`
	MemberID       string        `json:"member_id"`
	SubscriptionID string        `json:"subscription_id,omitempty"`
	BookingID      string        `json:"booking_id,omitempty"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Status         PaymentStatus `json:"status"`
	TransactionID  string        `json:"transaction_id,omitempty"`
	PaymentDate    string        `json:"payment_date"`
	Description    string        `json:"description"`
}

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "PENDING"
	VerificationStatusVerified VerificationStatus = "VERIFIED"
	VerificationStatusRejected VerificationStatus = "REJECTED"
)

type KYCRecord struct {
	ID                 string             `json:"id"`
	MemberID           string             `json:"member_id"`
	DocumentType       IDType             `json:"document_type"`
	DocumentNumber     string             `json:"document_number"`
	DocumentImageURL   string             `json:"document_image_url"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	SubmittedAt        string             `json:"submitted_at"`
	VerifiedAt         string             `json:"verified_at,omitempty"`
	Notes              string             `json:"notes,omitempty"`
}

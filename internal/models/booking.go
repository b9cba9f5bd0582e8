package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type VisitorStatus string

const (
	VisitorStatusPending    VisitorStatus = "PENDING"
	VisitorStatusCheckedIn  VisitorStatus = "CHECKED_IN"
	VisitorStatusCheckedOut VisitorStatus = "CHECKED_OUT"
)

type IDType string

const (
	IDTypePassport      IDType = "PASSPORT"
	IDTypeNationalID    IDType = "NATIONAL_ID"
	IDTypeDriverLicense IDType = "DRIVER_LICENSE"
)

// Booking times are wall clock "HH:MM" values on BookingDate ("YYYY-MM-DD").
type Booking struct {
	ID          string        `json:"id"`
	MemberID    string        `json:"member_id"`
	FacilityID  string        `json:"facility_id"`
	BookingDate string        `json:"booking_date"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Status      BookingStatus `json:"status"`
	TotalCost   float64       `json:"total_cost"`
	Currency    string        `json:"currency"`
	Purpose     string        `json:"purpose"`
	Visitors    []Visitor     `json:"visitors"`
	Facility    *Facility     `json:"facility,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (b *Booking) Visitor(id string) (*Visitor, bool) {
	for i := range b.Visitors {
		if b.Visitors[i].ID == id {
			return &b.Visitors[i], true
		}
	}
	return nil, false
}

// Clone copies the visitor slice so callers can mutate the result freely.
func (b Booking) Clone() Booking {
	if b.Visitors != nil {
		b.Visitors = append([]Visitor(nil), b.Visitors...)
	}
	if b.Facility != nil {
		f := *b.Facility
		b.Facility = &f
	}
	return b
}

type Visitor struct {
	ID           string        `json:"id"`
	BookingID    string        `json:"booking_id"`
	FullName     string        `json:"full_name"`
	IDType       IDType        `json:"id_type"`
	IDNumber     string        `json:"id_number"`
	Relationship string        `json:"relationship"`
	VisitPurpose string        `json:"visit_purpose"`
	CheckInTime  *time.Time    `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time    `json:"check_out_time,omitempty"`
	Status       VisitorStatus `json:"status"`
}

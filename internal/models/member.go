package models

type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "ACTIVE"
	MemberStatusInactive  MemberStatus = "INACTIVE"
	MemberStatusSuspended MemberStatus = "SUSPENDED"
)

type Member struct {
	ID               string       `json:"id"`
	MemberType       MemberType   `json:"member_type"`
	MemberLevel      MemberLevel  `json:"member_level"`
	NationalID       string       `json:"national_id"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	Address          string       `json:"address"`
	City             string       `json:"city"`
	Country          string       `json:"country"`
	PostalCode       string       `json:"postal_code"`
	DateOfBirth      string       `json:"date_of_birth,omitempty"`
	Occupation       string       `json:"occupation,omitempty"`
	CompanyName      string       `json:"company_name,omitempty"`
	RegistrationDate string       `json:"registration_date"`
	Status           MemberStatus `json:"status"`
	ExpiryDate       string       `json:"expiry_date,omitempty"`
}

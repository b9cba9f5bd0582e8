package models

import "time"

type MemberType string

const (
	MemberTypeIndividual MemberType = "INDIVIDUAL"
	MemberTypeCorporate  MemberType = "CORPORATE"
)

type MemberLevel string

const (
	MemberLevelBasic   MemberLevel = "BASIC"
	MemberLevelPremium MemberLevel = "PREMIUM"
	MemberLevelVIP     MemberLevel = "VIP"
)

// Profile is the signed-in member as the CS API describes them at login.
type Profile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	MemberType  MemberType  `json:"member_type"`
	MemberLevel MemberLevel `json:"member_level"`
	IsVerified  bool        `json:"is_verified"`
}

// Session is the server side half of a login. The cookie only carries ID.
type Session struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"member_id"`
	SealedToken string    `json:"sealed_token"`
	Profile     Profile   `json:"profile"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

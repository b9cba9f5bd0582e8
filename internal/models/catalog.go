package models

type FacilityType string

const (
	FacilityTypeMeetingRoom    FacilityType = "MEETING_ROOM"
	FacilityTypeVaultRoom      FacilityType = "VAULT_ROOM"
	FacilityTypeConferenceRoom FacilityType = "CONFERENCE_ROOM"
)

type Facility struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        FacilityType `json:"type"`
	Capacity    int          `json:"capacity"`
	Description string       `json:"description"`
	HourlyRate  float64      `json:"hourly_rate"`
	Currency    string       `json:"currency"`
	IsActive    bool         `json:"is_active"`
}

// Unlimited marks a package allowance without a cap.
const Unlimited = -1

type Package struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	DurationMonths  int      `json:"duration_months"`
	Features        []string `json:"features"`
	MaxMeetingHours *int     `json:"max_meeting_hours,omitempty"`
	MaxVaultAccess  *int     `json:"max_vault_access,omitempty"`
	IsActive        bool     `json:"is_active"`
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

type Subscription struct {
	ID        string             `json:"id"`
	MemberID  string             `json:"member_id"`
	PackageID string             `json:"package_id"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Status    SubscriptionStatus `json:"status"`
	AutoRenew bool               `json:"auto_renew"`
	Package   *Package           `json:"package,omitempty"`
}

package repository

import (
	"time"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
)

func intPtr(v int) *int { return &v }

// SeedFacilities is the facility catalogue served when no CS API is wired.
func SeedFacilities() []models.Facility {
	return []models.Facility{
		{
			ID:          "1",
			Name:        "Executive Meeting Room",
			Type:        models.FacilityTypeMeetingRoom,
			Capacity:    8,
			Description: "Premium meeting room with AV equipment and presentation tools",
			HourlyRate:  1000,
			Currency:    "THB",
			IsActive:    true,
		},
		{
			ID:          "2",
			Name:        "Conference Room A",
			Type:        models.FacilityTypeConferenceRoom,
			Capacity:    20,
			Description: "Large conference room for business meetings and presentations",
			HourlyRate:  1500,
			Currency:    "THB",
			IsActive:    true,
		},
		{
			ID:          "3",
			Name:        "Private Vault Room",
			Type:        models.FacilityTypeVaultRoom,
			Capacity:    4,
			Description: "Private room for accessing your safe deposit box",
			HourlyRate:  500,
			Currency:    "THB",
			IsActive:    true,
		},
	}
}

func SeedPackages() []models.Package {
	return []models.Package{
		{
			ID:              "1",
			Name:            "Basic Vault Package",
			Description:     "Essential safe deposit box access with basic amenities",
			Price:           25000,
			Currency:        "THB",
			DurationMonths:  12,
			Features:        []string{"Safe deposit box access", "2 meeting room hours/month", "Basic support"},
			MaxMeetingHours: intPtr(2),
			MaxVaultAccess:  intPtr(12),
			IsActive:        true,
		},
		{
			ID:              "2",
			Name:            "Premium Vault Package",
			Description:     "Premium safe deposit box with enhanced services and meeting room access",
			Price:           50000,
			Currency:        "THB",
			DurationMonths:  12,
			Features:        []string{"Safe deposit box access", "8 meeting room hours/month", "Priority support", "Concierge service"},
			MaxMeetingHours: intPtr(8),
			MaxVaultAccess:  intPtr(24),
			IsActive:        true,
		},
		{
			ID:              "3",
			Name:            "VIP Vault Package",
			Description:     "Exclusive VIP package with unlimited access and premium services",
			Price:           100000,
			Currency:        "THB",
			DurationMonths:  12,
			Features:        []string{"Safe deposit box access", "Unlimited meeting room hours", "VIP support", "Personal concierge", "Priority booking"},
			MaxMeetingHours: intPtr(models.Unlimited),
			MaxVaultAccess:  intPtr(models.Unlimited),
			IsActive:        true,
		},
	}
}

// SeedMember returns the demo member record under the given id.
func SeedMember(id string) models.Member {
	return models.Member{
		ID:               id,
		MemberType:       models.MemberTypeIndividual,
		MemberLevel:      models.MemberLevelPremium,
		NationalID:       "1234567890123",
		FirstName:        "John",
		LastName:         "Doe",
		Email:            "john.doe@example.com",
		Phone:            "+66 123 456 789",
		Address:          "123 Sukhumvit Road, Bangkok",
		City:             "Bangkok",
		Country:          "Thailand",
		PostalCode:       "10110",
		RegistrationDate: "2024-01-15",
		Status:           models.MemberStatusActive,
		ExpiryDate:       "2025-01-15",
	}
}

func SeedSubscriptions(memberID string) []models.Subscription {
	pkg := SeedPackages()[1]
	return []models.Subscription{{
		ID:        "1",
		MemberID:  memberID,
		PackageID: pkg.ID,
		StartDate: "2024-01-15",
		EndDate:   "2025-01-15",
		Status:    models.SubscriptionStatusActive,
		AutoRenew: true,
		Package:   &pkg,
	}}
}

func SeedBookings(memberID string) []models.Booking {
	at := func(s string) *time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return &t
	}
	created, _ := time.Parse(time.RFC3339, "2024-12-01T10:00:00Z")
	facility := SeedFacilities()[0]

	return []models.Booking{{
		ID:          "1",
		MemberID:    memberID,
		FacilityID:  facility.ID,
		BookingDate: "2024-12-15",
		StartTime:   "09:00",
		EndTime:     "11:00",
		Status:      models.BookingStatusConfirmed,
		TotalCost:   2000,
		Currency:    "THB",
		Purpose:     "Business meeting with international clients",
		Visitors: []models.Visitor{
			{
				ID:           "1",
				BookingID:    "1",
				FullName:     "John Smith",
				IDType:       models.IDTypePassport,
				IDNumber:     "P123456789",
				Relationship: "Client",
				VisitPurpose: "Business discussion",
				CheckInTime:  at("2024-12-15T09:00:00Z"),
				CheckOutTime: at("2024-12-15T11:00:00Z"),
				Status:       models.VisitorStatusCheckedOut,
			},
			{
				ID:           "2",
				BookingID:    "1",
				FullName:     "Sarah Johnson",
				IDType:       models.IDTypePassport,
				IDNumber:     "P987654321",
				Relationship: "Client",
				VisitPurpose: "Business discussion",
				CheckInTime:  at("2024-12-15T09:15:00Z"),
				Status:       models.VisitorStatusCheckedIn,
			},
		},
		Facility:  &facility,
		CreatedAt: created,
		UpdatedAt: created,
	}}
}

func SeedPayments(memberID string) []models.Payment {
	return []models.Payment{
		{
			ID:             "1",
			MemberID:       memberID,
			SubscriptionID: "1",
			Amount:         50000,
			Currency:       "THB",
			PaymentMethod:  models.PaymentMethodCreditCard,
			Status:         models.PaymentStatusCompleted,
			TransactionID:  "TXN123456789",
			PaymentDate:    "2024-01-15",
			Description:    "Premium Vault Package - Annual Payment",
		},
		{
			ID:            "2",
			MemberID:      memberID,
			BookingID:     "1",
			Amount:        2000,
			Currency:      "THB",
			PaymentMethod: models.PaymentMethodCreditCard,
			Status:        models.PaymentStatusCompleted,
			TransactionID: "TXN987654321",
			PaymentDate:   "2024-12-01",
			Description:   "Executive Meeting Room - 2 hours",
		},
		{
			ID:             "3",
			MemberID:       memberID,
			SubscriptionID: "1",
			Amount:         50000,
			Currency:       "THB",
			PaymentMethod:  models.PaymentMethodBankTransfer,
			Status:         models.PaymentStatusPending,
			TransactionID:  "TXN456789123",
			PaymentDate:    "2024-12-15",
			Description:    "Premium Vault Package - Renewal Payment",
		},
		{
			ID:            "4",
			MemberID:      memberID,
			BookingID:     "2",
			Amount:        3000,
			Currency:      "THB",
			PaymentMethod: models.PaymentMethodCreditCard,
			Status:        models.PaymentStatusFailed,
			TransactionID: "TXN789123456",
			PaymentDate:   "2024-11-20",
			Description:   "Conference Room A - 2 hours",
		},
	}
}

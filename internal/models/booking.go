package models

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

type Pricing struct {
	TotalCost float64 `json:"totalCost"`
}

// TotalCents converts the decimal total into minor currency units.
func (p Pricing) TotalCents() int64 {
	return int64(math.Round(p.TotalCost * 100))
}

type Booking struct {
	ID                 string        `json:"id"`
	UserID             string        `json:"user_id"`
	Status             BookingStatus `json:"status"`
	PackageTitle       string        `json:"package_title"`
	PackageDestination string        `json:"package_destination"`
	Pricing            Pricing       `json:"pricing"`
	PaymentIntentID    *string       `json:"payment_intent_id,omitempty"`
	SessionID          *string       `json:"session_id,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

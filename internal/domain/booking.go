package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PassengerForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
}

// BookingDraft is assembled during the booking flow and sent exactly once.
type BookingDraft struct {
	FlightID           string          `json:"flightId" validate:"required"`
	NumberOfPassengers int             `json:"numberOfPassengers" validate:"min=1"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	ContactEmail       string          `json:"contactEmail" validate:"required"`
	ContactPhone       string          `json:"contactPhone" validate:"required"`
	Passengers         []PassengerForm `json:"passengers" validate:"dive"`
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Normalized upper-cases the status as reported by the backend.
func (s BookingStatus) Normalized() BookingStatus {
	return BookingStatus(strings.ToUpper(strings.TrimSpace(string(s))))
}

type Passenger struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
}

// Booking is a persisted reservation as returned by the history endpoint.
type Booking struct {
	ID                 string          `json:"id"`
	BookingReference   string          `json:"bookingReference"`
	Status             BookingStatus   `json:"status"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	NumberOfPassengers int             `json:"numberOfPassengers"`
	BookingDate        time.Time       `json:"bookingDate"`
	CreatedAt          time.Time       `json:"createdAt"`
	Flight             Flight          `json:"flight"`
	Passengers         []Passenger     `json:"passengers"`
}

package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity event types.
const (
	EventLogin          = "login"
	EventRegister       = "register"
	EventLogout         = "logout"
	EventBookingCreated = "booking_created"
)

// ActivityEvent is what the web tier records about a user's actions.
type ActivityEvent struct {
	Type             string           `json:"type"`
	SessionID        string           `json:"session_id"`
	UserID           string           `json:"user_id,omitempty"`
	Email            string           `json:"email,omitempty"`
	FlightID         string           `json:"flight_id,omitempty"`
	BookingReference string           `json:"booking_reference,omitempty"`
	Passengers       int              `json:"passengers,omitempty"`
	TotalAmount      *decimal.Decimal `json:"total_amount,omitempty"`
	OccurredAt       time.Time        `json:"occurred_at"`
}

// Key partitions events by session so one browser's events stay ordered.
func (e ActivityEvent) Key() string {
	return e.SessionID
}

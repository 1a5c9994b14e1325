// Package notify turns activity events into user-facing notices. Delivery is
// a log line for now; the message body is what a mailer would send.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airbooking-web/internal/kafka"
	"go.uber.org/zap"
)

type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sender{log: log}
}

// Send emits a receipt for booking_created events and ignores the rest.
func (s *Sender) Send(ctx context.Context, ev kafka.ActivityEvent) error {
	if ev.Type != kafka.EventBookingCreated {
		s.log.Debug("no notice for event", zap.String("type", ev.Type))
		return nil
	}
	if ev.Email == "" {
		s.log.Warn("booking receipt without recipient", zap.String("session_id", ev.SessionID))
		return nil
	}
	s.log.Info("send booking receipt",
		zap.String("to", ev.Email),
		zap.String("booking_reference", ev.BookingReference),
		zap.String("body", Receipt(ev)),
	)
	return nil
}

// Receipt is the plain-text body of a booking receipt.
func Receipt(ev kafka.ActivityEvent) string {
	var b strings.Builder
	b.WriteString("Your booking is confirmed.\n")
	if ev.BookingReference != "" {
		fmt.Fprintf(&b, "Reference: %s\n", ev.BookingReference)
	}
	fmt.Fprintf(&b, "Flight: %s\n", ev.FlightID)
	fmt.Fprintf(&b, "Passengers: %d\n", ev.Passengers)
	if ev.TotalAmount != nil {
		fmt.Fprintf(&b, "Total: %s\n", ev.TotalAmount.StringFixed(2))
	}
	return b.String()
}

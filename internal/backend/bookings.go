package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/go-resty/resty/v2"
)

// bookingRequest is the wire form of a draft; the total goes out as a JSON number.
type bookingRequest struct {
	FlightID           string                 `json:"flightId"`
	NumberOfPassengers int                    `json:"numberOfPassengers"`
	TotalAmount        json.Number            `json:"totalAmount"`
	ContactEmail       string                 `json:"contactEmail"`
	ContactPhone       string                 `json:"contactPhone"`
	Passengers         []domain.PassengerForm `json:"passengers"`
}

func (c *Client) CreateBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	body := bookingRequest{
		FlightID:           draft.FlightID,
		NumberOfPassengers: draft.NumberOfPassengers,
		TotalAmount:        json.Number(draft.TotalAmount.String()),
		ContactEmail:       draft.ContactEmail,
		ContactPhone:       draft.ContactPhone,
		Passengers:         draft.Passengers,
	}
	env, err := call[*domain.Booking](ctx, c, http.MethodPost, "/api/bookings/create", func(r *resty.Request) {
		r.SetBody(body)
	})
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return &domain.Booking{}, nil
	}
	return env.Data, nil
}

func (c *Client) BookingHistory(ctx context.Context) ([]domain.Booking, error) {
	env, err := call[[]domain.Booking](ctx, c, http.MethodGet, "/api/bookings/user/history", nil)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []domain.Booking{}, nil
	}
	return env.Data, nil
}

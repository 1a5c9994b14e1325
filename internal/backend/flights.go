package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/go-resty/resty/v2"
)

// ListFlights fetches one server-side page of the inventory.
func (c *Client) ListFlights(ctx context.Context, page, limit int) (*domain.FlightPage, error) {
	env, err := call[[]domain.Flight](ctx, c, http.MethodGet, "/api/flights", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(limit),
		})
	})
	if err != nil {
		return nil, err
	}
	out := &domain.FlightPage{Flights: nonNil(env.Data)}
	if env.Pagination != nil {
		out.Pagination = *env.Pagination
	} else {
		out.Pagination = domain.SinglePage(len(out.Flights))
	}
	return out, nil
}

// SearchFlights runs a filtered search. The backend does not paginate search
// results, so the page is synthesized as a single page of everything returned.
func (c *Client) SearchFlights(ctx context.Context, params domain.SearchParams) (*domain.FlightPage, error) {
	env, err := call[[]domain.Flight](ctx, c, http.MethodPost, "/api/flights/search", func(r *resty.Request) {
		r.SetBody(params)
	})
	if err != nil {
		return nil, err
	}
	flights := nonNil(env.Data)
	return &domain.FlightPage{Flights: flights, Pagination: domain.SinglePage(len(flights))}, nil
}

func (c *Client) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	env, err := call[*domain.Flight](ctx, c, http.MethodGet, "/api/flights/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &APIError{Status: http.StatusNotFound, Message: "Flight not found"}
	}
	return env.Data, nil
}

func nonNil(flights []domain.Flight) []domain.Flight {
	if flights == nil {
		return []domain.Flight{}
	}
	return flights
}

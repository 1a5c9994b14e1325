package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flight is a read-only projection of the backend's inventory.
type Flight struct {
	ID             string          `json:"id"`
	FlightNumber   string          `json:"flightNumber"`
	Airline        string          `json:"airline"`
	AirlineLogo    string          `json:"airlineLogo"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	DepartureTime  time.Time       `json:"departureTime"`
	ArrivalTime    time.Time       `json:"arrivalTime"`
	Duration       int             `json:"duration"`
	Price          decimal.Decimal `json:"price"`
	AvailableSeats int             `json:"availableSeats"`
	TotalSeats     int             `json:"totalSeats"`
}

type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// SinglePage describes an unpaginated result set of n flights.
func SinglePage(n int) Pagination {
	return Pagination{Page: 1, Pages: 1, Total: n}
}

type FlightPage struct {
	Flights    []Flight
	Pagination Pagination
}

type SearchParams struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	TravelDate  string `json:"travelDate" validate:"required,datetime=2006-01-02"`
	Passengers  int    `json:"passengers" validate:"min=1"`
}

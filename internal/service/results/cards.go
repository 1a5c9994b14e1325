package results

import "github.com/Domenick1991/airbooking-web/internal/domain"

// Card is one flight as rendered in a result list.
type Card struct {
	domain.Flight
	DepartTime string
	DepartDate string
	ArriveTime string
	ArriveDate string
	Duration   string
	Price      string
	Badge      Badge
}

func (c Card) Bookable() bool { return c.Badge != SoldOut }

func NewCard(f domain.Flight, fm *Formatter) Card {
	return Card{
		Flight:     f,
		DepartTime: fm.Time(f.DepartureTime),
		DepartDate: fm.Date(f.DepartureTime),
		ArriveTime: fm.Time(f.ArrivalTime),
		ArriveDate: fm.Date(f.ArrivalTime),
		Duration:   fm.Duration(f.Duration),
		Price:      fm.Price(f.Price),
		Badge:      Scarcity(f.AvailableSeats, f.TotalSeats),
	}
}

func Cards(flights []domain.Flight, fm *Formatter) []Card {
	out := make([]Card, 0, len(flights))
	for _, f := range flights {
		out = append(out, NewCard(f, fm))
	}
	return out
}

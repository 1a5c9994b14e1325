package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/kafka"
	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/Domenick1991/airbooking-web/internal/validate"
)

var ErrSoldOut = errors.New("booking: flight is sold out")

type Filter string

const (
	FilterAll       Filter = "all"
	FilterConfirmed Filter = "confirmed"
	FilterCancelled Filter = "cancelled"
)

func ParseFilter(s string) Filter {
	switch f := Filter(strings.ToLower(s)); f {
	case FilterConfirmed, FilterCancelled:
		return f
	}
	return FilterAll
}

type BookingUseCase interface {
	Prepare(ctx context.Context, flightID string, adults int) (*Confirmation, error)
	Submit(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
	History(ctx context.Context, filter Filter) (*History, error)
}

// BookingAPI is the part of the backend client the booking flow needs.
type BookingAPI interface {
	GetFlight(ctx context.Context, id string) (*domain.Flight, error)
	CreateBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
	BookingHistory(ctx context.Context) ([]domain.Booking, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, ev kafka.ActivityEvent)
}

// Confirmation is the freshly fetched flight plus the draft to fill in.
type Confirmation struct {
	Flight *domain.Flight
	Draft  domain.BookingDraft
}

// History is the filtered booking list with per-status counts of the whole list.
type History struct {
	Filter    Filter
	Bookings  []domain.Booking
	Total     int
	Confirmed int
	Cancelled int
}

type BookingService struct {
	api       BookingAPI
	validator *validate.Validator
	activity  ActivityRecorder
}

type BookingServiceOption func(*BookingService)

func WithActivity(a ActivityRecorder) BookingServiceOption {
	return func(s *BookingService) {
		s.activity = a
	}
}

func NewBookingService(api BookingAPI, v *validate.Validator, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{api: api, validator: v}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Prepare fetches the flight again by id and clamps adults to its available seats.
func (s *BookingService) Prepare(ctx context.Context, flightID string, adults int) (*Confirmation, error) {
	flight, err := s.api.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	stepper := NewStepper(adults, flight.AvailableSeats)
	if !stepper.Bookable() {
		return nil, ErrSoldOut
	}
	return &Confirmation{Flight: flight, Draft: NewDraft(flight, stepper.Count)}, nil
}

// Submit validates the draft and, only if it is complete, posts it.
func (s *BookingService) Submit(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	if err := ValidateDraft(s.validator, &draft); err != nil {
		return nil, err
	}

	created, err := s.api.CreateBooking(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, draft, created)
	return created, nil
}

func (s *BookingService) publish(ctx context.Context, draft domain.BookingDraft, created *domain.Booking) {
	if s.activity == nil {
		return
	}
	total := draft.TotalAmount
	ev := kafka.ActivityEvent{
		Type:             kafka.EventBookingCreated,
		Email:            draft.ContactEmail,
		FlightID:         draft.FlightID,
		BookingReference: created.BookingReference,
		Passengers:       draft.NumberOfPassengers,
		TotalAmount:      &total,
	}
	if a, ok := session.FromContext(ctx); ok {
		ev.SessionID = a.ID()
		if u := a.User(ctx); u != nil {
			ev.UserID = u.ID
		}
	}
	s.activity.Record(ctx, ev)
}

// History always fetches the list fresh.
func (s *BookingService) History(ctx context.Context, filter Filter) (*History, error) {
	all, err := s.api.BookingHistory(ctx)
	if err != nil {
		return nil, err
	}
	h := &History{Filter: filter, Total: len(all), Bookings: make([]domain.Booking, 0, len(all))}
	for _, b := range all {
		status := b.Status.Normalized()
		switch status {
		case domain.BookingStatusConfirmed:
			h.Confirmed++
		case domain.BookingStatusCancelled:
			h.Cancelled++
		}
		if filter == FilterAll || strings.EqualFold(string(status), string(filter)) {
			h.Bookings = append(h.Bookings, b)
		}
	}
	return h, nil
}

var _ BookingUseCase = (*BookingService)(nil)

package flights

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/service/results"
	"github.com/Domenick1991/airbooking-web/internal/service/search"
)

// ErrSuperseded is returned when a newer fetch for the same session started
// before this one finished. Its result has been discarded.
var ErrSuperseded = errors.New("flights: request superseded by a newer one")

type FlightUseCase interface {
	List(ctx context.Context, sid string, page int) (results.View, error)
	Search(ctx context.Context, sid string, form search.Form) (results.View, error)
	Current(sid string) (results.View, bool)
	Resort(sid string, key results.SortKey) (results.View, bool)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Forget(sid string)
}

// FlightAPI is the part of the backend client the service needs.
type FlightAPI interface {
	ListFlights(ctx context.Context, page, limit int) (*domain.FlightPage, error)
	SearchFlights(ctx context.Context, params domain.SearchParams) (*domain.FlightPage, error)
	GetFlight(ctx context.Context, id string) (*domain.Flight, error)
}

type FlightService struct {
	api      FlightAPI
	views    *results.Views
	pageSize int
}

func NewFlightService(api FlightAPI, views *results.Views, pageSize int) *FlightService {
	if views == nil {
		views = results.NewViews()
	}
	return &FlightService{api: api, views: views, pageSize: pageSize}
}

// List fetches one page of the inventory. Pages are never served from memory.
func (s *FlightService) List(ctx context.Context, sid string, page int) (results.View, error) {
	if page < 1 {
		page = 1
	}
	return s.fetch(ctx, sid, nil, func(ctx context.Context) (*domain.FlightPage, error) {
		return s.api.ListFlights(ctx, page, s.pageSize)
	})
}

// Search runs the query of an already submitted form.
func (s *FlightService) Search(ctx context.Context, sid string, form search.Form) (results.View, error) {
	params := form.Params()
	return s.fetch(ctx, sid, &form, func(ctx context.Context) (*domain.FlightPage, error) {
		return s.api.SearchFlights(ctx, params)
	})
}

func (s *FlightService) fetch(
	ctx context.Context,
	sid string,
	form *search.Form,
	do func(context.Context) (*domain.FlightPage, error),
) (results.View, error) {
	key := results.SortPrice
	if cur, ok := s.views.Current(sid); ok {
		key = cur.Sort
	}

	fetchCtx, ticket := s.views.Begin(ctx, sid)
	defer s.views.Release(ticket)

	page, err := do(fetchCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return results.View{}, ErrSuperseded
		}
		return results.View{}, err
	}

	view := results.View{Page: *page, Sort: key}
	if form != nil {
		params := form.Params()
		view.Search, view.Form = &params, form
	}
	if !s.views.Commit(ticket, view) {
		return results.View{}, ErrSuperseded
	}
	return view, nil
}

func (s *FlightService) Current(sid string) (results.View, bool) {
	return s.views.Current(sid)
}

// Resort reorders the committed view without going back to the backend.
func (s *FlightService) Resort(sid string, key results.SortKey) (results.View, bool) {
	return s.views.Resort(sid, key)
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.api.GetFlight(ctx, id)
}

// Forget drops the view state of a session, e.g. after logout.
func (s *FlightService) Forget(sid string) {
	s.views.Drop(sid)
}

var _ FlightUseCase = (*FlightService)(nil)

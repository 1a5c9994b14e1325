package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/airbooking-web/config"
	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/gate"
	"github.com/Domenick1991/airbooking-web/internal/service/auth"
	"github.com/Domenick1991/airbooking-web/internal/service/booking"
	"github.com/Domenick1991/airbooking-web/internal/service/results"
	"github.com/Domenick1991/airbooking-web/internal/service/search"
	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/Domenick1991/airbooking-web/internal/validate"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, sid string, page int) (results.View, error) {
	args := m.Called(ctx, sid, page)
	return args.Get(0).(results.View), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, sid string, form search.Form) (results.View, error) {
	args := m.Called(ctx, sid, form)
	return args.Get(0).(results.View), args.Error(1)
}

func (m *MockFlightUseCase) Current(sid string) (results.View, bool) {
	args := m.Called(sid)
	return args.Get(0).(results.View), args.Bool(1)
}

func (m *MockFlightUseCase) Resort(sid string, key results.SortKey) (results.View, bool) {
	args := m.Called(sid, key)
	return args.Get(0).(results.View), args.Bool(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Forget(sid string) {
	m.Called(sid)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Prepare(ctx context.Context, flightID string, adults int) (*booking.Confirmation, error) {
	args := m.Called(ctx, flightID, adults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Confirmation), args.Error(1)
}

func (m *MockBookingUseCase) Submit(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) History(ctx context.Context, filter booking.Filter) (*booking.History, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.History), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, form auth.RegisterForm) (*domain.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, form auth.LoginForm) (*domain.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

const (
	testCookie = "airbooking_sid"
	testSID    = "0b6f1c2e-6d0a-4c1e-9a47-3f2d8f0e5a10"
)

type testApp struct {
	router   *gin.Engine
	store    *session.MemoryStore
	sessions *session.Manager
	flights  *MockFlightUseCase
	bookings *MockBookingUseCase
	auth     *MockAuthUseCase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fm, err := results.NewFormatter(config.DisplayConfig{Locale: "en", CurrencySymbol: "₹", Timezone: "UTC"})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	app := &testApp{
		store:    store,
		sessions: session.NewManager(store, nil),
		flights:  &MockFlightUseCase{},
		bookings: &MockBookingUseCase{},
		auth:     &MockAuthUseCase{},
	}
	app.router, err = NewRouter(Deps{
		Sessions:  app.sessions,
		Cookie:    gate.CookieConfig{Name: testCookie, TTL: time.Hour},
		Flights:   app.flights,
		Bookings:  app.bookings,
		Auth:      app.auth,
		Formatter: fm,
		Validator: validate.New(),
	})
	require.NoError(t, err)
	return app
}

// signIn stores a signed-in session under testSID, the id every request carries.
func (a *testApp) signIn(t *testing.T) *session.Accessor {
	t.Helper()
	require.NoError(t, a.store.Save(context.Background(), testSID, session.Values{
		session.KeyToken: "tok",
		session.KeyUser:  `{"id":"u1","firstName":"Asha"}`,
	}))
	return a.sessions.Accessor(testSID)
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testSID})
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func sampleFlight(id string, available int) domain.Flight {
	dep := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	return domain.Flight{
		ID:             id,
		FlightNumber:   "AI-" + id,
		Airline:        "Air India",
		Origin:         "Delhi",
		Destination:    "Mumbai",
		DepartureTime:  dep,
		ArrivalTime:    dep.Add(130 * time.Minute),
		Duration:       130,
		Price:          decimal.RequireFromString("4500.00"),
		AvailableSeats: available,
		TotalSeats:     100,
	}
}

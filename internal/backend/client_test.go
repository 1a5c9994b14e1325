package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airbooking-web/config"
	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flightJSON = `{"id":"f1","flightNumber":"AI-101","airline":"Air India","airlineLogo":"https://logo/ai.png",
"origin":"Delhi","destination":"Mumbai","departureTime":"2024-06-01T06:00:00Z","arrivalTime":"2024-06-01T08:10:00Z",
"duration":130,"price":"4500.00","availableSeats":12,"totalSeats":180}`

// signedIn returns a context carrying a logged-in session and its accessor.
func signedIn(t *testing.T) (context.Context, *session.Accessor) {
	t.Helper()
	a := session.NewManager(session.NewMemoryStore(0), nil).Accessor("sid")
	require.NoError(t, a.Login(context.Background(), "secret-token", &domain.User{ID: "u1", FirstName: "Asha"}))
	return session.NewContext(context.Background(), a), a
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{BaseURL: srv.URL + "/"}, nil)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_ListFlights(t *testing.T) {
	ctx, _ := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/flights", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"data":[`+flightJSON+`],"pagination":{"page":2,"pages":5,"total":41}}`)
	})

	page, err := c.ListFlights(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Flights, 1)
	assert.Equal(t, domain.Pagination{Page: 2, Pages: 5, Total: 41}, page.Pagination)

	f := page.Flights[0]
	assert.Equal(t, "AI-101", f.FlightNumber)
	assert.True(t, decimal.RequireFromString("4500").Equal(f.Price))
	assert.Equal(t, 130, f.Duration)
	assert.Equal(t, 12, f.AvailableSeats)
}

func TestClient_SearchFlightsSynthesizesPagination(t *testing.T) {
	ctx, _ := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/flights/search", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"origin":      "Delhi",
			"destination": "Mumbai",
			"travelDate":  "2024-06-01",
			"passengers":  float64(2),
		}, body)
		writeJSON(w, http.StatusOK, `{"data":[`+flightJSON+`,`+flightJSON+`]}`)
	})

	page, err := c.SearchFlights(ctx, domain.SearchParams{Origin: "Delhi", Destination: "Mumbai", TravelDate: "2024-06-01", Passengers: 2})
	require.NoError(t, err)
	assert.Len(t, page.Flights, 2)
	assert.Equal(t, domain.Pagination{Page: 1, Pages: 1, Total: 2}, page.Pagination)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	ctx, a := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"token expired"}`)
	})

	_, err := c.BookingHistory(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, a.IsAuthenticated(context.Background()))
	assert.Empty(t, a.Token(context.Background()))
	assert.Nil(t, a.User(context.Background()))
}

func TestClient_UnauthorizedOnEveryEndpoint(t *testing.T) {
	calls := map[string]func(*Client, context.Context) error{
		"list": func(c *Client, ctx context.Context) error { _, err := c.ListFlights(ctx, 1, 10); return err },
		"search": func(c *Client, ctx context.Context) error {
			_, err := c.SearchFlights(ctx, domain.SearchParams{Origin: "A", Destination: "B", TravelDate: "2024-06-01", Passengers: 1})
			return err
		},
		"get":     func(c *Client, ctx context.Context) error { _, err := c.GetFlight(ctx, "f1"); return err },
		"create":  func(c *Client, ctx context.Context) error { _, err := c.CreateBooking(ctx, domain.BookingDraft{}); return err },
		"history": func(c *Client, ctx context.Context) error { _, err := c.BookingHistory(ctx); return err },
	}
	for name, fn := range calls {
		t.Run(name, func(t *testing.T) {
			ctx, a := signedIn(t)
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})
			assert.ErrorIs(t, fn(c, ctx), ErrUnauthorized)
			assert.False(t, a.IsAuthenticated(context.Background()))
		})
	}
}

func TestClient_NoSessionNeverCallsBackend(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.ListFlights(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called)
}

func TestClient_GetFlight(t *testing.T) {
	ctx, _ := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/flights/f1", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":`+flightJSON+`}`)
	})

	f, err := c.GetFlight(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", f.Destination)
}

func TestClient_GetFlightNotFound(t *testing.T) {
	ctx, _ := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"success":false,"message":"Flight not found"}`)
	})

	_, err := c.GetFlight(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestClient_CreateBookingSurfacesServerMessage(t *testing.T) {
	ctx, a := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(9000), body["totalAmount"])
		writeJSON(w, http.StatusBadRequest, `{"success":false,"message":"Not enough seats","details":"2 requested, 1 left"}`)
	})

	_, err := c.CreateBooking(ctx, domain.BookingDraft{
		FlightID:           "f1",
		NumberOfPassengers: 2,
		TotalAmount:        decimal.RequireFromString("9000.00"),
		ContactEmail:       "a@b.co",
		ContactPhone:       "123",
		Passengers:         []domain.PassengerForm{{FirstName: "A", LastName: "B"}, {FirstName: "C", LastName: "D"}},
	})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Not enough seats", apiErr.Message)
	assert.Equal(t, "2 requested, 1 left", apiErr.Details)
	// Business errors leave the session alone.
	assert.True(t, a.IsAuthenticated(context.Background()))
}

func TestClient_SuccessFalseIsAPIError(t *testing.T) {
	ctx, _ := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":false,"message":"History unavailable"}`)
	})

	_, err := c.BookingHistory(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "History unavailable", apiErr.Message)
}

func TestClient_ErrorWithoutBodyUsesStatusText(t *testing.T) {
	ctx, _ := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListFlights(ctx, 1, 10)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	ctx, _ := signedIn(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(config.BackendConfig{BaseURL: url}, nil)
	_, err := c.ListFlights(ctx, 1, 10)
	assert.True(t, IsNetwork(err))
}

func TestClient_CanceledContext(t *testing.T) {
	ctx, _ := signedIn(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[]}`)
	})
	_, err := c.ListFlights(ctx, 1, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_LoginIsPublic(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"data":{"token":"new-token","user":{"id":"u1","firstName":"Asha","email":"asha@example.com"}}}`)
	})

	res, err := c.Login(context.Background(), domain.Credentials{Email: "asha@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "new-token", res.Token)
	assert.Equal(t, "Asha", res.User.FirstName)
}

func TestClient_LoginRejectedKeepsMessage(t *testing.T) {
	ctx, a := signedIn(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"Invalid email or password"}`)
	})

	_, err := c.Login(ctx, domain.Credentials{Email: "x@y.z", Password: "bad"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.True(t, a.IsAuthenticated(context.Background()))
}

func TestClient_RegisterWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		writeJSON(w, http.StatusCreated, `{"data":{}}`)
	})

	_, err := c.Register(context.Background(), domain.Registration{Email: "a@b.co", Password: "secret"})
	assert.ErrorIs(t, err, errEmptyAuth)
}
